package main

import "github.com/oshokin/mission-console/cmd/mission-console/cmd"

func main() {
	cmd.Execute()
}
