// Package observable provides Subject, a current-value holder that streams
// its changes to any number of subscribers over conflating channels.
package observable
