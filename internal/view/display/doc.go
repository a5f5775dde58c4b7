// Package display holds the viewers of objects in the display bucket.
package display
