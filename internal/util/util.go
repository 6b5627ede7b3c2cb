// Package util provides common utility functions.
package util

func Must(e error) {
	if e != nil {
		panic(e)
	}
}
