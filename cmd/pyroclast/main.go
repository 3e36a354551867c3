// Command pyroclast prints the height of the rock stack after dropping a
// given number of pieces into the shaft, for a wind schedule read from a
// file or stdin.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
