package main

import (
	"os"
	"runtime"
)

// GL contexts are bound to the thread that created them, and cobra runs
// commands on the main goroutine.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
