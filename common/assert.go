package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

// SH_Assert panics with msg when condition does not hold.
// All goroutine stacks are dumped first so that latch misuse can be
// traced across goroutines.
func SH_Assert(condition bool, msg string) {
	if !condition {
		RuntimeStack()
		panic(msg)
	}
}

// REFERENCES
//   - https://pkg.go.dev/runtime#Stack
func RuntimeStack() error {
	var (
		chAll = make(chan []byte, 1)
	)

	var (
		getStack = func(all bool) []byte {
			// From src/runtime/debug/stack.go
			var (
				buf = make([]byte, 1024)
			)

			for {
				n := runtime.Stack(buf, all)
				if n < len(buf) {
					return buf[:n]
				}
				buf = make([]byte, 2*len(buf))
			}
		}
	)

	go func(ch chan<- []byte) {
		defer close(ch)
		ch <- getStack(true)
	}(chAll)

	for v := range chAll {
		output.Stdoutl("=== stack-all   ", string(v))
	}

	return nil
}
