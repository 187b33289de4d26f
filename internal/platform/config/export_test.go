package config

import "io"

// SetExitHooksForTest swaps the writer and exit function used by Exitf.
func SetExitHooksForTest(w io.Writer, fn func(int)) (restore func()) {
	prevWriter, prevExit := exitWriter, exitFunc
	exitWriter, exitFunc = w, fn
	return func() {
		exitWriter, exitFunc = prevWriter, prevExit
	}
}
