package ui

import "fmt"

// assert panics when cond is false in builds tagged cellwin_debug.
// Release builds ignore the check and callers fall through to a no-op.
func assert(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic(fmt.Sprintf("ui: "+format, args...))
	}
}
