package input

import "fmt"

// InjectionError reports a rejected OS-level input action.
type InjectionError struct {
	Op  string
	Err error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("injection failed: %s: %v", e.Op, e.Err)
}

func (e *InjectionError) Unwrap() error { return e.Err }

// AbortedError reports an action stopped by the failsafe corner: once the
// pointer sits in the top-left corner, in-flight sequences abort and new
// actions are refused until the pointer moves away.
type AbortedError struct {
	Op string
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("aborted by failsafe corner: %s", e.Op)
}
