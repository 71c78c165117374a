package gfx

import "fmt"

// BackendError reports a call rejected by the backend together with the
// result code it returned.
type BackendError struct {
	Call   string
	Result string
	Err    error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s returned %s: %v", e.Call, e.Result, e.Err)
	}
	return fmt.Sprintf("%s returned %s", e.Call, e.Result)
}

func (e *BackendError) Unwrap() error { return e.Err }
