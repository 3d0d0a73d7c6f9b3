package shader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrResourceExhausted is matched by every ResourceExhaustedError.
var ErrResourceExhausted = errors.New("gpu refused allocation")

// ErrStageMismatch is returned when a source is passed for the wrong stage.
var ErrStageMismatch = errors.New("shader stage mismatch")

// CompileError reports a stage the driver refused to compile. Log is the
// driver's info log, verbatim.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to compile %s shader %s: %s", e.Stage, e.Path, strings.TrimSpace(e.Log))
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError reports a program the driver refused to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", strings.TrimSpace(e.Log))
}

// ResourceExhaustedError reports that the driver returned no handle for a
// new object. It is not retried.
type ResourceExhaustedError struct {
	Resource string
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("create %s: %v", e.Resource, ErrResourceExhausted)
}

func (e *ResourceExhaustedError) Unwrap() error { return ErrResourceExhausted }
