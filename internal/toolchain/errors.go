package toolchain

import (
	"errors"
	"fmt"
)

// Stage names the phase of the run an error originated from.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageExtract  Stage = "extract"
	StageVerify   Stage = "verify"
	StagePackages Stage = "packages"
)

// ErrCancelled is returned when the user requests a stop. Cancellation is a
// distinct outcome, not an infrastructure failure; it travels the error
// channel only for simplicity of the boundary.
var ErrCancelled = errors.New("installation cancelled by user")

// StageError tags a failure with the vendor and the phase it occurred in.
type StageError struct {
	Stage  Stage
	Vendor Vendor
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Vendor, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// WrapStage tags err with vendor and stage. A nil err stays nil.
func WrapStage(stage Stage, vendor Vendor, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Vendor: vendor, Err: err}
}

// StageErrorf builds a tagged failure from a format string.
func StageErrorf(stage Stage, vendor Vendor, format string, args ...interface{}) error {
	return &StageError{Stage: stage, Vendor: vendor, Err: fmt.Errorf(format, args...)}
}

// IsCancelled reports whether err carries a user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
