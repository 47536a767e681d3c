package reconcile

import "fmt"

// ValidationErr is returned when the desired state is rejected before any
// request is sent to the controller
type ValidationErr struct {
	Reason string
}

func (v ValidationErr) Error() string {
	return fmt.Sprintf("invalid parameters: %s", v.Reason)
}

// Is matches on the type only, thus making errors.Is work
func (v ValidationErr) Is(target error) bool {
	_, ok := target.(ValidationErr)
	return ok
}

// FileConflictErr is returned when a pre-change validation already exists
// under the same name but was created from a different change file
type FileConflictErr struct {
	Name         string
	UploadedFile string
}

func (f FileConflictErr) Error() string {
	return fmt.Sprintf("pre-change validation %s already exists with configuration file %s", f.Name, f.UploadedFile)
}

// Is matches on the type only, thus making errors.Is work
func (f FileConflictErr) Is(target error) bool {
	_, ok := target.(FileConflictErr)
	return ok
}

// EpochConflictErr is returned when a delta analysis already exists under the
// same name but compares a different epoch pair
type EpochConflictErr struct {
	Name string
}

func (e EpochConflictErr) Error() string {
	return fmt.Sprintf("delta analysis %s already exists with a different epoch pair", e.Name)
}

// Is matches on the type only, thus making errors.Is work
func (e EpochConflictErr) Is(target error) bool {
	_, ok := target.(EpochConflictErr)
	return ok
}

// MissingResourceErr is returned when an operation needs an existing resource
// that the controller does not have
type MissingResourceErr struct {
	Name string
}

func (m MissingResourceErr) Error() string {
	return fmt.Sprintf("resource %s does not exist on the controller", m.Name)
}

// Is matches on the type only, thus making errors.Is work
func (m MissingResourceErr) Is(target error) bool {
	_, ok := target.(MissingResourceErr)
	return ok
}
