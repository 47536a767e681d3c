package ndi

import "fmt"

// EpochNotFoundErr is returned when a fabric has no finished epoch to anchor an analysis on
type EpochNotFoundErr struct {
	InsightsGroup string
	Fabric        string
}

func (e EpochNotFoundErr) Error() string {
	return fmt.Sprintf("no finished epoch found for fabric %s in insights group %s", e.Fabric, e.InsightsGroup)
}

// Is matches on the type only, thus making errors.Is work
func (e EpochNotFoundErr) Is(target error) bool {
	_, ok := target.(EpochNotFoundErr)
	return ok
}

// AnalysisFailedErr is returned when an analysis reached the FAILED state
type AnalysisFailedErr struct {
	Name string
}

func (e AnalysisFailedErr) Error() string {
	return fmt.Sprintf("analysis %s failed on the controller", e.Name)
}

// Is matches on the type only, thus making errors.Is work
func (e AnalysisFailedErr) Is(target error) bool {
	_, ok := target.(AnalysisFailedErr)
	return ok
}

// NotCompletedErr is returned when compliance results are requested for a
// pre-change validation that is missing or not yet completed
type NotCompletedErr struct {
	Name string
}

func (e NotCompletedErr) Error() string {
	return fmt.Sprintf("Pre-change validation %s is not completed", e.Name)
}

// Is matches on the type only, thus making errors.Is work
func (e NotCompletedErr) Is(target error) bool {
	_, ok := target.(NotCompletedErr)
	return ok
}

// DeleteFailedErr is returned when the controller refuses to delete a job
type DeleteFailedErr struct {
	Name string
}

func (e DeleteFailedErr) Error() string {
	return fmt.Sprintf("pre-change validation %s is not able to be deleted", e.Name)
}

// Is matches on the type only, thus making errors.Is work
func (e DeleteFailedErr) Is(target error) bool {
	_, ok := target.(DeleteFailedErr)
	return ok
}

// ChangeParseErr wraps failures to parse a change file
type ChangeParseErr struct {
	Path string
	Err  error
}

func (e ChangeParseErr) Error() string {
	err := fmt.Errorf("could not parse change file %s: %w", e.Path, e.Err)
	return err.Error()
}

// Is matches on the type only, thus making errors.Is work
func (e ChangeParseErr) Is(target error) bool {
	_, ok := target.(ChangeParseErr)
	return ok
}
