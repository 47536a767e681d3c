package nd

import (
	"fmt"
	"strings"
)

// AuthErr wraps authentication failures against the controller
type AuthErr struct {
	Err error
}

// Error prints the wrapped error and the original one
func (a AuthErr) Error() string {
	err := fmt.Errorf("authentication against the controller failed: %w", a.Err)
	return err.Error()
}

// Is ignores the internal error, thus making errors.Is work (as by default it compares the internal objects)
func (a AuthErr) Is(target error) bool {
	_, ok := target.(AuthErr)
	return ok
}

// NotFoundErr wraps the controller's not found responses
type NotFoundErr struct {
	Err error
}

// Error prints the wrapped error and the original one
func (n NotFoundErr) Error() string {
	err := fmt.Errorf("the requested resource was not found on the controller: %w", n.Err)
	return err.Error()
}

// Is ignores the internal error, thus making errors.Is work (as by default it compares the internal objects)
func (n NotFoundErr) Is(target error) bool {
	_, ok := target.(NotFoundErr)
	return ok
}

// APIErr carries a non-2xx controller response together with the messages the
// controller returned in its envelope
type APIErr struct {
	StatusCode int
	Messages   []string
}

func (a APIErr) Error() string {
	if len(a.Messages) == 0 {
		return fmt.Sprintf("controller returned status %d", a.StatusCode)
	}
	return fmt.Sprintf("controller returned status %d: %s", a.StatusCode, strings.Join(a.Messages, "; "))
}

// Is matches on the type only so errors.Is can be used without the exact messages
func (a APIErr) Is(target error) bool {
	_, ok := target.(APIErr)
	return ok
}

// RequestErr wraps transport level failures, before any response was received
type RequestErr struct {
	Err error
}

// Error prints the wrapped error and the original one
func (r RequestErr) Error() string {
	err := fmt.Errorf("request to the controller failed: %w", r.Err)
	return err.Error()
}

// Is ignores the internal error, thus making errors.Is work (as by default it compares the internal objects)
func (r RequestErr) Is(target error) bool {
	_, ok := target.(RequestErr)
	return ok
}
