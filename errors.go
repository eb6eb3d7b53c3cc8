package keysctl

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMixerInvalid      = errors.New("mixer handle is not valid")
	ErrElementNotFound   = errors.New("failed to find the simple mixer element handle")
	ErrNoBacklight       = errors.New("no backlight device found")
	ErrToggleUnsupported = errors.New("toggle is not supported for this function")
	ErrUnknownFunction   = errors.New("unknown function")
)

// DriverError reports a failed call into the audio subsystem
type DriverError struct {
	Op  string
	Msg string
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%s(): %s", e.Op, e.Msg)
}

func driverError(op string, err error) error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DriverError); ok {
		return de
	}
	return &DriverError{Op: op, Msg: err.Error()}
}
