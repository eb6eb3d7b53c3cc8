//go:build !linux || !cgo

package keysctl

import "errors"

type alsaDriver struct{}

// NewALSADriver returns a driver that always fails to open on platforms
// without libasound
func NewALSADriver() Driver {
	return alsaDriver{}
}

func (alsaDriver) StepName(step Step) string {
	return alsaStepName(step)
}

func (alsaDriver) Open() (Session, error) {
	return nil, errors.New("alsa mixer is not supported on this platform")
}
