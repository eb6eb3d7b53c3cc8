package keysctl

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	FunctionPlayback  = "playback"
	FunctionCapture   = "capture"
	FunctionBacklight = "backlight"

	ParamToggle = "toggle"
)

// Functions lists the accepted function names in usage order
var Functions = []string{FunctionPlayback, FunctionCapture, FunctionBacklight}

// Keys implements the multimedia key actions. Each action opens its handle for
// the duration of the call and notifies the status bar only on success.
type Keys struct {
	Driver    Driver
	Audio     AudioConfig
	Backlight *Backlight
	Notifier  Notifier
	Log       logrus.FieldLogger
}

// NewKeys wires the driver, backlight and notifier selected by cfg
func NewKeys(cfg *Config, log logrus.FieldLogger) (*Keys, error) {
	driver, err := NewDriver(cfg.Audio.Backend)
	if err != nil {
		return nil, err
	}
	return &Keys{
		Driver:    driver,
		Audio:     cfg.Audio,
		Backlight: NewBacklight(cfg.Backlight.Root),
		Notifier:  NewNotifier(cfg.Notify, log),
		Log:       log,
	}, nil
}

func (k *Keys) openMixer(mode MixerMode) *Mixer {
	return OpenMixer(k.Driver, k.Audio.Card, k.Audio.Element(mode), mode, k.Log)
}

func (k *Keys) toggle(mode MixerMode) error {
	mixer := k.openMixer(mode)
	defer mixer.Close()

	if !mixer.Good() {
		return ErrMixerInvalid
	}

	state, err := mixer.MuteState()
	if err != nil {
		return err
	}
	return mixer.SetMuteState(state.Invert())
}

func (k *Keys) volume(mode MixerMode, percentChange int64) error {
	mixer := k.openMixer(mode)
	defer mixer.Close()

	if !mixer.Good() {
		return ErrMixerInvalid
	}

	current, err := mixer.VolumePercent()
	if err != nil {
		return err
	}
	// changes past a full swing saturate so the sum cannot overflow
	percentChange = clamp(percentChange, -100, 100)
	return mixer.SetVolumePercent(clamp(current+percentChange, 0, 100))
}

func (k *Keys) notify(field Field, err error) error {
	if err != nil {
		return err
	}
	k.Notifier.Notify(field)
	return nil
}

// PlaybackToggle flips the playback switch
func (k *Keys) PlaybackToggle() error {
	return k.notify(FieldVolumeStatus, k.toggle(MixerModePlayback))
}

// Playback changes playback volume by percentChange, clamped to [0, 100]
func (k *Keys) Playback(percentChange int64) error {
	return k.notify(FieldVolume, k.volume(MixerModePlayback, percentChange))
}

// CaptureToggle flips the capture switch
func (k *Keys) CaptureToggle() error {
	return k.notify(FieldCaptureStatus, k.toggle(MixerModeCapture))
}

// Capture changes capture volume by percentChange, clamped to [0, 100]
func (k *Keys) Capture(percentChange int64) error {
	return k.notify(FieldCapture, k.volume(MixerModeCapture, percentChange))
}

// AdjustBacklight changes brightness by percentChange percent of the maximum
func (k *Keys) AdjustBacklight(percentChange int64) error {
	return k.notify(FieldBacklight, k.Backlight.Adjust(percentChange))
}

// Run dispatches one CLI call: param is "toggle" or a signed integer percent
func (k *Keys) Run(function, param string) error {
	switch function {
	case FunctionPlayback, FunctionCapture, FunctionBacklight:
	default:
		return errors.Wrap(ErrUnknownFunction, function)
	}

	if param == ParamToggle {
		switch function {
		case FunctionPlayback:
			return k.PlaybackToggle()
		case FunctionCapture:
			return k.CaptureToggle()
		default:
			return errors.Wrap(ErrToggleUnsupported, function)
		}
	}

	change, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid percent change '%s'", param)
	}

	switch function {
	case FunctionPlayback:
		return k.Playback(change)
	case FunctionCapture:
		return k.Capture(change)
	default:
		return k.AdjustBacklight(change)
	}
}

// Status is a read-only snapshot of every control
type Status struct {
	Playback     int64
	PlaybackMute MuteState
	Capture      int64
	CaptureMute  MuteState
	Backlight    int64
}

// ReadStatus collects what it can; the first error is returned alongside the
// partial snapshot
func (k *Keys) ReadStatus() (*Status, error) {
	st := &Status{}
	var first error
	keep := func(err error) {
		if first == nil && err != nil {
			first = err
		}
	}

	for _, mode := range []MixerMode{MixerModePlayback, MixerModeCapture} {
		volume, mute, err := k.readMixer(mode)
		keep(err)
		if mode == MixerModePlayback {
			st.Playback, st.PlaybackMute = volume, mute
		} else {
			st.Capture, st.CaptureMute = volume, mute
		}
	}

	backlight, err := k.Backlight.Percent()
	keep(err)
	st.Backlight = backlight

	return st, first
}

func (k *Keys) readMixer(mode MixerMode) (int64, MuteState, error) {
	mixer := k.openMixer(mode)
	defer mixer.Close()

	volume, err := mixer.VolumePercent()
	if err != nil {
		return 0, MuteStateOff, err
	}
	mute, err := mixer.MuteState()
	if err != nil {
		return volume, MuteStateOff, err
	}
	return volume, mute, nil
}
