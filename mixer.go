package keysctl

import (
	"github.com/sirupsen/logrus"
)

// Mixer is one connection to the audio control subsystem bound to a single
// simple mixer element. A Mixer that failed to open reports Good() == false
// and every accessor returns ErrMixerInvalid without touching the driver.
type Mixer struct {
	mode     MixerMode
	session  Session
	accessor Accessor
	log      logrus.FieldLogger
	good     bool
}

// OpenMixer attaches to card and binds elem for mode. It never fails outright;
// initialization errors are logged and leave the handle invalid.
func OpenMixer(d Driver, card string, elem ElementConfig, mode MixerMode, log logrus.FieldLogger) *Mixer {
	m := &Mixer{mode: mode, log: log}

	session, accessor, err := openElement(d, card, elem, mode)
	m.session = session
	if err != nil {
		m.report(err)
		return m
	}

	m.accessor = accessor
	m.good = true
	return m
}

// Good reports whether every initialization step succeeded
func (m *Mixer) Good() bool {
	return m != nil && m.good
}

// Mode returns the mode the handle was opened with
func (m *Mixer) Mode() MixerMode {
	return m.mode
}

// MuteState reads the front-left channel switch
func (m *Mixer) MuteState() (MuteState, error) {
	if !m.Good() {
		return MuteStateOff, ErrMixerInvalid
	}

	value, err := m.accessor.Switch(ChannelFrontLeft)
	if err != nil {
		return MuteStateOff, m.fail(OpGetSwitch, err)
	}

	if value == 0 {
		return MuteStateOff, nil
	}
	return MuteStateOn, nil
}

// SetMuteState applies state to all channels
func (m *Mixer) SetMuteState(state MuteState) error {
	if !m.Good() {
		return ErrMixerInvalid
	}

	if err := m.accessor.SetSwitchAll(int(state)); err != nil {
		return m.fail(OpSetSwitch, err)
	}
	return nil
}

// VolumePercent reads the front-left channel volume as a percentage of the element's range
func (m *Mixer) VolumePercent() (int64, error) {
	if !m.Good() {
		return 0, ErrMixerInvalid
	}

	min, max, err := m.accessor.VolumeRange()
	if err != nil {
		return 0, m.fail(OpGetVolumeRange, err)
	}

	raw, err := m.accessor.Volume(ChannelFrontLeft)
	if err != nil {
		return 0, m.fail(OpGetVolume, err)
	}

	return ToPercent(min, max, raw), nil
}

// SetVolumePercent converts percent to the element's raw range and applies it
// to all channels. Callers clamp percent beforehand.
func (m *Mixer) SetVolumePercent(percent int64) error {
	if !m.Good() {
		return ErrMixerInvalid
	}

	min, max, err := m.accessor.VolumeRange()
	if err != nil {
		return m.fail(OpGetVolumeRange, err)
	}

	if err := m.accessor.SetVolumeAll(ToRaw(min, max, percent)); err != nil {
		return m.fail(OpSetVolume, err)
	}
	return nil
}

// Take moves the connection into a new handle. The receiver is left invalid
// and without a connection, so closing it is a no-op.
func (m *Mixer) Take() *Mixer {
	moved := &Mixer{
		mode:     m.mode,
		session:  m.session,
		accessor: m.accessor,
		log:      m.log,
		good:     m.good,
	}
	m.session = nil
	m.accessor = nil
	m.good = false
	return moved
}

// Close releases the connection. It is safe to call on an invalid handle and
// more than once.
func (m *Mixer) Close() {
	if m == nil {
		return
	}
	m.good = false
	m.accessor = nil
	if m.session == nil {
		return
	}
	session := m.session
	m.session = nil
	// nothing useful can be done if the close itself fails
	if err := session.Close(); err != nil {
		m.log.WithError(err).Debug("closing mixer session")
	}
}

func (m *Mixer) fail(op AccessorOp, err error) error {
	derr := driverError(m.accessor.Name(op), err)
	m.report(derr)
	return derr
}

func (m *Mixer) report(err error) {
	entry := m.log.WithField("mode", m.mode.String())
	if de, ok := err.(*DriverError); ok {
		entry.WithField("op", de.Op).Error(de.Msg)
		return
	}
	entry.Error(err.Error())
}
