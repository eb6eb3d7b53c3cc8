package keysctl

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T, d *fakeDriver, b *Backlight) (*Keys, *recordingNotifier) {
	t.Helper()
	log, _ := test.NewNullLogger()
	n := &recordingNotifier{}
	return &Keys{
		Driver: d,
		Audio: AudioConfig{
			Backend:  BackendALSA,
			Card:     "default",
			Playback: ElementConfig{Name: "Master"},
			Capture:  ElementConfig{Name: "Capture"},
		},
		Backlight: b,
		Notifier:  n,
		Log:       log,
	}, n
}

func TestPlaybackToggle(t *testing.T) {
	d := newFakeDriver()
	d.switchVal = int(MuteStateOff)
	k, n := newTestKeys(t, d, nil)

	require.NoError(t, k.Run(FunctionPlayback, ParamToggle))
	assert.Equal(t, int(MuteStateOn), d.switchVal)
	assert.Equal(t, "Master", d.lastElem)
	assert.Equal(t, MixerModePlayback, d.lastMode)

	require.NoError(t, k.Run(FunctionPlayback, ParamToggle))
	assert.Equal(t, int(MuteStateOff), d.switchVal)

	assert.Equal(t, []Field{FieldVolumeStatus, FieldVolumeStatus}, n.fields)
	assert.Equal(t, d.opens, d.closes)
}

func TestCaptureToggle(t *testing.T) {
	d := newFakeDriver()
	d.switchVal = int(MuteStateOn)
	k, n := newTestKeys(t, d, nil)

	require.NoError(t, k.CaptureToggle())
	assert.Equal(t, int(MuteStateOff), d.switchVal)
	assert.Equal(t, "Capture", d.lastElem)
	assert.Equal(t, MixerModeCapture, d.lastMode)
	assert.Equal(t, []Field{FieldCaptureStatus}, n.fields)
}

func TestVolumeChangeClamps(t *testing.T) {
	tests := []struct {
		name   string
		start  int64
		change string
		want   int64
	}{
		{"up clamps at 100", 95, "+20", 100},
		{"down clamps at 0", 5, "-20", 0},
		{"plain increase", 40, "10", 50},
		{"plain decrease", 40, "-15", 25},
		{"zero", 40, "0", 40},
		{"huge increase saturates", 50, "9223372036854775807", 100},
		{"huge decrease saturates", 50, "-9223372036854775808", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			d.min, d.max, d.raw = 0, 100, tt.start
			k, n := newTestKeys(t, d, nil)

			require.NoError(t, k.Run(FunctionPlayback, tt.change))
			require.Len(t, d.setVolumes, 1)
			assert.Equal(t, tt.want, d.setVolumes[0])
			assert.Equal(t, []Field{FieldVolume}, n.fields)
		})
	}
}

func TestCaptureVolumeUsesRawRange(t *testing.T) {
	d := newFakeDriver()
	d.min, d.max, d.raw = 0, 63, 0
	k, n := newTestKeys(t, d, nil)

	require.NoError(t, k.Capture(50))
	// 50% of 63 is 31.5; the raw value lands on one side of the tie
	assert.InDelta(t, 31.5, float64(d.raw), 0.5)
	assert.Equal(t, []Field{FieldCapture}, n.fields)
}

func TestFailuresDoNotNotify(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *fakeDriver)
		run   func(k *Keys) error
	}{
		{"attach fails", func(d *fakeDriver) { d.failStep[StepAttach] = true },
			func(k *Keys) error { return k.PlaybackToggle() }},
		{"missing element", func(d *fakeDriver) { d.missing = true },
			func(k *Keys) error { return k.Capture(5) }},
		{"get switch fails", func(d *fakeDriver) { d.failOp[OpGetSwitch] = true },
			func(k *Keys) error { return k.CaptureToggle() }},
		{"set switch fails", func(d *fakeDriver) { d.failOp[OpSetSwitch] = true },
			func(k *Keys) error { return k.PlaybackToggle() }},
		{"get volume fails", func(d *fakeDriver) { d.failOp[OpGetVolume] = true },
			func(k *Keys) error { return k.Playback(5) }},
		{"set volume fails", func(d *fakeDriver) { d.failOp[OpSetVolume] = true },
			func(k *Keys) error { return k.Playback(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			tt.setup(d)
			k, n := newTestKeys(t, d, nil)

			assert.Error(t, tt.run(k))
			assert.Empty(t, n.fields)
			assert.Equal(t, d.opens, d.closes)
		})
	}
}

func TestBacklightAction(t *testing.T) {
	b := newTestBacklight(t, map[string][2]string{"intel_backlight": {"50", "200"}})
	k, n := newTestKeys(t, newFakeDriver(), b)

	require.NoError(t, k.Run(FunctionBacklight, "+10"))
	assert.Equal(t, "70", readBrightness(t, b, "intel_backlight"))
	assert.Equal(t, []Field{FieldBacklight}, n.fields)
}

func TestBacklightActionWithoutDevice(t *testing.T) {
	b := newTestBacklight(t, nil)
	k, n := newTestKeys(t, newFakeDriver(), b)

	assert.ErrorIs(t, k.Run(FunctionBacklight, "10"), ErrNoBacklight)
	assert.Empty(t, n.fields)
}

func TestRunRejectsBadArguments(t *testing.T) {
	d := newFakeDriver()
	k, n := newTestKeys(t, d, newTestBacklight(t, nil))

	assert.ErrorIs(t, k.Run("volume", "10"), ErrUnknownFunction)
	assert.ErrorIs(t, k.Run(FunctionBacklight, ParamToggle), ErrToggleUnsupported)
	assert.Error(t, k.Run(FunctionPlayback, "loud"))
	assert.Error(t, k.Run(FunctionCapture, "5%"))

	assert.Empty(t, d.calls)
	assert.Empty(t, n.fields)
}

func TestReadStatus(t *testing.T) {
	d := newFakeDriver()
	d.min, d.max, d.raw, d.switchVal = 0, 200, 50, 1
	b := newTestBacklight(t, map[string][2]string{"intel_backlight": {"30", "120"}})
	k, n := newTestKeys(t, d, b)

	st, err := k.ReadStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(25), st.Playback)
	assert.Equal(t, MuteStateOn, st.PlaybackMute)
	assert.Equal(t, int64(25), st.Capture)
	assert.Equal(t, int64(25), st.Backlight)
	assert.Empty(t, n.fields)
	assert.Empty(t, d.setVolumes)
}
