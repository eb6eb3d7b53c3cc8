package keysctl

// Accessor is the mode-specific operation table bound to one simple mixer element
type Accessor interface {
	Switch(ch Channel) (int, error)
	SetSwitchAll(value int) error
	VolumeRange() (min, max int64, err error)
	Volume(ch Channel) (int64, error)
	SetVolumeAll(value int64) error
	// Name returns the driver function name of op for diagnostics
	Name(op AccessorOp) string
}

// alsaAccessorNames holds the libasound function names per mode
var alsaAccessorNames = map[MixerMode][5]string{
	MixerModePlayback: {
		OpGetSwitch:      "snd_mixer_selem_get_playback_switch",
		OpSetSwitch:      "snd_mixer_selem_set_playback_switch_all",
		OpGetVolumeRange: "snd_mixer_selem_get_playback_volume_range",
		OpGetVolume:      "snd_mixer_selem_get_playback_volume",
		OpSetVolume:      "snd_mixer_selem_set_playback_volume_all",
	},
	MixerModeCapture: {
		OpGetSwitch:      "snd_mixer_selem_get_capture_switch",
		OpSetSwitch:      "snd_mixer_selem_set_capture_switch_all",
		OpGetVolumeRange: "snd_mixer_selem_get_capture_volume_range",
		OpGetVolume:      "snd_mixer_selem_get_capture_volume",
		OpSetVolume:      "snd_mixer_selem_set_capture_volume_all",
	},
}

var alsaStepNames = [...]string{
	StepOpen:        "snd_mixer_open",
	StepAttach:      "snd_mixer_attach",
	StepRegister:    "snd_mixer_selem_register",
	StepLoad:        "snd_mixer_load",
	StepFindElement: "snd_mixer_find_selem",
}

func alsaAccessorName(mode MixerMode, op AccessorOp) string {
	names, ok := alsaAccessorNames[mode]
	if !ok || op < 0 || int(op) >= len(names) {
		return "unknown"
	}
	return names[op]
}

func alsaStepName(step Step) string {
	if step < 0 || int(step) >= len(alsaStepNames) {
		return "unknown"
	}
	return alsaStepNames[step]
}
