package keysctl

// MixerMode selects which simple mixer element and accessor set a Mixer binds
type MixerMode int

const (
	MixerModePlayback MixerMode = iota
	MixerModeCapture
)

func (m MixerMode) String() string {
	switch m {
	case MixerModePlayback:
		return "playback"
	case MixerModeCapture:
		return "capture"
	default:
		return "unknown"
	}
}

// MuteState maps 1:1 onto the driver's integer switch state
type MuteState int

const (
	MuteStateOff MuteState = 0
	MuteStateOn  MuteState = 1
)

func (s MuteState) String() string {
	if s == MuteStateOff {
		return "Off"
	}
	return "On"
}

// Invert returns the opposite state
func (s MuteState) Invert() MuteState {
	if s == MuteStateOff {
		return MuteStateOn
	}
	return MuteStateOff
}

// Channel identifies a mixer channel; only the front-left channel is ever read
type Channel int

const (
	ChannelFrontLeft Channel = 0
)

// Step names one stage of opening a mixer connection
type Step int

const (
	StepOpen Step = iota
	StepAttach
	StepRegister
	StepLoad
	StepFindElement
)

// AccessorOp names one of the five element accessor operations
type AccessorOp int

const (
	OpGetSwitch AccessorOp = iota
	OpSetSwitch
	OpGetVolumeRange
	OpGetVolume
	OpSetVolume
)

// Field identifies a status bar field that changed
type Field int

const (
	FieldVolume Field = iota
	FieldVolumeStatus
	FieldCapture
	FieldCaptureStatus
	FieldBacklight
)

func (f Field) String() string {
	switch f {
	case FieldVolume:
		return "volume"
	case FieldVolumeStatus:
		return "volume_status"
	case FieldCapture:
		return "capture"
	case FieldCaptureStatus:
		return "capture_status"
	case FieldBacklight:
		return "backlight"
	default:
		return "unknown"
	}
}

// ElementConfig names a simple mixer element
type ElementConfig struct {
	Name  string `mapstructure:"element"`
	Index int    `mapstructure:"index"`
}

// BacklightDevice is a backlight control directory with its raw levels
type BacklightDevice struct {
	Path          string
	Brightness    int64
	MaxBrightness int64
}
