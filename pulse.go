package keysctl

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/jfreymuth/pulse/proto"
)

const (
	BackendALSA  = "alsa"
	BackendPulse = "pulse"
)

const defaultCard = "default"

var pulseStepNames = [...]string{
	StepOpen:        "proto.Connect",
	StepAttach:      "SelectDevice",
	StepRegister:    "SetClientName",
	StepLoad:        "GetServerInfo",
	StepFindElement: "LookupDevice",
}

type pulseDriver struct {
	server string
}

// NewPulseDriver returns a driver that talks to the PulseAudio (or
// PipeWire-pulse) server and binds the default sink or source
func NewPulseDriver() Driver {
	return &pulseDriver{}
}

func (d *pulseDriver) StepName(step Step) string {
	if step < 0 || int(step) >= len(pulseStepNames) {
		return "unknown"
	}
	return pulseStepNames[step]
}

// Open connects and authenticates; proto.Connect sends the Auth request
// (protocol version and cookie) before returning.
func (d *pulseDriver) Open() (Session, error) {
	client, conn, err := proto.Connect(d.server)
	if err != nil {
		return nil, err
	}
	return &pulseSession{client: client, conn: conn}, nil
}

// pulseRequester is the part of *proto.Client the backend uses
type pulseRequester interface {
	Request(req proto.RequestArgs, rpl proto.Reply) error
}

// pulseClientProps identifies this tool to the server
func pulseClientProps() proto.PropList {
	return proto.PropList{
		"application.name":           proto.PropListString(path.Base(os.Args[0])),
		"application.process.id":     proto.PropListString(fmt.Sprintf("%d", os.Getpid())),
		"application.process.binary": proto.PropListString(os.Args[0]),
	}
}

// pulseSession holds one protocol connection. "card" selects the device:
// "default" resolves to the server's default sink/source, anything else is
// taken as a sink/source name. No query is sent before the client name is set.
type pulseSession struct {
	client pulseRequester
	conn   io.Closer
	card   string
	sink   string
	source string
}

func (s *pulseSession) Attach(card string) error {
	if card == "" {
		card = defaultCard
	}
	s.card = card
	return nil
}

func (s *pulseSession) Register() error {
	var reply proto.SetClientNameReply
	return s.client.Request(&proto.SetClientName{Props: pulseClientProps()}, &reply)
}

func (s *pulseSession) Load() error {
	var info proto.GetServerInfoReply
	if err := s.client.Request(&proto.GetServerInfo{}, &info); err != nil {
		return err
	}
	s.sink, s.source = s.card, s.card
	if s.card == defaultCard {
		s.sink = info.DefaultSinkName
		s.source = info.DefaultSourceName
	}
	if s.sink == "" && s.source == "" {
		return fmt.Errorf("no device for card '%s'", s.card)
	}
	return nil
}

func (s *pulseSession) FindElement(_ string, _ int, mode MixerMode) (Accessor, error) {
	var device pulseDevice
	if mode == MixerModeCapture {
		device = &pulseSource{client: s.client, name: s.source}
	} else {
		device = &pulseSink{client: s.client, name: s.sink}
	}

	if _, _, err := device.info(); err != nil {
		// unknown devices surface as lookup misses
		return nil, nil
	}
	return &pulseAccessor{device: device, mode: mode}, nil
}

func (s *pulseSession) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// pulseDevice abstracts over sinks and sources
type pulseDevice interface {
	info() (proto.ChannelVolumes, bool, error)
	setVolume(volumes proto.ChannelVolumes) error
	setMute(mute bool) error
}

type pulseSink struct {
	client pulseRequester
	name   string
}

func (p *pulseSink) info() (proto.ChannelVolumes, bool, error) {
	var reply proto.GetSinkInfoReply
	req := proto.GetSinkInfo{SinkIndex: proto.Undefined, SinkName: p.name}
	if err := p.client.Request(&req, &reply); err != nil {
		return nil, false, err
	}
	return reply.ChannelVolumes, reply.Mute, nil
}

func (p *pulseSink) setVolume(volumes proto.ChannelVolumes) error {
	req := proto.SetSinkVolume{SinkIndex: proto.Undefined, SinkName: p.name, ChannelVolumes: volumes}
	return p.client.Request(&req, nil)
}

func (p *pulseSink) setMute(mute bool) error {
	req := proto.SetSinkMute{SinkIndex: proto.Undefined, SinkName: p.name, Mute: mute}
	return p.client.Request(&req, nil)
}

type pulseSource struct {
	client pulseRequester
	name   string
}

func (p *pulseSource) info() (proto.ChannelVolumes, bool, error) {
	var reply proto.GetSourceInfoReply
	req := proto.GetSourceInfo{SourceIndex: proto.Undefined, SourceName: p.name}
	if err := p.client.Request(&req, &reply); err != nil {
		return nil, false, err
	}
	return reply.ChannelVolumes, reply.Mute, nil
}

func (p *pulseSource) setVolume(volumes proto.ChannelVolumes) error {
	req := proto.SetSourceVolume{SourceIndex: proto.Undefined, SourceName: p.name, ChannelVolumes: volumes}
	return p.client.Request(&req, nil)
}

func (p *pulseSource) setMute(mute bool) error {
	req := proto.SetSourceMute{SourceIndex: proto.Undefined, SourceName: p.name, Mute: mute}
	return p.client.Request(&req, nil)
}

// pulseAccessor presents a sink or source through the simple mixer accessor
// table: range [0, VolumeNorm], channel 0 is front-left, switch on means unmuted
type pulseAccessor struct {
	device pulseDevice
	mode   MixerMode
}

func (a *pulseAccessor) Name(op AccessorOp) string {
	kind := "Sink"
	if a.mode == MixerModeCapture {
		kind = "Source"
	}
	switch op {
	case OpGetSwitch, OpGetVolume:
		return "Get" + kind + "Info"
	case OpSetSwitch:
		return "Set" + kind + "Mute"
	case OpGetVolumeRange:
		return "VolumeNorm"
	case OpSetVolume:
		return "Set" + kind + "Volume"
	default:
		return "unknown"
	}
}

func (a *pulseAccessor) Switch(ch Channel) (int, error) {
	_, mute, err := a.device.info()
	if err != nil {
		return 0, err
	}
	if mute {
		return 0, nil
	}
	return 1, nil
}

func (a *pulseAccessor) SetSwitchAll(value int) error {
	return a.device.setMute(value == 0)
}

func (a *pulseAccessor) VolumeRange() (int64, int64, error) {
	return 0, int64(proto.VolumeNorm), nil
}

func (a *pulseAccessor) Volume(ch Channel) (int64, error) {
	volumes, _, err := a.device.info()
	if err != nil {
		return 0, err
	}
	if int(ch) >= len(volumes) {
		return 0, fmt.Errorf("channel %d not present", ch)
	}
	return int64(volumes[ch]), nil
}

func (a *pulseAccessor) SetVolumeAll(value int64) error {
	volumes, _, err := a.device.info()
	if err != nil {
		return err
	}
	if len(volumes) == 0 {
		return fmt.Errorf("device reports no channels")
	}
	if value < 0 {
		value = 0
	}
	next := make(proto.ChannelVolumes, len(volumes))
	for i := range next {
		next[i] = uint32(value)
	}
	return a.device.setVolume(next)
}
