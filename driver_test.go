package keysctl

import (
	"errors"
	"fmt"
)

// fakeDriver simulates the audio subsystem and records every driver call
type fakeDriver struct {
	failStep   map[Step]bool
	missing    bool
	failOp     map[AccessorOp]bool
	min, max   int64
	raw        int64
	switchVal  int
	calls      []string
	opens      int
	closes     int
	lastCard   string
	lastElem   string
	lastIndex  int
	lastMode   MixerMode
	setVolumes []int64
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		failStep:  map[Step]bool{},
		failOp:    map[AccessorOp]bool{},
		min:       0,
		max:       100,
		raw:       50,
		switchVal: 1,
	}
}

func (d *fakeDriver) StepName(step Step) string {
	return alsaStepName(step)
}

func (d *fakeDriver) Open() (Session, error) {
	d.calls = append(d.calls, "open")
	if d.failStep[StepOpen] {
		return nil, errors.New("No such device")
	}
	d.opens++
	return &fakeSession{d: d}, nil
}

type fakeSession struct {
	d *fakeDriver
}

func (s *fakeSession) step(step Step, name string) error {
	s.d.calls = append(s.d.calls, name)
	if s.d.failStep[step] {
		return errors.New("Invalid argument")
	}
	return nil
}

func (s *fakeSession) Attach(card string) error {
	s.d.lastCard = card
	return s.step(StepAttach, "attach")
}

func (s *fakeSession) Register() error { return s.step(StepRegister, "register") }

func (s *fakeSession) Load() error { return s.step(StepLoad, "load") }

func (s *fakeSession) FindElement(name string, index int, mode MixerMode) (Accessor, error) {
	s.d.lastElem, s.d.lastIndex, s.d.lastMode = name, index, mode
	if err := s.step(StepFindElement, "find"); err != nil {
		return nil, err
	}
	if s.d.missing {
		return nil, nil
	}
	return &fakeAccessor{d: s.d, mode: mode}, nil
}

func (s *fakeSession) Close() error {
	s.d.calls = append(s.d.calls, "close")
	s.d.closes++
	return nil
}

type fakeAccessor struct {
	d    *fakeDriver
	mode MixerMode
}

func (a *fakeAccessor) call(op AccessorOp) error {
	a.d.calls = append(a.d.calls, a.Name(op))
	if a.d.failOp[op] {
		return errors.New("Input/output error")
	}
	return nil
}

func (a *fakeAccessor) Name(op AccessorOp) string {
	return alsaAccessorName(a.mode, op)
}

func (a *fakeAccessor) Switch(ch Channel) (int, error) {
	if ch != ChannelFrontLeft {
		return 0, fmt.Errorf("unexpected channel %d", ch)
	}
	if err := a.call(OpGetSwitch); err != nil {
		return 0, err
	}
	return a.d.switchVal, nil
}

func (a *fakeAccessor) SetSwitchAll(value int) error {
	if err := a.call(OpSetSwitch); err != nil {
		return err
	}
	a.d.switchVal = value
	return nil
}

func (a *fakeAccessor) VolumeRange() (int64, int64, error) {
	if err := a.call(OpGetVolumeRange); err != nil {
		return 0, 0, err
	}
	return a.d.min, a.d.max, nil
}

func (a *fakeAccessor) Volume(ch Channel) (int64, error) {
	if ch != ChannelFrontLeft {
		return 0, fmt.Errorf("unexpected channel %d", ch)
	}
	if err := a.call(OpGetVolume); err != nil {
		return 0, err
	}
	return a.d.raw, nil
}

func (a *fakeAccessor) SetVolumeAll(value int64) error {
	if err := a.call(OpSetVolume); err != nil {
		return err
	}
	a.d.raw = value
	a.d.setVolumes = append(a.d.setVolumes, value)
	return nil
}

// accessorCalls counts calls that reached an element accessor
func (d *fakeDriver) accessorCalls() int {
	n := 0
	for _, c := range d.calls {
		switch c {
		case "open", "attach", "register", "load", "find", "close":
		default:
			n++
		}
	}
	return n
}

// recordingNotifier captures notified fields
type recordingNotifier struct {
	fields []Field
}

func (n *recordingNotifier) Notify(field Field) {
	n.fields = append(n.fields, field)
}
