//go:build linux && cgo

package keysctl

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

// Lookup helper; snd_mixer_selem_id_alloca is a macro and cannot be called from Go
static snd_mixer_elem_t *find_selem(snd_mixer_t *handle, const char *name, unsigned int index) {
	snd_mixer_selem_id_t *sid = NULL;
	if (snd_mixer_selem_id_malloc(&sid) < 0) {
		return NULL;
	}
	snd_mixer_selem_id_set_name(sid, name);
	snd_mixer_selem_id_set_index(sid, index);
	snd_mixer_elem_t *elem = snd_mixer_find_selem(handle, sid);
	snd_mixer_selem_id_free(sid);
	return elem;
}
*/
import "C"
import (
	"errors"
	"unsafe"
)

// alsaError converts ALSA error codes to Go errors carrying snd_strerror text
func alsaError(code C.int) error {
	if code >= 0 {
		return nil
	}
	return errors.New(C.GoString(C.snd_strerror(code)))
}

type alsaDriver struct{}

// NewALSADriver returns the libasound simple mixer driver
func NewALSADriver() Driver {
	return alsaDriver{}
}

func (alsaDriver) StepName(step Step) string {
	return alsaStepName(step)
}

func (alsaDriver) Open() (Session, error) {
	var handle *C.snd_mixer_t
	if err := alsaError(C.snd_mixer_open(&handle, 0)); err != nil {
		return nil, err
	}
	return &alsaSession{handle: handle}, nil
}

// alsaSession wraps a snd_mixer_t handle
type alsaSession struct {
	handle *C.snd_mixer_t
}

func (s *alsaSession) Attach(card string) error {
	cCard := C.CString(card)
	defer C.free(unsafe.Pointer(cCard))
	return alsaError(C.snd_mixer_attach(s.handle, cCard))
}

func (s *alsaSession) Register() error {
	return alsaError(C.snd_mixer_selem_register(s.handle, nil, nil))
}

func (s *alsaSession) Load() error {
	return alsaError(C.snd_mixer_load(s.handle))
}

func (s *alsaSession) FindElement(name string, index int, mode MixerMode) (Accessor, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	elem := C.find_selem(s.handle, cName, C.uint(index))
	if elem == nil {
		return nil, nil
	}

	if mode == MixerModeCapture {
		return &alsaCapture{elem: elem}, nil
	}
	return &alsaPlayback{elem: elem}, nil
}

func (s *alsaSession) Close() error {
	if s.handle == nil {
		return nil
	}
	err := alsaError(C.snd_mixer_close(s.handle))
	s.handle = nil
	return err
}

func channelID(ch Channel) C.snd_mixer_selem_channel_id_t {
	return C.snd_mixer_selem_channel_id_t(ch)
}

// alsaPlayback binds the snd_mixer_selem_*_playback_* family
type alsaPlayback struct {
	elem *C.snd_mixer_elem_t
}

func (a *alsaPlayback) Name(op AccessorOp) string {
	return alsaAccessorName(MixerModePlayback, op)
}

func (a *alsaPlayback) Switch(ch Channel) (int, error) {
	var value C.int = -1
	if err := alsaError(C.snd_mixer_selem_get_playback_switch(a.elem, channelID(ch), &value)); err != nil {
		return 0, err
	}
	return int(value), nil
}

func (a *alsaPlayback) SetSwitchAll(value int) error {
	return alsaError(C.snd_mixer_selem_set_playback_switch_all(a.elem, C.int(value)))
}

func (a *alsaPlayback) VolumeRange() (int64, int64, error) {
	var min, max C.long = -1, -1
	if err := alsaError(C.snd_mixer_selem_get_playback_volume_range(a.elem, &min, &max)); err != nil {
		return 0, 0, err
	}
	return int64(min), int64(max), nil
}

func (a *alsaPlayback) Volume(ch Channel) (int64, error) {
	var value C.long = -1
	if err := alsaError(C.snd_mixer_selem_get_playback_volume(a.elem, channelID(ch), &value)); err != nil {
		return 0, err
	}
	return int64(value), nil
}

func (a *alsaPlayback) SetVolumeAll(value int64) error {
	return alsaError(C.snd_mixer_selem_set_playback_volume_all(a.elem, C.long(value)))
}

// alsaCapture binds the snd_mixer_selem_*_capture_* family
type alsaCapture struct {
	elem *C.snd_mixer_elem_t
}

func (a *alsaCapture) Name(op AccessorOp) string {
	return alsaAccessorName(MixerModeCapture, op)
}

func (a *alsaCapture) Switch(ch Channel) (int, error) {
	var value C.int = -1
	if err := alsaError(C.snd_mixer_selem_get_capture_switch(a.elem, channelID(ch), &value)); err != nil {
		return 0, err
	}
	return int(value), nil
}

func (a *alsaCapture) SetSwitchAll(value int) error {
	return alsaError(C.snd_mixer_selem_set_capture_switch_all(a.elem, C.int(value)))
}

func (a *alsaCapture) VolumeRange() (int64, int64, error) {
	var min, max C.long = -1, -1
	if err := alsaError(C.snd_mixer_selem_get_capture_volume_range(a.elem, &min, &max)); err != nil {
		return 0, 0, err
	}
	return int64(min), int64(max), nil
}

func (a *alsaCapture) Volume(ch Channel) (int64, error) {
	var value C.long = -1
	if err := alsaError(C.snd_mixer_selem_get_capture_volume(a.elem, channelID(ch), &value)); err != nil {
		return 0, err
	}
	return int64(value), nil
}

func (a *alsaCapture) SetVolumeAll(value int64) error {
	return alsaError(C.snd_mixer_selem_set_capture_volume_all(a.elem, C.long(value)))
}
