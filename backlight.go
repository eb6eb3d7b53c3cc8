package keysctl

import (
	"bufio"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	DefaultBacklightRoot = "/sys/class/backlight"

	brightnessFile    = "brightness"
	maxBrightnessFile = "max_brightness"
)

// Backlight adjusts the brightness of the sole backlight device under Root.
// See https://docs.kernel.org/gpu/backlight.html for the sysfs layout.
type Backlight struct {
	Fs   afero.Fs
	Root string
}

// NewBacklight returns a Backlight over the real filesystem
func NewBacklight(root string) *Backlight {
	if root == "" {
		root = DefaultBacklightRoot
	}
	return &Backlight{Fs: afero.NewOsFs(), Root: root}
}

// FindDevice returns the first directory under Root holding both a brightness
// and a max_brightness file, in directory listing order
func (b *Backlight) FindDevice() (string, error) {
	entries, err := afero.ReadDir(b.Fs, b.Root)
	if err != nil {
		return "", errors.Wrapf(ErrNoBacklight, "reading %s: %v", b.Root, err)
	}

	for _, entry := range entries {
		dir := filepath.Join(b.Root, entry.Name())
		if !b.exists(filepath.Join(dir, brightnessFile)) {
			continue
		}
		if !b.exists(filepath.Join(dir, maxBrightnessFile)) {
			continue
		}
		return dir, nil
	}

	return "", ErrNoBacklight
}

// Device reads the current and maximum brightness of the selected device
func (b *Backlight) Device() (*BacklightDevice, error) {
	dir, err := b.FindDevice()
	if err != nil {
		return nil, err
	}

	brightness, err := readLong(b.Fs, filepath.Join(dir, brightnessFile))
	if err != nil {
		return nil, err
	}
	maxBrightness, err := readLong(b.Fs, filepath.Join(dir, maxBrightnessFile))
	if err != nil {
		return nil, err
	}

	return &BacklightDevice{
		Path:          dir,
		Brightness:    brightness,
		MaxBrightness: maxBrightness,
	}, nil
}

// Adjust changes brightness by percentChange percent of max_brightness,
// clamped to [0, max_brightness]
func (b *Backlight) Adjust(percentChange int64) error {
	dev, err := b.Device()
	if err != nil {
		return err
	}

	percentChange = clamp(percentChange, -100, 100)
	delta := int64(math.Round(float64(percentChange) * float64(dev.MaxBrightness) / 100))
	next := clamp(dev.Brightness+delta, 0, dev.MaxBrightness)

	return writeLong(b.Fs, filepath.Join(dev.Path, brightnessFile), next)
}

// Percent returns the current brightness as a percentage of max_brightness
func (b *Backlight) Percent() (int64, error) {
	dev, err := b.Device()
	if err != nil {
		return 0, err
	}
	if dev.MaxBrightness <= 0 {
		return 0, errors.Errorf("invalid max_brightness %d in %s", dev.MaxBrightness, dev.Path)
	}
	return ToPercent(0, dev.MaxBrightness, dev.Brightness), nil
}

func (b *Backlight) exists(path string) bool {
	ok, err := afero.Exists(b.Fs, path)
	return err == nil && ok
}

// readLong parses the first line of path as a signed decimal integer
func readLong(fs afero.Fs, path string) (int64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "opening brightness file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, errors.Wrapf(err, "reading %s", path)
		}
		return 0, errors.Errorf("%s is empty", path)
	}

	// the whole line must be an integer; "50abc" is rejected, not read as 50
	value, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", path)
	}
	return value, nil
}

// writeLong overwrites path with value as a decimal integer
func writeLong(fs afero.Fs, path string, value int64) error {
	err := afero.WriteFile(fs, path, []byte(strconv.FormatInt(value, 10)), 0644)
	return errors.Wrapf(err, "writing %s", path)
}
