package keysctl

import (
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

const (
	NotifySignal = "signal"
	NotifyDBus   = "dbus"
	NotifyNone   = "none"

	// DefaultSignalBase is SIGRTMIN as exposed by glibc, which reserves the first two
	DefaultSignalBase   = 34
	DefaultStatusBarCmd = "status_bar"

	DBusPath      = dbus.ObjectPath("/org/keysctl/StatusBar")
	DBusInterface = "org.keysctl.StatusBar"
)

// Notifier tells the status bar which field changed. Delivery is best effort.
type Notifier interface {
	Notify(field Field)
}

// NopNotifier drops every notification
type NopNotifier struct{}

func (NopNotifier) Notify(Field) {}

// SignalNotifier sends real-time signal Base+field to every process whose
// command name is Process
type SignalNotifier struct {
	Process string
	Base    int
	Proc    afero.Fs
	Kill    func(pid int, sig syscall.Signal) error
	Log     logrus.FieldLogger
}

// NewSignalNotifier returns a SignalNotifier scanning the real /proc
func NewSignalNotifier(process string, base int, log logrus.FieldLogger) *SignalNotifier {
	return &SignalNotifier{
		Process: process,
		Base:    base,
		Proc:    afero.NewBasePathFs(afero.NewOsFs(), "/proc"),
		Kill:    unix.Kill,
		Log:     log,
	}
}

func (n *SignalNotifier) Notify(field Field) {
	sig := syscall.Signal(n.Base + int(field))
	pids, err := n.findProcesses()
	if err != nil {
		n.Log.WithError(err).Debug("scanning processes")
		return
	}
	if len(pids) == 0 {
		n.Log.WithField("process", n.Process).Debug("status bar not running")
		return
	}

	for _, pid := range pids {
		if err := n.Kill(pid, sig); err != nil {
			n.Log.WithError(err).WithField("pid", pid).Debug("signalling status bar")
		}
	}
}

// findProcesses lists pids whose comm matches Process
func (n *SignalNotifier) findProcesses() ([]int, error) {
	entries, err := afero.ReadDir(n.Proc, "/")
	if err != nil {
		return nil, err
	}

	var pids []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, err := afero.ReadFile(n.Proc, filepath.Join("/", entry.Name(), "comm"))
		if err != nil {
			// process exited while scanning
			continue
		}
		if strings.TrimSpace(string(comm)) == n.Process {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}

// DBusNotifier emits a FieldChanged signal on the session bus
type DBusNotifier struct {
	Connect func() (*dbus.Conn, error)
	Log     logrus.FieldLogger
}

// NewDBusNotifier returns a DBusNotifier for the session bus
func NewDBusNotifier(log logrus.FieldLogger) *DBusNotifier {
	return &DBusNotifier{Connect: func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() }, Log: log}
}

func (n *DBusNotifier) Notify(field Field) {
	conn, err := n.Connect()
	if err != nil {
		n.Log.WithError(err).Debug("connecting to session bus")
		return
	}
	defer conn.Close()

	if err := conn.Emit(DBusPath, DBusInterface+".FieldChanged", field.String()); err != nil {
		n.Log.WithError(err).Debug("emitting field change")
	}
}

// NewNotifier builds the notifier selected by cfg
func NewNotifier(cfg NotifyConfig, log logrus.FieldLogger) Notifier {
	switch cfg.Method {
	case NotifySignal:
		return NewSignalNotifier(cfg.Process, cfg.SignalBase, log)
	case NotifyDBus:
		return NewDBusNotifier(log)
	default:
		return NopNotifier{}
	}
}
