package keysctl

// Driver opens connections to an audio control subsystem
type Driver interface {
	// Open creates a new, unattached control session
	Open() (Session, error)
	// StepName returns the driver operation name used for diagnostics
	StepName(step Step) string
}

// Session is one open connection to the audio control subsystem
type Session interface {
	Attach(card string) error
	Register() error
	Load() error
	// FindElement returns a nil Accessor and nil error when the element does not exist
	FindElement(name string, index int, mode MixerMode) (Accessor, error)
	Close() error
}

// NewDriver returns the driver registered for the backend name
func NewDriver(backend string) (Driver, error) {
	switch backend {
	case BackendALSA:
		return NewALSADriver(), nil
	case BackendPulse:
		return NewPulseDriver(), nil
	default:
		return nil, &DriverError{Op: "NewDriver", Msg: "unsupported backend '" + backend + "'"}
	}
}

// openElement runs the open, attach, register, load and lookup sequence,
// stopping at the first failing step. The returned session, if any, must be
// closed by the caller even when err is non-nil.
func openElement(d Driver, card string, elem ElementConfig, mode MixerMode) (Session, Accessor, error) {
	session, err := d.Open()
	if err != nil {
		return nil, nil, driverError(d.StepName(StepOpen), err)
	}

	if err := session.Attach(card); err != nil {
		return session, nil, driverError(d.StepName(StepAttach), err)
	}
	if err := session.Register(); err != nil {
		return session, nil, driverError(d.StepName(StepRegister), err)
	}
	if err := session.Load(); err != nil {
		return session, nil, driverError(d.StepName(StepLoad), err)
	}

	accessor, err := session.FindElement(elem.Name, elem.Index, mode)
	if err != nil {
		return session, nil, driverError(d.StepName(StepFindElement), err)
	}
	if accessor == nil {
		return session, nil, driverError(d.StepName(StepFindElement), ErrElementNotFound)
	}

	return session, accessor, nil
}
