package core

// ErrorPolicy decides what happens to a failed device call. Handle returns
// nil when the caller should carry on and the (possibly wrapped) error when it
// should stop.
type ErrorPolicy interface {
	Handle(err error) error
}

// FatalPolicy aborts the process on any failure. This is the default: drawing
// on top of a half-configured device is worse than crashing with a diagnostic.
type FatalPolicy struct{}

func (FatalPolicy) Handle(err error) error {
	if err == nil {
		return nil
	}
	LogFatal("%s", err)
	return err
}

// TolerantPolicy swallows device failures and lets the frame proceed.
// Contract violations are still fatal.
type TolerantPolicy struct{}

func (TolerantPolicy) Handle(err error) error {
	if err == nil {
		return nil
	}
	if IsContractViolation(err) {
		LogFatal("%s", err)
		return err
	}
	LogDebug("ignoring device failure: %s", err)
	return nil
}

// PropagatePolicy hands every failure back to the caller untouched.
type PropagatePolicy struct{}

func (PropagatePolicy) Handle(err error) error {
	if err != nil {
		LogError("%s", err)
	}
	return err
}

// NewPolicy maps the tolerant configuration flag to a policy.
func NewPolicy(tolerant bool) ErrorPolicy {
	if tolerant {
		return TolerantPolicy{}
	}
	return FatalPolicy{}
}
