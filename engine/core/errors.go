package core

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation marks errors caused by a broken agreement between
	// the backend and the toolkit or host. They are never tolerated.
	ErrContractViolation = errors.New("contract violation")

	ErrTextureNotResident = fmt.Errorf("%w: texture is not resident", ErrContractViolation)
	ErrInvalidWindow      = fmt.Errorf("%w: invalid window handle", ErrContractViolation)
	ErrPaintCallback      = fmt.Errorf("%w: paint callbacks are not supported", ErrContractViolation)
	ErrNotInitialized     = fmt.Errorf("%w: backend used before initialization", ErrContractViolation)

	ErrBufferOverflow = errors.New("payload exceeds locked buffer range")
	ErrUnsupported    = errors.New("unsupported on this platform")
)

// IsContractViolation reports whether err stems from a broken contract.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}
