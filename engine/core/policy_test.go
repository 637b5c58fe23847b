package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropagatePolicyReturnsError(t *testing.T) {
	err := errors.New("device removed")
	assert.ErrorIs(t, PropagatePolicy{}.Handle(fmt.Errorf("unable to lock: %w", err)), err)
	assert.NoError(t, PropagatePolicy{}.Handle(nil))
}

func TestTolerantPolicySwallowsDeviceFailures(t *testing.T) {
	assert.NoError(t, TolerantPolicy{}.Handle(errors.New("D3DERR_INVALIDCALL")))
	assert.NoError(t, TolerantPolicy{}.Handle(nil))
}

func TestContractViolations(t *testing.T) {
	for _, err := range []error{ErrTextureNotResident, ErrInvalidWindow, ErrPaintCallback, ErrNotInitialized} {
		assert.True(t, IsContractViolation(err), err.Error())
		assert.True(t, IsContractViolation(fmt.Errorf("texture 7: %w", err)))
	}
	assert.False(t, IsContractViolation(ErrBufferOverflow))
}

func TestNewPolicy(t *testing.T) {
	assert.IsType(t, TolerantPolicy{}, NewPolicy(true))
	assert.IsType(t, FatalPolicy{}, NewPolicy(false))
}

func TestPolicyLogsErrorTextVerbatim(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	err := errors.New(`open C:\games\100%dpi\overlay.toml: access denied`)
	assert.Error(t, PropagatePolicy{}.Handle(err))
	assert.Contains(t, buf.String(), "100%dpi")
	assert.NotContains(t, buf.String(), "%!")
}
