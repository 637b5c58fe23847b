//go:build !windows

package platform

import (
	"fmt"

	"github.com/spaghettifunk/d3d9ui/engine/core"
)

func newPlatform(hwnd uintptr) (*Platform, error) {
	return nil, fmt.Errorf("window %#x: %w", hwnd, core.ErrUnsupported)
}
