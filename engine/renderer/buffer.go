package renderer

import (
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/d3d9ui/engine/core"
)

// WriteDiscard maps buf with LOCK_DISCARD, copies data to the start of it and
// unmaps it again, on every path. Previous contents are never read.
func WriteDiscard[T any](buf Lockable, data []T) (err error) {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := len(data) * int(unsafe.Sizeof(zero))

	mem, err := buf.Lock(0, uint32(size), LOCK_DISCARD)
	if err != nil {
		return fmt.Errorf("unable to lock buffer: %w", err)
	}
	defer func() {
		if uerr := buf.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("unable to unlock buffer: %w", uerr)
		}
	}()

	if len(mem) < size {
		return fmt.Errorf("%w: need %d bytes, mapped %d", core.ErrBufferOverflow, size, len(mem))
	}
	copy(mem, unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), size))
	return nil
}
