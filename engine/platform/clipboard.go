package platform

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/spaghettifunk/d3d9ui/engine/core"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// SystemClipboard is the OS clipboard, text only.
type SystemClipboard struct{}

func initClipboard() error {
	clipboardOnce.Do(func() {
		if clipboardErr = clipboard.Init(); clipboardErr != nil {
			core.LogWarn("clipboard unavailable: %s", clipboardErr)
		}
	})
	return clipboardErr
}

func (SystemClipboard) ReadText() (string, error) {
	if err := initClipboard(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (SystemClipboard) WriteText(text string) error {
	if err := initClipboard(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// MemoryClipboard keeps text in memory. It backs tests and hosts that do not
// want the overlay touching the system clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (m *MemoryClipboard) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *MemoryClipboard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
