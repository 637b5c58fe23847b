package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

func TestFixedWindow(t *testing.T) {
	w := Fixed(ui.NewRect(0, 0, 1280, 720))
	r, err := w.ClientRect()
	require.NoError(t, err)
	assert.Equal(t, float32(1280), r.Width())
	assert.Equal(t, float32(720), r.Height())
}

func TestMemoryClipboard(t *testing.T) {
	var c MemoryClipboard
	text, err := c.ReadText()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, c.WriteText("héllo"))
	text, err = c.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "héllo", text)
}

func TestNoTheme(t *testing.T) {
	assert.Equal(t, ui.ThemeUnknown, NoTheme{}.SystemTheme())
}
