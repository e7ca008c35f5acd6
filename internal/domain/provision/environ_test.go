//go:build unit
// +build unit

package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnviron_SetAndGet(t *testing.T) {
	env := NewEnviron([]string{"PATH=/usr/bin", "HOME=/home/dev"})

	value, ok := env.Get("PATH")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin", value)

	env.Set("VIRTUAL_ENV", "/home/dev/venv")
	value, ok = env.Get("VIRTUAL_ENV")
	require.True(t, ok)
	assert.Equal(t, "/home/dev/venv", value)

	_, ok = env.Get("MISSING")
	assert.False(t, ok)
}

func TestEnviron_PrependPath(t *testing.T) {
	env := NewEnviron([]string{"LD_LIBRARY_PATH=/opt/lib"})

	env.PrependPath("LD_LIBRARY_PATH", "/usr/local/lib")
	value, _ := env.Get("LD_LIBRARY_PATH")
	assert.Equal(t, "/usr/local/lib:/opt/lib", value)

	// An unset variable becomes the bare value with no separator.
	env.PrependPath("PYTHONPATH", "/home/dev/lazyflow")
	value, _ = env.Get("PYTHONPATH")
	assert.Equal(t, "/home/dev/lazyflow", value)
}

func TestEnviron_RenderSortedPairs(t *testing.T) {
	env := NewEnviron([]string{"B=2", "A=1"})
	env.Set("C", "3")

	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, env.Environ())
}

func TestEnviron_IgnoresMalformedEntries(t *testing.T) {
	env := NewEnviron([]string{"VALID=yes", "malformed", "=empty-key"})

	assert.Equal(t, []string{"VALID=yes"}, env.Environ())
}
