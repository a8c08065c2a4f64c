package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"helloclock.dev/input"
)

func TestDefault(t *testing.T) {
	b := Default()
	assert.Equal(t, "waveshare-1.3-hat", b.Name)
	pins := b.KeyPins()
	assert.Equal(t, "GPIO21", pins[input.Back])
	assert.Len(t, pins, int(input.MaxKey))
	assert.Equal(t, 240, b.LCD.Width)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no back key", "keys: {ok: GPIO1}\nled: GPIO2\n"},
		{"unknown key", "keys: {back: GPIO1, select: GPIO2}\n"},
		{"unknown field", "keys: {back: GPIO1}\nbuzzer: GPIO3\n"},
		{"shared pin", "keys: {back: GPIO1, ok: GPIO1}\n"},
		{"missing lcd pins", "keys: {back: GPIO1}\nled: GPIO2\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.yaml))
			assert.Error(t, err)
		})
	}
}

func TestMissingBack(t *testing.T) {
	_, err := Parse([]byte("keys: {ok: GPIO1}\n"))
	assert.True(t, errors.Is(err, ErrMissingPin), "got %v", err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, waveshareHAT, 0o640))
	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), b)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
