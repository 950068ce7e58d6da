package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.NotEmpty(t, km.Quit.Keys())
	assert.NotEmpty(t, km.Send.Keys())
	assert.NotEmpty(t, km.ScrollUp.Keys())
	assert.NotEmpty(t, km.ScrollDown.Keys())
	assert.NotEmpty(t, km.Clear.Keys())
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"ctrl+c quits", "ctrl+c", true},
		{"ctrl+d quits", "ctrl+d", true},
		{"q is typed text", "q", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, km.Quit))
		})
	}

	assert.True(t, Matches("enter", km.Send))
	assert.True(t, Matches("pgup", km.ScrollUp))
	assert.True(t, Matches("pgdown", km.ScrollDown))
	assert.False(t, Matches("j", km.ScrollDown))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.ShortHelp()

	require.Len(t, help, 3)
	assert.Equal(t, "enter", help[0].Help().Key)
	assert.Equal(t, "quit", help[2].Help().Desc)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	groups := km.FullHelp()

	require.Len(t, groups, 3)
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 5, total)
}
