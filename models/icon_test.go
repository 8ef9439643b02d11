package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIcon(t *testing.T) {
	knownKeys := []string{
		"Code", "ShoppingCart", "MessageSquare", "Bot",
		"Smartphone", "LayoutDashboard", "Blocks",
	}
	for _, key := range knownKeys {
		assert.Equal(t, Icon(key), ResolveIcon(key), "known key %q should resolve to itself", key)
	}
}

func TestResolveIconDefaultsUnknownKeys(t *testing.T) {
	tests := []string{"", "Rocket", "code", "CODE", "Code "}
	for _, key := range tests {
		assert.Equal(t, IconCode, ResolveIcon(key), "unknown key %q should resolve to the code glyph", key)
	}
}
