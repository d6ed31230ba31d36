package postgres_adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearchText(t *testing.T) {
	// "U" + комбинируемый умлаут приводится к одному символу
	assert.Equal(t, "über köln", normalizeSearchText("  ÜBER \t KÖLN "))
	assert.Equal(t, "dj nachtklang", normalizeSearchText("DJ   Nachtklang"))
	assert.Equal(t, "", normalizeSearchText("   "))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%a\%b\_c\\%`, likePattern(`a%b_c\`))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Event Space", displayName("EVENT_SPACE"))
	assert.Equal(t, "Sound System", displayName("sound-system"))
	assert.Equal(t, "Bar", displayName("BAR"))
}
