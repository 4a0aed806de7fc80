package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, v := range []string{"bob", "bob.smith", "bob@example", "bob+1", "bob-2", "Bob_3", "42"} {
			assert.NoError(t, Username(v), v)
		}
	})

	t.Run("Reserved", func(t *testing.T) {
		assert.Error(t, Username("me"))
		// only the exact value is reserved
		assert.NoError(t, Username("mee"))
		assert.NoError(t, Username("Me"))
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, v := range []string{"", "bob smith", "bob!", "böb#", strings.Repeat("a", 151)} {
			assert.Error(t, Username(v), v)
		}
	})

	t.Run("MaxLength", func(t *testing.T) {
		assert.NoError(t, Username(strings.Repeat("a", 150)))
	})
}

func TestYear(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, Year(current))
	assert.NoError(t, Year(current-1))
	assert.NoError(t, Year(1888))
	assert.Error(t, Year(current+1))
	assert.Error(t, Year(current+100))
}

func TestScore(t *testing.T) {
	for v := 1; v <= 10; v++ {
		assert.NoError(t, Score(v))
	}
	for _, v := range []int{0, -1, 11, 100} {
		assert.Error(t, Score(v), v)
	}
}

func TestSlug(t *testing.T) {
	for _, v := range []string{"films", "sci-fi", "top_10", "X"} {
		assert.NoError(t, Slug(v), v)
	}
	for _, v := range []string{"", "no spaces", "ключ", "slash/", strings.Repeat("a", 51)} {
		assert.Error(t, Slug(v), v)
	}
}
