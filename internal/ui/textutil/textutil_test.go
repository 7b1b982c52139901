package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCountsColumnsNotRunes(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "日本…", Truncate("日本語のホスト名", 5), "wide runes take two columns")
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestPadRightVisual(t *testing.T) {
	assert.Equal(t, "ab  ", PadRightVisual("ab", 4))
	assert.Equal(t, "日本  ", PadRightVisual("日本", 6))
	assert.Equal(t, "ab", PadRightVisual("ab", 2), "exact fit is untouched")
	assert.Equal(t, "a…", PadRightVisual("abcd", 2), "overlong values truncate")
}
