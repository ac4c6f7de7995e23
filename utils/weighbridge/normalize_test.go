package weighbridge

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLineHandling(t *testing.T) {
	doc := normalize("A\r\nB\rC\n\n\tD\u00a0E\n")

	assert.Equal(t, []string{"A", "B", "C", "D E"}, doc.lines)
	assert.Equal(t, "A\nB\nC\nD E", doc.full)
}

func TestNormalizeSanitizesInvalidUTF8(t *testing.T) {
	doc := normalize("\xffGross: 28900")

	assert.True(t, utf8.ValidString(doc.full))
	assert.Equal(t, 1, len(doc.lines))
}

func TestNormalizeEmptyInput(t *testing.T) {
	doc := normalize("  \n\t\n")

	assert.Empty(t, doc.lines)
	assert.Equal(t, "", doc.full)
	assert.Equal(t, -1, doc.dateStart)
	assert.Equal(t, -1, doc.dateEnd)
}

func TestLineIndexAndSpan(t *testing.T) {
	doc := normalize("A\nB\nC\nD E")

	assert.Equal(t, 0, doc.lineIndexAt(0))
	assert.Equal(t, 2, doc.lineIndexAt(4))
	assert.Equal(t, 3, doc.lineIndexAt(7))

	start, end := doc.lineSpan(3)
	assert.Equal(t, 6, start)
	assert.Equal(t, 9, end)
}
