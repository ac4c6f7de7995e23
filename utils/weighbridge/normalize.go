package weighbridge

import "strings"

// document is the normalized form of one ticket's OCR output: trimmed,
// non-empty lines plus the joined full text used for cross-line matches.
type document struct {
	lines     []string
	full      string
	lineStart []int // byte offset of each line within full

	// Span of the matched date within full, widened to the whole line it
	// sits on. OCR frequently merges stray tokens into the date line, so
	// the ticket number resolver skips the entire region. (-1,-1) until a
	// date is matched.
	dateStart, dateEnd int
}

func normalize(text string) *document {
	text = strings.ToValidUTF8(text, " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = strings.ReplaceAll(text, "\u00a0", " ")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}

	doc := &document{
		lines:     lines,
		full:      strings.Join(lines, "\n"),
		lineStart: make([]int, len(lines)),
		dateStart: -1,
		dateEnd:   -1,
	}

	off := 0
	for i, l := range lines {
		doc.lineStart[i] = off
		off += len(l) + 1 // +1 for the joining newline
	}
	return doc
}

// lineIndexAt returns the index of the line containing byte offset off of full.
func (d *document) lineIndexAt(off int) int {
	for i := len(d.lineStart) - 1; i >= 0; i-- {
		if off >= d.lineStart[i] {
			return i
		}
	}
	return 0
}

// lineSpan returns the [start, end) byte range of line i within full.
func (d *document) lineSpan(i int) (int, int) {
	return d.lineStart[i], d.lineStart[i] + len(d.lines[i])
}
