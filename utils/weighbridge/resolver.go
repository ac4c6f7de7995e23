package weighbridge

import (
	"strconv"
	"strings"
)

// resolveTicketNo fills ticket_no when no labeled value was accepted, by
// collecting every 3-6 digit token in the document and eliminating, in order:
//
//  1. tokens equal (as strings) to the resolved sad_no, tare, net, gross, or
//     the numeric suffix of wb_id;
//  2. tokens on a line carrying a "Print Date" or "Date Time" caption;
//  3. tokens inside the span of the already-matched date;
//  4. clock-shaped tokens (HHMM / HHMMSS in valid ranges);
//  5. tokens that are not exactly 5 digits.
//
// The first surviving token in document order wins; if none survive the field
// stays nil. The elimination order is deliberately frozen: reordering it
// silently changes which number wins on ambiguous tickets.
func resolveTicketNo(doc *document, cands map[Field]candidate) {
	if _, ok := cands[FieldTicketNo]; ok {
		return
	}

	exclude := excludedTokens(cands)

	for _, loc := range reToken36.FindAllStringIndex(doc.full, -1) {
		tok := doc.full[loc[0]:loc[1]]

		if exclude[tok] {
			continue
		}

		line := doc.lines[doc.lineIndexAt(loc[0])]
		if rePrintDateLn.MatchString(line) || reDateTimeLbl.MatchString(line) {
			continue
		}

		if doc.dateStart >= 0 && loc[0] < doc.dateEnd && loc[1] > doc.dateStart {
			continue
		}

		if isClockShaped(tok) {
			continue
		}

		if len(tok) != 5 {
			continue
		}

		cands[FieldTicketNo] = candidate{
			field:      FieldTicketNo,
			raw:        tok,
			value:      tok,
			sourceLine: line,
			confidence: confidenceFallback,
		}
		return
	}
}

// excludedTokens gathers the string forms of values already claimed by other
// numeric fields, so a shared token is never mistaken for the ticket number.
func excludedTokens(cands map[Field]candidate) map[string]bool {
	exclude := make(map[string]bool)

	if c, ok := cands[FieldSADNo]; ok {
		if s, ok := c.value.(string); ok {
			exclude[s] = true
		}
	}
	for _, f := range []Field{FieldTare, FieldNet, FieldGross} {
		if c, ok := cands[f]; ok {
			if n, ok := c.value.(int); ok {
				exclude[strconv.Itoa(n)] = true
			}
		}
	}
	if c, ok := cands[FieldWBID]; ok {
		if s, ok := c.value.(string); ok {
			if suffix := strings.TrimPrefix(strings.ToUpper(s), "WB"); suffix != "" {
				exclude[suffix] = true
			}
		}
	}
	return exclude
}

// isClockShaped reports whether tok reads as a wall-clock time that OCR
// flattened by dropping the colons.
func isClockShaped(tok string) bool {
	two := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	switch len(tok) {
	case 4:
		return two(tok[:2]) <= 23 && two(tok[2:]) <= 59
	case 6:
		return two(tok[:2]) <= 23 && two(tok[2:4]) <= 59 && two(tok[4:]) <= 59
	}
	return false
}
