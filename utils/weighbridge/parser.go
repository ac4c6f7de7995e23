// Package weighbridge turns noisy OCR text from scanned weighbridge tickets
// into a typed, partially populated record. Extraction is best effort: a field
// the parser cannot recover is nil in the output, never an error. The package
// is stateless; Extract may be called concurrently.
package weighbridge

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	confidenceLabel    = "label-matched"
	confidenceFallback = "fallback"

	// driverPlaceholder marks "label present, value lost": the OCR found the
	// caption but no residual text survived, which is worth surfacing to the
	// operator as distinct from a missing field.
	driverPlaceholder = "N/A"
)

var (
	reDigitRun     = regexp.MustCompile(`\d+`)
	reToken36      = regexp.MustCompile(`\b\d{3,6}\b`)
	rePlate        = regexp.MustCompile(`\b[A-Z]{1,3}\d{2,4}[A-Z]{0,2}\b`)
	reWBridgeTok   = regexp.MustCompile(`(?i)\bWBRIDGE\d+\b`)
	reWBIDValue    = regexp.MustCompile(`(?i)\bWB\d{1,9}\b`)
	reSADLoose     = regexp.MustCompile(`(?i)\bSAD\D{0,3}(\d{3,6})\b`)
	reAlnumToken   = regexp.MustCompile(`[A-Za-z0-9]{3,15}`)
	reContainerTok = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9\-]*`)
	reKgUnit       = regexp.MustCompile(`(?i)kg\b`)
	reNameNoise    = regexp.MustCompile(`(?i)\s*\b(?:truck|vehicle|gross|tare|net|weight|date|ticket|scale)\b.*$`)
	reTrailDigits  = regexp.MustCompile(`\s+\d{3,}.*$`)
	reConsTrunc    = regexp.MustCompile(`(?i)\s*(?:\btare\b|\b[\d,]{3,}\s*kg\b|\bkg\b).*$`)

	// Ticket dates print as "20-Mar-24 10:11:12 AM". The anchored variant is
	// used under a "Date Time" caption, where the AM/PM tail is often lost.
	reDatePrimary  = regexp.MustCompile(`(?i)\b\d{1,2}-[A-Z]{3}-\d{2,4}\s+\d{1,2}:\d{2}:\d{2}\s*[AP]M\b`)
	reDateAnchored = regexp.MustCompile(`(?i)\b\d{1,2}-[A-Z]{3}-\d{2,4}\s+\d{1,2}:\d{2}:\d{2}(?:\s*[AP]M)?\b`)
	rePrintDateLn  = regexp.MustCompile(`(?i)\bprint\s*date\b`)
	reDateTimeLbl  = regexp.MustCompile(`(?i)\bdate\s*time\b`)
)

// candidate is a tentative, unconfirmed value for a field before resolution
// and reconciliation. Candidates never outlive the Extract call.
type candidate struct {
	field      Field
	raw        string
	value      any
	sourceLine string
	confidence string
}

// Pair is one entry of the ordered display output.
type Pair struct {
	Key   Field `json:"key"`
	Value any   `json:"value"`
}

// Record maps every known field to a string, an int, or nil. All keys are
// always present; absence is nil.
type Record map[Field]any

// Result is the output of a single extraction.
type Result struct {
	Record Record `json:"record"`
	Pairs  []Pair `json:"pairs"`
}

// Extract parses one ticket's OCR text. It never fails: empty or garbage
// input yields a record with every field nil and an empty pair list.
func Extract(text string) *Result {
	doc := normalize(text)

	cands := make(map[Field]candidate, len(rules))
	for _, r := range rules {
		if c, ok := r.apply(doc); ok {
			cands[r.name] = c
		}
	}

	resolveTicketNo(doc, cands)
	reconcileWeights(cands)

	return emit(cands)
}

func (r fieldRule) apply(doc *document) (candidate, bool) {
	for _, label := range r.labels {
		idx, ok := findLabelLine(doc.lines, label)
		if !ok {
			continue
		}
		line := doc.lines[idx]
		if v, raw, ok := r.fromLine(doc, line, labelRemainder(line, label)); ok && !isEmptyString(v) {
			return candidate{
				field:      r.name,
				raw:        raw,
				value:      v,
				sourceLine: line,
				confidence: confidenceLabel,
			}, true
		}
		// First label-line match wins; a failed extraction on it does not
		// reopen the search with lower-priority labels.
		break
	}

	if r.fromDoc != nil {
		if v, raw, ok := r.fromDoc(doc); ok && !isEmptyString(v) {
			return candidate{field: r.name, raw: raw, value: v, confidence: confidenceFallback}, true
		}
	}
	return candidate{}, false
}

// findLabelLine returns the index of the first line matching the label regex.
func findLabelLine(lines []string, label *regexp.Regexp) (int, bool) {
	for i, line := range lines {
		if label.MatchString(line) {
			return i, true
		}
	}
	return 0, false
}

// labelRemainder is the text after the label match, with the separator
// punctuation OCR renders between caption and value stripped.
func labelRemainder(line string, label *regexp.Regexp) string {
	loc := label.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimLeft(line[loc[1]:], " :.#-"))
}

func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

// ---------------- per-field extractors ----------------

// extractTicketNo accepts a labeled value only when it is exactly 5 digits;
// anything else falls through to the candidate-elimination pass, which keeps
// the "ticket numbers are 5 digits" invariant total.
func extractTicketNo(_ *document, _, rest string) (any, string, bool) {
	tok := reToken36.FindString(rest)
	if len(tok) != 5 {
		return nil, "", false
	}
	return tok, tok, true
}

func extractTruckNo(_ *document, _, rest string) (any, string, bool) {
	tok := reAlnumToken.FindString(rest)
	if tok == "" {
		return nil, "", false
	}
	return strings.ToUpper(tok), tok, true
}

// extractPlateToken is the best-effort truck fallback: any plate-shaped token
// anywhere in the document. It trades precision for recall and may mismatch.
func extractPlateToken(doc *document) (any, string, bool) {
	tok := rePlate.FindString(doc.full)
	if tok == "" {
		return nil, "", false
	}
	return tok, tok, true
}

func extractDriver(_ *document, _, rest string) (any, string, bool) {
	name := stripNameNoise(rest)
	if name == "" {
		return driverPlaceholder, rest, true
	}
	return name, rest, true
}

// extractOperator prefers the last whitespace-delimited token: operator lines
// tend to carry boilerplate before the actual initials.
func extractOperator(_ *document, _, rest string) (any, string, bool) {
	name := stripNameNoise(rest)
	if name == "" {
		return driverPlaceholder, rest, true
	}
	fields := strings.Fields(name)
	return fields[len(fields)-1], rest, true
}

// stripNameNoise drops tokens from adjacent fields that OCR line-merging
// bleeds into a name: field captions and digit runs.
func stripNameNoise(rest string) string {
	rest = reNameNoise.ReplaceAllString(rest, "")
	rest = reTrailDigits.ReplaceAllString(rest, "")
	return strings.TrimSpace(rest)
}

// extractScaleName takes the labeled value, except that the generic noise
// token "WEIGHT" is a known OCR artifact: in that case a WBRIDGEn-shaped
// token anywhere in the document is preferred.
func extractScaleName(doc *document, _, rest string) (any, string, bool) {
	if rest == "" {
		return nil, "", false
	}
	if strings.EqualFold(rest, "WEIGHT") {
		if tok := reWBridgeTok.FindString(doc.full); tok != "" {
			return strings.ToUpper(tok), tok, true
		}
	}
	return rest, rest, true
}

// extractWeight takes the first 3-6 digit run on the matched label line,
// after stripping thousands separators and the kg unit. A longer run is
// OCR concatenation garbage and yields no candidate at all.
func extractWeight(_ *document, line, _ string) (any, string, bool) {
	clean := strings.ReplaceAll(line, ",", "")
	clean = reKgUnit.ReplaceAllString(clean, " ")
	for _, run := range reDigitRun.FindAllString(clean, -1) {
		if len(run) < 3 {
			continue
		}
		if len(run) > 6 {
			return nil, "", false
		}
		n, err := strconv.Atoi(run)
		if err != nil {
			return nil, "", false
		}
		return n, run, true
	}
	return nil, "", false
}

func extractSADNo(_ *document, _, rest string) (any, string, bool) {
	tok := reToken36.FindString(rest)
	if tok == "" {
		return nil, "", false
	}
	return tok, tok, true
}

func extractSADToken(doc *document) (any, string, bool) {
	m := reSADLoose.FindStringSubmatch(doc.full)
	if m == nil {
		return nil, "", false
	}
	return m[1], m[0], true
}

func extractContainerNo(_ *document, _, rest string) (any, string, bool) {
	tok := reContainerTok.FindString(rest)
	if tok == "" {
		return nil, "", false
	}
	return strings.ToUpper(tok), tok, true
}

// extractBulkLine marks un-containerized cargo: a bare "BULK" line.
func extractBulkLine(doc *document) (any, string, bool) {
	for _, line := range doc.lines {
		if strings.EqualFold(line, "BULK") {
			return "BULK", line, true
		}
	}
	return nil, "", false
}

// extractConsignee truncates at the next known caption ("Tare") or at a
// trailing weight, both of which bleed into the consignee line on merged rows.
func extractConsignee(_ *document, _, rest string) (any, string, bool) {
	v := strings.TrimSpace(reConsTrunc.ReplaceAllString(rest, ""))
	if v == "" {
		return nil, "", false
	}
	return v, rest, true
}

func extractMaterial(_ *document, _, rest string) (any, string, bool) {
	if rest == "" {
		return nil, "", false
	}
	return rest, rest, true
}

func extractWBID(_ *document, _, rest string) (any, string, bool) {
	tok := reWBIDValue.FindString(rest)
	if tok == "" {
		return nil, "", false
	}
	return strings.ToUpper(tok), tok, true
}

// extractDate matches the document-wide ticket timestamp, falling back to a
// value on the line after a "Date Time" caption. The matched line's span is
// remembered so the ticket number resolver can skip tokens inside it.
func extractDate(doc *document) (any, string, bool) {
	if loc := reDatePrimary.FindStringIndex(doc.full); loc != nil {
		raw := doc.full[loc[0]:loc[1]]
		doc.dateStart, doc.dateEnd = doc.lineSpan(doc.lineIndexAt(loc[0]))
		return raw, raw, true
	}
	for i, line := range doc.lines {
		if reDateTimeLbl.MatchString(line) && i+1 < len(doc.lines) {
			if m := reDateAnchored.FindString(doc.lines[i+1]); m != "" {
				doc.dateStart, doc.dateEnd = doc.lineSpan(i + 1)
				return m, m, true
			}
		}
	}
	return nil, "", false
}

// ---------------- emitter ----------------

// Pairs builds the ordered display list from a record, skipping nil fields.
func Pairs(rec Record) []Pair {
	pairs := make([]Pair, 0, len(fieldOrder))
	for _, f := range fieldOrder {
		if v := rec[f]; v != nil {
			pairs = append(pairs, Pair{Key: f, Value: v})
		}
	}
	return pairs
}

func emit(cands map[Field]candidate) *Result {
	rec := make(Record, len(fieldOrder))
	for _, f := range fieldOrder {
		rec[f] = nil
		if c, ok := cands[f]; ok {
			rec[f] = c.value
		}
	}
	return &Result{Record: rec, Pairs: Pairs(rec)}
}
