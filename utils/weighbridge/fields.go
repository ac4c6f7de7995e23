package weighbridge

import "regexp"

// Field names a single extractable ticket attribute. The string value is the
// key used in the output record and in the JSON sent back to callers.
type Field string

const (
	FieldTicketNo    Field = "ticket_no"
	FieldTruckNo     Field = "gnsw_truck_no"
	FieldDriver      Field = "driver"
	FieldOperator    Field = "operator"
	FieldScaleName   Field = "scale_name"
	FieldGross       Field = "gross"
	FieldTare        Field = "tare"
	FieldNet         Field = "net"
	FieldSADNo       Field = "sad_no"
	FieldContainerNo Field = "container_no"
	FieldConsignee   Field = "consignee"
	FieldMaterial    Field = "material"
	FieldWBID        Field = "wb_id"
	FieldDate        Field = "date"
)

// fieldOrder is the fixed display order for records and extracted pairs.
var fieldOrder = []Field{
	FieldTicketNo,
	FieldTruckNo,
	FieldDriver,
	FieldOperator,
	FieldScaleName,
	FieldGross,
	FieldTare,
	FieldNet,
	FieldSADNo,
	FieldContainerNo,
	FieldConsignee,
	FieldMaterial,
	FieldWBID,
	FieldDate,
}

type kind int

const (
	kindText kind = iota
	kindNumeric
	kindDate
)

// fieldRule is one row of the extraction table. Label regexes are tried in
// priority order; the first line matching a label wins and no further labels
// are considered for that field. fromLine turns the matched line into a raw
// candidate (rest is the text after the label), fromDoc is the document-wide
// fallback used when no label line yields a value.
type fieldRule struct {
	name     Field
	kind     kind
	labels   []*regexp.Regexp
	fromLine func(doc *document, line, rest string) (any, string, bool)
	fromDoc  func(doc *document) (any, string, bool)
}

// rules drives the whole extraction: adding a field means adding a row here,
// not new control flow. ticket_no has no fromDoc entry because its fallback
// is the candidate-elimination pass in resolver.go, which needs the other
// resolved fields first.
var rules = []fieldRule{
	{
		name:     FieldTicketNo,
		kind:     kindNumeric,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bticket\s*(?:n[o0]\.?|number|#)?`)},
		fromLine: extractTicketNo,
	},
	{
		name: FieldTruckNo,
		kind: kindText,
		labels: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\btruck\s*(?:n[o0]\.?|number|#)?`),
			regexp.MustCompile(`(?i)\bvehicle\s*(?:n[o0]\.?|#)?`),
		},
		fromLine: extractTruckNo,
		fromDoc:  extractPlateToken,
	},
	{
		name:     FieldDriver,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bdriver(?:\s*name)?`)},
		fromLine: extractDriver,
	},
	{
		name:     FieldOperator,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\boperator(?:\s*name)?`)},
		fromLine: extractOperator,
	},
	{
		name:     FieldScaleName,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bscale\s*(?:name)?`)},
		fromLine: extractScaleName,
	},
	{
		name:     FieldGross,
		kind:     kindNumeric,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bgross(?:\s*(?:wt|weight))?`)},
		fromLine: extractWeight,
	},
	{
		name:     FieldTare,
		kind:     kindNumeric,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\btare(?:\s*(?:wt|weight))?`)},
		fromLine: extractWeight,
	},
	{
		name:     FieldNet,
		kind:     kindNumeric,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bnet(?:\s*(?:wt|weight))?`)},
		fromLine: extractWeight,
	},
	{
		name:     FieldSADNo,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bsad\s*(?:n[o0]\.?|#)?`)},
		fromLine: extractSADNo,
		fromDoc:  extractSADToken,
	},
	{
		name:     FieldContainerNo,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bcontainer\s*(?:n[o0]\.?|#)?`)},
		fromLine: extractContainerNo,
		fromDoc:  extractBulkLine,
	},
	{
		name:     FieldConsignee,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bconsignee`)},
		fromLine: extractConsignee,
	},
	{
		name: FieldMaterial,
		kind: kindText,
		labels: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bmaterial`),
			regexp.MustCompile(`(?i)\bcommodity`),
		},
		fromLine: extractMaterial,
	},
	{
		name:     FieldWBID,
		kind:     kindText,
		labels:   []*regexp.Regexp{regexp.MustCompile(`(?i)\bwb[\s\-]?id`)},
		fromLine: extractWBID,
	},
	{
		name:    FieldDate,
		kind:    kindDate,
		fromDoc: extractDate,
	},
}
