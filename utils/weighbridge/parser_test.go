package weighbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFullTicket(t *testing.T) {
	text := `
		GAMBIA PORTS AUTHORITY
		WEIGHBRIDGE SLIP
		Ticket No: 48213
		Print Date: 20-Mar-24 10:11:12 AM
		Truck No: GT4532K
		Driver: MOMODOU JALLOW
		Operator: FATOU
		Scale Name: WBRIDGE2
		Gross Weight: 28,900 kg
		Tare (PT): 11,500 kg
		SAD No: 33412
		Container No: TEMU-402155-8
		Consignee: GAM SHIPPING CO Tare 11,500 kg
		Material: BAGGED RICE
		WB-ID: WB00412
	`

	result := Extract(text)
	rec := result.Record

	assert.Equal(t, "48213", rec[FieldTicketNo])
	assert.Equal(t, "GT4532K", rec[FieldTruckNo])
	assert.Equal(t, "MOMODOU JALLOW", rec[FieldDriver])
	assert.Equal(t, "FATOU", rec[FieldOperator])
	assert.Equal(t, "WBRIDGE2", rec[FieldScaleName])
	assert.Equal(t, 28900, rec[FieldGross])
	assert.Equal(t, 11500, rec[FieldTare])
	assert.Equal(t, 17400, rec[FieldNet]) // computed from gross - tare
	assert.Equal(t, "33412", rec[FieldSADNo])
	assert.Equal(t, "TEMU-402155-8", rec[FieldContainerNo])
	assert.Equal(t, "GAM SHIPPING CO", rec[FieldConsignee])
	assert.Equal(t, "BAGGED RICE", rec[FieldMaterial])
	assert.Equal(t, "WB00412", rec[FieldWBID])
	assert.Equal(t, "20-Mar-24 10:11:12 AM", rec[FieldDate])

	assert.Equal(t, len(fieldOrder), len(result.Pairs))
	for i, pair := range result.Pairs {
		assert.Equal(t, fieldOrder[i], pair.Key)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	result := Extract("")

	assert.Equal(t, len(fieldOrder), len(result.Record))
	for _, f := range fieldOrder {
		v, present := result.Record[f]
		assert.True(t, present, "field %s missing from record", f)
		assert.Nil(t, v)
	}
	assert.Empty(t, result.Pairs)
}

func TestExtractIsIdempotent(t *testing.T) {
	text := `
		Ticket No: 48213
		Gross: 28900
		Tare: 11500
	`

	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, first.Record, second.Record)
	assert.Equal(t, first.Pairs, second.Pairs)
}

func TestComputeNetFromGrossAndTare(t *testing.T) {
	text := `
		Gross: 28900
		Tare (PT) 11500 kg
	`

	rec := Extract(text).Record

	assert.Equal(t, 28900, rec[FieldGross])
	assert.Equal(t, 11500, rec[FieldTare])
	assert.Equal(t, 17400, rec[FieldNet])
}

func TestComputeTareFromGrossAndNet(t *testing.T) {
	text := `
		Gross: 28900
		Net Wt: 17400
	`

	rec := Extract(text).Record

	assert.Equal(t, 11500, rec[FieldTare])
}

func TestTwoMissingWeightsStayNil(t *testing.T) {
	rec := Extract("Gross: 28900").Record

	assert.Equal(t, 28900, rec[FieldGross])
	assert.Nil(t, rec[FieldTare])
	assert.Nil(t, rec[FieldNet])
}

func TestOverlongWeightRunYieldsNoCandidate(t *testing.T) {
	rec := Extract("Gross: 1234567").Record

	assert.Nil(t, rec[FieldGross])
	assert.Nil(t, rec[FieldTare])
	assert.Nil(t, rec[FieldNet])
}

func TestWeightIgnoresCommasAndUnit(t *testing.T) {
	rec := Extract("Tare Weight: 11,500 kg").Record

	assert.Equal(t, 11500, rec[FieldTare])
}

func TestLabeledTicketMustBeFiveDigits(t *testing.T) {
	// A six-digit value after the label is rejected and the resolver picks
	// the bare five-digit token instead.
	text := `
		Ticket No: 482130
		48213
	`

	rec := Extract(text).Record

	assert.Equal(t, "48213", rec[FieldTicketNo])
}

func TestLabeledTicketWinsOverSharedSADValue(t *testing.T) {
	// The same token under both captions: the explicit ticket label wins,
	// so the sad_no exclusion in the fallback path never comes into play.
	text := `
		Ticket No: 48213
		SAD No: 48213
	`

	rec := Extract(text).Record

	assert.Equal(t, "48213", rec[FieldTicketNo])
	assert.Equal(t, "48213", rec[FieldSADNo])
}

func TestDriverPlaceholderWhenValueLost(t *testing.T) {
	rec := Extract("Driver:").Record

	assert.Equal(t, "N/A", rec[FieldDriver])
}

func TestDriverStripsMergedCaptions(t *testing.T) {
	rec := Extract("Driver: MOMODOU JALLOW Truck GT4532K").Record

	assert.Equal(t, "MOMODOU JALLOW", rec[FieldDriver])
}

func TestOperatorTakesLastToken(t *testing.T) {
	rec := Extract("Operator: SHIFT B FATOU").Record

	assert.Equal(t, "FATOU", rec[FieldOperator])
}

func TestScaleNameWeightArtifactOverride(t *testing.T) {
	text := `
		Scale: WEIGHT
		WBRIDGE2
	`

	rec := Extract(text).Record

	assert.Equal(t, "WBRIDGE2", rec[FieldScaleName])
}

func TestTruckPlateFallback(t *testing.T) {
	rec := Extract("Plate GT4532K somewhere in the noise").Record

	assert.Equal(t, "GT4532K", rec[FieldTruckNo])
}

func TestVehicleLabelFallsBackToSecondaryCaption(t *testing.T) {
	rec := Extract("Vehicle No: GT4532K").Record

	assert.Equal(t, "GT4532K", rec[FieldTruckNo])
}

func TestContainerBulkFallback(t *testing.T) {
	text := `
		Consignee: GAM SHIPPING CO
		BULK
	`

	rec := Extract(text).Record

	assert.Equal(t, "BULK", rec[FieldContainerNo])
}

func TestSADLooseFallback(t *testing.T) {
	// The labeled line carries no usable digits, so the document-wide SAD
	// token is used instead.
	text := `
		SAD No: PENDING
		REF SAD 91022
	`

	rec := Extract(text).Record

	assert.Equal(t, "91022", rec[FieldSADNo])
}

func TestConsigneeTruncatedAtTrailingWeight(t *testing.T) {
	rec := Extract("Consignee: GAM SHIPPING CO 28,900 kg").Record

	assert.Equal(t, "GAM SHIPPING CO", rec[FieldConsignee])
}

func TestDateFromDateTimeCaption(t *testing.T) {
	// Secondary form: the AM/PM tail is often lost under a "Date Time"
	// caption.
	text := `
		Date Time
		20-Mar-24 10:11:12
	`

	rec := Extract(text).Record

	assert.Equal(t, "20-Mar-24 10:11:12", rec[FieldDate])
}

func TestPairsSkipNilFields(t *testing.T) {
	rec := Record{}
	for _, f := range fieldOrder {
		rec[f] = nil
	}
	rec[FieldGross] = 28900
	rec[FieldTicketNo] = "48213"

	pairs := Pairs(rec)

	assert.Equal(t, 2, len(pairs))
	assert.Equal(t, FieldTicketNo, pairs[0].Key)
	assert.Equal(t, FieldGross, pairs[1].Key)
}
