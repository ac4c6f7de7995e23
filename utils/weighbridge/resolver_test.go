package weighbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverSkipsPrintDateAndDateSpan(t *testing.T) {
	// 77210 sits on the Print Date caption line and 90212 got merged into
	// the date line by OCR; 55310 is the only survivor.
	text := `
		Print Date 77210
		20-Mar-24 10:11:12 AM 90212
		55310
	`

	rec := Extract(text).Record

	assert.Equal(t, "55310", rec[FieldTicketNo])
	assert.Equal(t, "20-Mar-24 10:11:12 AM", rec[FieldDate])
}

func TestResolverSkipsValuesClaimedByOtherFields(t *testing.T) {
	text := `
		Gross: 28900
		Tare: 11500
		Net: 17400
		17400
		90213
	`

	rec := Extract(text).Record

	assert.Equal(t, "90213", rec[FieldTicketNo])
}

func TestResolverSkipsWBIDSuffix(t *testing.T) {
	text := `
		WB-ID: WB55310
		55310
		90213
	`

	rec := Extract(text).Record

	assert.Equal(t, "WB55310", rec[FieldWBID])
	assert.Equal(t, "90213", rec[FieldTicketNo])
}

func TestResolverFirstSurvivorInDocumentOrder(t *testing.T) {
	text := `
		48213
		90213
	`

	rec := Extract(text).Record

	assert.Equal(t, "48213", rec[FieldTicketNo])
}

func TestResolverNoSurvivorLeavesNil(t *testing.T) {
	// A lone six-digit token is not ticket-shaped.
	rec := Extract("482130").Record

	assert.Nil(t, rec[FieldTicketNo])
}

func TestResolverDoesNotOverrideLabeledValue(t *testing.T) {
	text := `
		Ticket No: 48213
		90213
	`

	rec := Extract(text).Record

	assert.Equal(t, "48213", rec[FieldTicketNo])
}

func TestIsClockShaped(t *testing.T) {
	assert.True(t, isClockShaped("2359"))
	assert.True(t, isClockShaped("0815"))
	assert.True(t, isClockShaped("101112"))
	assert.True(t, isClockShaped("235959"))

	assert.False(t, isClockShaped("2460"))
	assert.False(t, isClockShaped("256059"))
	assert.False(t, isClockShaped("48213"))
	assert.False(t, isClockShaped("482"))
}

func TestExcludedTokens(t *testing.T) {
	cands := map[Field]candidate{
		FieldSADNo: {field: FieldSADNo, value: "33412"},
		FieldGross: {field: FieldGross, value: 28900},
		FieldTare:  {field: FieldTare, value: 11500},
		FieldNet:   {field: FieldNet, value: 17400},
		FieldWBID:  {field: FieldWBID, value: "WB00412"},
	}

	exclude := excludedTokens(cands)

	assert.True(t, exclude["33412"])
	assert.True(t, exclude["28900"])
	assert.True(t, exclude["11500"])
	assert.True(t, exclude["17400"])
	assert.True(t, exclude["00412"])
	assert.False(t, exclude["48213"])
}
