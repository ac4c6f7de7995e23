package service

import (
	"errors"
	"testing"

	"github.com/Nicktcscan/smartport-sub002/utils/weighbridge"
	"github.com/stretchr/testify/assert"
)

type fakeBarcode struct {
	ticketNo string
	err      error
	calls    int
}

func (f *fakeBarcode) DecodeTicketNo(_ []byte) (string, error) {
	f.calls++
	return f.ticketNo, f.err
}

func TestExtractFromText(t *testing.T) {
	svc := NewTicketService(nil, nil, nil, nil)

	text := `
		Ticket No: 48213
		Gross Weight: 28,900 kg
		Tare (PT): 11,500 kg
	`

	resp := svc.ExtractFromText(text)

	assert.Equal(t, "text", resp.Source)
	assert.Equal(t, "48213", resp.Record["ticket_no"])
	assert.Equal(t, 28900, resp.Record["gross"])
	assert.Equal(t, 17400, resp.Record["net"])
	assert.Equal(t, 14, len(resp.Record))
	assert.NotEmpty(t, resp.ProcessedAt)

	// No OCR ran, so quality stays zero-valued
	assert.Equal(t, 0.0, resp.Quality.FinalScore)
	assert.Empty(t, resp.Quality.Issues)

	// Pairs keep display order and skip nil fields
	assert.Equal(t, "ticket_no", resp.Pairs[0].Key)
	for _, pair := range resp.Pairs {
		assert.NotNil(t, pair.Value)
	}
}

func TestCorroborateTicketNoFillsNullField(t *testing.T) {
	barcode := &fakeBarcode{ticketNo: "48213"}
	svc := NewTicketService(nil, nil, nil, barcode)

	result := weighbridge.Extract("Gross: 28900")
	assert.Nil(t, result.Record[weighbridge.FieldTicketNo])

	note, ok := svc.corroborateTicketNo(result, nil)

	assert.True(t, ok)
	assert.Equal(t, 1, barcode.calls)
	assert.Contains(t, note, "48213")
	assert.Equal(t, "48213", result.Record[weighbridge.FieldTicketNo])
	assert.Equal(t, weighbridge.FieldTicketNo, result.Pairs[0].Key)
}

func TestCorroborateTicketNoKeepsExtractedValue(t *testing.T) {
	barcode := &fakeBarcode{ticketNo: "99999"}
	svc := NewTicketService(nil, nil, nil, barcode)

	result := weighbridge.Extract("Ticket No: 48213")

	_, ok := svc.corroborateTicketNo(result, nil)

	assert.False(t, ok)
	assert.Equal(t, 0, barcode.calls)
	assert.Equal(t, "48213", result.Record[weighbridge.FieldTicketNo])
}

func TestCorroborateTicketNoDecodeFailure(t *testing.T) {
	barcode := &fakeBarcode{err: errors.New("no barcode found")}
	svc := NewTicketService(nil, nil, nil, barcode)

	result := weighbridge.Extract("Gross: 28900")

	_, ok := svc.corroborateTicketNo(result, nil)

	assert.False(t, ok)
	assert.Nil(t, result.Record[weighbridge.FieldTicketNo])
}
