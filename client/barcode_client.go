package client

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"regexp"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

var reTicketDigits = regexp.MustCompile(`\b\d{5}\b`)

// BarcodeClient decodes the ticket-number barcode most weighbridge printers
// stamp on the slip. It corroborates the OCR extraction: when text parsing
// abstains on the ticket number, the barcode is the second data source.
type BarcodeClient struct{}

func NewBarcodeClient() *BarcodeClient {
	return &BarcodeClient{}
}

// DecodeTicketNo reads a Code128 barcode (QR as fallback) from the ticket
// image and returns the 5-digit ticket number it encodes.
func (b *BarcodeClient) DecodeTicketNo(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	var text string
	if result, err := oned.NewCode128Reader().Decode(bmp, nil); err == nil {
		text = result.GetText()
	} else if result, err := qrcode.NewQRCodeReader().Decode(bmp, nil); err == nil {
		text = result.GetText()
	} else {
		return "", fmt.Errorf("no ticket barcode found: %w", err)
	}

	ticketNo := reTicketDigits.FindString(text)
	if ticketNo == "" {
		return "", fmt.Errorf("barcode payload %q carries no 5-digit ticket number", text)
	}

	return ticketNo, nil
}
