package service

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/Nicktcscan/smartport-sub002/client"
	"github.com/Nicktcscan/smartport-sub002/dto"
	"github.com/Nicktcscan/smartport-sub002/utils/weighbridge"
)

// PaddleOCR is the remote/primary OCR backend contract.
type PaddleOCR interface {
	ExtractText(imageData []byte) (string, error)
	ExtractTextFromFile(imagePath string) (string, error)
}

// BarcodeDecoder reads the printed ticket-number barcode off a ticket image.
type BarcodeDecoder interface {
	DecodeTicketNo(imageData []byte) (string, error)
}

// TicketService runs the full pipeline for one uploaded ticket: OCR the
// scan (PDF or image), hand the recognized text to the extraction engine,
// and corroborate the ticket number against the printed barcode. The engine
// itself never sees OCR or barcode failures.
type TicketService struct {
	tesseract *client.TesseractClient
	pdf       PDFProcessor
	paddle    PaddleOCR
	barcode   BarcodeDecoder
}

func NewTicketService(
	tesseract *client.TesseractClient,
	pdf PDFProcessor,
	paddle PaddleOCR,
	barcode BarcodeDecoder,
) *TicketService {
	return &TicketService{
		tesseract: tesseract,
		pdf:       pdf,
		paddle:    paddle,
		barcode:   barcode,
	}
}

// ExtractFromText runs the extraction engine on already-recognized text.
// Quality stays zero-valued: no OCR happened on our side.
func (s *TicketService) ExtractFromText(text string) *dto.TicketExtractResponse {
	return s.buildResponse(weighbridge.Extract(text), "text", dto.DocumentQuality{}, nil)
}

// ExtractFromUpload OCRs an uploaded ticket scan and extracts its fields.
func (s *TicketService) ExtractFromUpload(fileHeader *multipart.FileHeader) (*dto.TicketExtractResponse, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
	}

	isPDF := strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf")

	var text, source string
	var quality dto.DocumentQuality

	if isPDF {
		text, source, quality = s.recognizePDF(fileHeader.Filename, data)
	} else {
		text, quality, err = s.recognizeImage(fileHeader, data)
		if err != nil {
			return nil, err
		}
		source = "image-ocr"
	}

	result := weighbridge.Extract(text)

	var notes []string
	if !isPDF {
		if note, ok := s.corroborateTicketNo(result, data); ok {
			notes = append(notes, note)
		}
	}

	return s.buildResponse(result, source, quality, notes), nil
}

// recognizePDF tries embedded text first; a near-empty result means a scanned
// PDF, so each page image goes through OCR instead.
func (s *TicketService) recognizePDF(filename string, data []byte) (string, string, dto.DocumentQuality) {
	var quality dto.DocumentQuality

	text, err := s.pdf.ExtractText(data)
	if err != nil {
		log.Printf("PDF text extraction failed for %s: %v", filename, err)
		quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
	}

	if len(strings.TrimSpace(text)) >= 20 {
		// Digital PDF; the text is exact
		quality.OcrConfidence = 100.0
		quality.ResolutionScore = 100.0
		quality.FinalScore = 100.0
		return text, "pdf-text", quality
	}

	log.Printf("PDF %s seems to be scanned or has minimal text, attempting image-based OCR", filename)

	images, imgErr := s.pdf.ExtractImages(data)
	if imgErr != nil || len(images) == 0 {
		log.Printf("Failed to extract images from PDF %s: %v", filename, imgErr)
		quality.Issues = append(quality.Issues, "pdf_image_extraction_failed")
		return text, "pdf-ocr", quality
	}

	var combined strings.Builder
	var totalConfidence float64
	var pageCount int

	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		var pageText string
		var ocrErr error
		pageConf := 75.0 // Default for PaddleOCR

		if s.paddle != nil {
			pageText, ocrErr = s.paddle.ExtractTextFromFile(tempImgFile)
		}

		// If Paddle is unavailable or weak, fall back to Tesseract
		if s.paddle == nil || ocrErr != nil || len(strings.TrimSpace(pageText)) < 10 {
			pageText, pageConf, ocrErr = s.tesseract.ExtractTextAndQuality(tempImgFile)
		}
		os.Remove(tempImgFile)

		if ocrErr != nil {
			log.Printf("OCR failed for a page in %s: %v", filename, ocrErr)
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n") // Page break
		totalConfidence += pageConf
		pageCount++
	}

	if pageCount == 0 {
		quality.Issues = append(quality.Issues, "scanned_pdf_ocr_failed")
		return text, "pdf-ocr", quality
	}

	quality.OcrConfidence = totalConfidence / float64(pageCount)
	quality.ResolutionScore = 80.0 // Placeholder
	quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}

	return combined.String(), "pdf-ocr", quality
}

// recognizeImage runs PaddleOCR first and falls back to Tesseract.
func (s *TicketService) recognizeImage(fileHeader *multipart.FileHeader, data []byte) (string, dto.DocumentQuality, error) {
	var quality dto.DocumentQuality

	if s.paddle != nil {
		if text, err := s.paddle.ExtractText(data); err == nil && len(strings.TrimSpace(text)) > 5 {
			quality.OcrConfidence = 75.0 // Default for PaddleOCR
			quality.ResolutionScore = 80.0
			quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
			return text, quality, nil
		}
	}

	text, conf, err := s.tesseract.ExtractTextAndQualityFromFile(fileHeader)
	if err != nil {
		return "", quality, fmt.Errorf("image OCR failed: %w", err)
	}

	quality.OcrConfidence = conf
	quality.ResolutionScore = 80.0 // Placeholder, need image dimensions
	quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}

	return text, quality, nil
}

// corroborateTicketNo fills a null ticket_no from the printed barcode. The
// barcode is a second data source outside the text engine; a decode failure
// just leaves the field null for the operator.
func (s *TicketService) corroborateTicketNo(result *weighbridge.Result, imageData []byte) (string, bool) {
	if s.barcode == nil || result.Record[weighbridge.FieldTicketNo] != nil {
		return "", false
	}

	ticketNo, err := s.barcode.DecodeTicketNo(imageData)
	if err != nil {
		log.Printf("Ticket barcode decode failed: %v", err)
		return "", false
	}

	result.Record[weighbridge.FieldTicketNo] = ticketNo
	result.Pairs = weighbridge.Pairs(result.Record)
	return fmt.Sprintf("ticket_no %s recovered from barcode", ticketNo), true
}

func (s *TicketService) buildResponse(
	result *weighbridge.Result,
	source string,
	quality dto.DocumentQuality,
	notes []string,
) *dto.TicketExtractResponse {
	record := make(map[string]any, len(result.Record))
	for field, value := range result.Record {
		record[string(field)] = value
	}

	pairs := make([]dto.ExtractedPair, 0, len(result.Pairs))
	for _, p := range result.Pairs {
		pairs = append(pairs, dto.ExtractedPair{Key: string(p.Key), Value: p.Value})
	}

	return &dto.TicketExtractResponse{
		Record:      record,
		Pairs:       pairs,
		Quality:     quality,
		Source:      source,
		Notes:       notes,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ticket-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
