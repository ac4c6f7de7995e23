package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strings"
)

// PaddleClient wraps PaddleOCR for text extraction from ticket scans. When a
// REST endpoint is configured it is used as the remote backend; otherwise the
// local Python CLI runs. Either way the caller just gets text back.
type PaddleClient struct {
	modelDir string
	apiURL   string
}

// NewPaddleClient creates a new PaddleOCR client from environment settings.
func NewPaddleClient(modelDir, apiURL string) (*PaddleClient, error) {
	if modelDir == "" && apiURL == "" {
		return nil, fmt.Errorf("neither PaddleOCR model dir nor API URL configured")
	}

	log.Printf("PaddleOCR initialized (model dir: %q, api: %q)", modelDir, apiURL)

	return &PaddleClient{
		modelDir: modelDir,
		apiURL:   apiURL,
	}, nil
}

// ExtractText extracts text from an in-memory ticket image.
func (p *PaddleClient) ExtractText(imageData []byte) (string, error) {
	if p.apiURL != "" {
		return p.extractViaAPI(imageData)
	}

	tempFile, err := os.CreateTemp("", "paddle-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(imageData); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	tempFile.Close()

	return p.ExtractTextFromFile(tempFile.Name())
}

// ExtractTextFromFile extracts text from a ticket image already on disk.
func (p *PaddleClient) ExtractTextFromFile(imagePath string) (string, error) {
	if p.apiURL != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}
		return p.extractViaAPI(data)
	}

	text, err := p.runPaddleOCR(imagePath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("PaddleOCR extracted no text from image")
	}
	return text, nil
}

// extractViaAPI posts the image to a PaddleOCR REST endpoint and joins the
// recognized lines.
func (p *PaddleClient) extractViaAPI(imageData []byte) (string, error) {
	payload := map[string]interface{}{
		"images": []string{base64.StdEncoding.EncodeToString(imageData)},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := http.Post(p.apiURL, "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results [][]struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var textBuilder strings.Builder
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")
		}
	}

	extractedText := textBuilder.String()
	if strings.TrimSpace(extractedText) == "" {
		return "", fmt.Errorf("PaddleOCR extracted no text from image")
	}

	log.Printf("PaddleOCR API extracted %d characters", len(extractedText))
	return extractedText, nil
}

// runPaddleOCR executes the PaddleOCR Python CLI with the English model.
func (p *PaddleClient) runPaddleOCR(imagePath string) (string, error) {
	cmd := exec.Command("python3", "-c", fmt.Sprintf(`
import sys
from paddleocr import PaddleOCR
import warnings
warnings.filterwarnings('ignore')

ocr = PaddleOCR(
    use_angle_cls=True,
    lang='en',
    det_model_dir='%s/det',
    rec_model_dir='%s/rec',
    cls_model_dir='%s/cls',
    use_gpu=False,
    show_log=False
)

result = ocr.ocr('%s', cls=True)
if result and result[0]:
    for line in result[0]:
        if line and len(line) > 1:
            print(line[1][0])
`, p.modelDir, p.modelDir, p.modelDir, imagePath))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("PaddleOCR command failed: %v, stderr: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
