package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	PaddleModelDir    string
	PaddleAPIURL      string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	paddleModelDir := os.Getenv("PADDLE_OCR_MODEL_DIR")
	if paddleModelDir == "" {
		paddleModelDir = "/opt/paddleocr/models/en"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		PaddleModelDir:    paddleModelDir,
		PaddleAPIURL:      os.Getenv("PADDLEOCR_API_URL"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}
