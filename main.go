package main

import (
	"log"
	"os"

	"github.com/Nicktcscan/smartport-sub002/client"
	"github.com/Nicktcscan/smartport-sub002/config"
	"github.com/Nicktcscan/smartport-sub002/handler"
	"github.com/Nicktcscan/smartport-sub002/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Tesseract v5 reads the tessdata path from the environment as well
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)
	log.Println("TESSDATA_PREFIX set to:", os.Getenv("TESSDATA_PREFIX"))

	// Initialize OCR clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// PaddleOCR is optional; the service falls back to Tesseract without it
	var paddle service.PaddleOCR
	if paddleClient, err := client.NewPaddleClient(cfg.PaddleModelDir, cfg.PaddleAPIURL); err != nil {
		log.Printf("Warning: PaddleOCR client initialization failed: %v. Will use Tesseract only.", err)
	} else {
		paddle = paddleClient
	}

	// Initialize PDF processor and barcode reader
	pdfProcessor := service.NewPDFProcessor()
	barcodeClient := client.NewBarcodeClient()

	// Initialize service layer
	ticketService := service.NewTicketService(tesseractClient, pdfProcessor, paddle, barcodeClient)

	// Initialize handler layer
	ticketHandler := handler.NewTicketHandler(ticketService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Weighbridge Ticket Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		tickets := api.Group("/tickets")
		{
			tickets.POST("/extract", ticketHandler.ExtractTicket)
			tickets.POST("/extract-text", ticketHandler.ExtractTicketText)
		}
	}

	// Start server
	log.Printf("Starting Weighbridge Ticket Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
