package handler

import (
	"log"
	"net/http"

	"github.com/Nicktcscan/smartport-sub002/dto"
	"github.com/Nicktcscan/smartport-sub002/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService *service.TicketService
	maxFileSize   int64
}

func NewTicketHandler(ticketService *service.TicketService, maxFileSize int64) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		maxFileSize:   maxFileSize,
	}
}

// ExtractTicket handles the POST /tickets/extract endpoint: one scanned
// ticket (image or PDF) in, extracted record out.
func (h *TicketHandler) ExtractTicket(c *gin.Context) {
	log.Println("Received ticket extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Ticket file is required", err)
		return
	}

	request := &dto.TicketUploadRequest{File: fileHeader}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	response, err := h.ticketService.ExtractFromUpload(fileHeader)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to extract ticket", err)
		return
	}

	log.Printf("Ticket extraction completed for %s", fileHeader.Filename)
	c.JSON(http.StatusOK, response)
}

// ExtractTicketText handles the POST /tickets/extract-text endpoint for text
// recognized by an external OCR backend.
func (h *TicketHandler) ExtractTicketText(c *gin.Context) {
	var request dto.TicketTextRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, h.ticketService.ExtractFromText(request.Text))
}

// sendError sends a structured error response
func (h *TicketHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
