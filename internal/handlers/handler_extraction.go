package handlers

import (
	"encoding/base64"
	"io"
	"net/http"

	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// 10 MB cap on uploaded document images.
const maxExtractionImageBytes = 10 << 20

// extractionHandler handles the vision document extraction endpoint.
type extractionHandler struct {
	extractionService portssvc.ExtractionSvc
}

func registerExtractionRoutes(rg *gin.RouterGroup, extractionService portssvc.ExtractionSvc) {
	h := &extractionHandler{extractionService: extractionService}
	rg.POST("/extract-document", h.extractDocument)
}

// extractDocument godoc
// @Summary Extract structured data from a document image
// @Description Accepts a multipart "image" file or a JSON body with base64 image data and returns the structured fields read from the document.
// @Tags extraction
// @Accept json,mpfd
// @Produce json
// @Param request body dto.ExtractDocumentRequest false "Base64 image payload"
// @Success 200 {object} dto.ExtractedDocument
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /extract-document [post]
func (h *extractionHandler) extractDocument(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	imageData, mimeType, err := h.readImage(c)
	if err != nil {
		// Extraction failures of every kind, a missing image included, come
		// back as a 500 with a message body.
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	doc, err := h.extractionService.ExtractDocument(c.Request.Context(), imageData, mimeType)
	if err != nil {
		respondServiceError(c, err, "Failed to extract document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *extractionHandler) readImage(c *gin.Context) ([]byte, string, error) {
	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxExtractionImageBytes {
			return nil, "", errImageTooLarge
		}
		f, err := file.Open()
		if err != nil {
			return nil, "", errImageUnreadable
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxExtractionImageBytes))
		if err != nil {
			return nil, "", errImageUnreadable
		}
		return data, file.Header.Get("Content-Type"), nil
	}

	var req dto.ExtractDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageBase64 == "" {
		return nil, "", errImageMissing
	}
	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return nil, "", errImageUnreadable
	}
	if len(data) > maxExtractionImageBytes {
		return nil, "", errImageTooLarge
	}
	return data, req.MimeType, nil
}

type extractionError string

func (e extractionError) Error() string { return string(e) }

const (
	errImageMissing    = extractionError("an image file or base64 image payload is required")
	errImageTooLarge   = extractionError("image exceeds the 10MB limit")
	errImageUnreadable = extractionError("image could not be read")
)
