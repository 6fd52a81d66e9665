package services

import (
	"context"

	"github.com/bizdesk/bizdesk_backend/internal/dto"
)

// ExtractionSvc forwards a document image to a vision model and parses the
// structured reply. Stateless; failures are returned, never retried.
type ExtractionSvc interface {
	ExtractDocument(ctx context.Context, imageData []byte, mimeType string) (*dto.ExtractedDocument, error)
}
