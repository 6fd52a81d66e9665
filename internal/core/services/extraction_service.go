package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	portssvc "github.com/bizdesk/bizdesk_backend/internal/core/ports/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/pkg/config"
)

const extractionPrompt = `Extract the structured contents of this business document ` +
	`(invoice, bill, receipt or purchase order). Respond with ONLY a JSON object, ` +
	`no prose, with these fields: documentType, customerName, customerContact, ` +
	`customerAddress, date (ISO 8601 if visible), items (array of {description, ` +
	`quantity, unitPrice, amount}) and total. Use empty strings and 0 for anything ` +
	`not present on the document.`

type extractionService struct {
	BaseService
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewExtractionService creates the vision document extraction service. It
// talks to any OpenAI-compatible chat completions endpoint.
func NewExtractionService(cfg *config.Config) portssvc.ExtractionSvc {
	return &extractionService{
		apiKey:  cfg.ExtractionAPIKey,
		baseURL: strings.TrimSuffix(cfg.ExtractionBaseURL, "/"),
		model:   cfg.ExtractionModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

var _ portssvc.ExtractionSvc = (*extractionService)(nil)

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *extractionService) ExtractDocument(ctx context.Context, imageData []byte, mimeType string) (*dto.ExtractedDocument, error) {
	if s.apiKey == "" {
		return nil, apperrors.NewAppError(500, "document extraction is not configured", apperrors.ErrInternal)
	}
	if len(imageData) == 0 {
		return nil, apperrors.NewAppError(500, "image data is required", apperrors.ErrInternal)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
	payload := chatCompletionRequest{
		Model:     s.model,
		MaxTokens: 2048,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build extraction request", apperrors.ErrInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build extraction request", apperrors.ErrInternal)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.LogError(ctx, err, "Extraction backend request failed")
		return nil, apperrors.NewAppError(500, "document extraction failed", apperrors.ErrInternal)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewAppError(500, "document extraction failed", apperrors.ErrInternal)
	}
	if resp.StatusCode != http.StatusOK {
		s.LogError(ctx, fmt.Errorf("extraction backend returned %d", resp.StatusCode), "Extraction backend error")
		return nil, apperrors.NewAppError(500, "document extraction failed", apperrors.ErrInternal)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, apperrors.NewAppError(500, "document extraction returned malformed output", apperrors.ErrInternal)
	}
	if len(completion.Choices) == 0 {
		return nil, apperrors.NewAppError(500, "document extraction returned no output", apperrors.ErrInternal)
	}

	return parseExtractedDocument(completion.Choices[0].Message.Content)
}

// parseExtractedDocument parses the model output into the structured result,
// tolerating markdown code fences around the JSON.
func parseExtractedDocument(content string) (*dto.ExtractedDocument, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var doc dto.ExtractedDocument
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, apperrors.NewAppError(500, "document extraction returned malformed output", apperrors.ErrInternal)
	}
	return &doc, nil
}
