package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractedDocument_PlainJSON(t *testing.T) {
	doc, err := parseExtractedDocument(`{"documentType":"invoice","customerName":"Acme","total":123.45}`)
	require.NoError(t, err)
	assert.Equal(t, "invoice", doc.DocumentType)
	assert.Equal(t, "Acme", doc.CustomerName)
	assert.Equal(t, 123.45, doc.Total)
}

func TestParseExtractedDocument_StripsMarkdownFences(t *testing.T) {
	content := "```json\n{\"documentType\":\"receipt\",\"total\":9.99}\n```"
	doc, err := parseExtractedDocument(content)
	require.NoError(t, err)
	assert.Equal(t, "receipt", doc.DocumentType)
	assert.Equal(t, 9.99, doc.Total)
}

func TestParseExtractedDocument_BareFences(t *testing.T) {
	content := "```\n{\"documentType\":\"invoice\"}\n```"
	doc, err := parseExtractedDocument(content)
	require.NoError(t, err)
	assert.Equal(t, "invoice", doc.DocumentType)
}

func TestParseExtractedDocument_MalformedOutput(t *testing.T) {
	_, err := parseExtractedDocument("the image shows an invoice for Acme")
	assert.Error(t, err)
}
