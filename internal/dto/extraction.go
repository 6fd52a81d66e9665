package dto

// ExtractDocumentRequest carries a base64 encoded document image. The endpoint
// alternatively accepts a multipart file upload under the "image" field.
type ExtractDocumentRequest struct {
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
}

// ExtractedLineItem is one line item read off the document.
type ExtractedLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// ExtractedDocument is the structured result of the vision extraction.
type ExtractedDocument struct {
	DocumentType    string              `json:"documentType"`
	CustomerName    string              `json:"customerName"`
	CustomerContact string              `json:"customerContact"`
	CustomerAddress string              `json:"customerAddress"`
	Date            string              `json:"date"`
	Items           []ExtractedLineItem `json:"items"`
	Total           float64             `json:"total"`
}
