package types

// UploadResponse is returned by the upload endpoint. Failures during OCR or
// field extraction surface here as a structured result, never a bare 500.
type UploadResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message"`
	Claim         *Claim                 `json:"claim,omitempty"`
	ExtractedData map[string]interface{} `json:"extracted_data,omitempty"`
}

// StatusResponse is a generic success acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse mirrors the error handler's JSON shape for documentation.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse reports overall service and dependency health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Services map[string]string `json:"services"`
}
