package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/middleware"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
}

// MockTextExtractor mocks the OCR pipeline.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	args := m.Called(ctx, data, filename)
	return args.String(0), args.Error(1)
}

// MockFieldExtractor mocks structured field extraction.
type MockFieldExtractor struct {
	mock.Mock
}

func (m *MockFieldExtractor) Extract(text string) types.ExtractedFields {
	args := m.Called(text)
	return args.Get(0).(types.ExtractedFields)
}

// newTestEngine wires a gin engine with the production middleware stack.
func newTestEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	return r
}

// multipartBody builds a multipart form with a single "file" part.
func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
