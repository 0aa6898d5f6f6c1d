package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/fra-atlas/fra-atlas-backend/errors"
	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/gin-gonic/gin"
)

// minMeaningfulTextRunes is the shortest recognized text worth running field
// extraction on.
const minMeaningfulTextRunes = 10

// rawTextPreviewRunes caps the raw_text echoed back in upload responses.
const rawTextPreviewRunes = 500

var allowedUploadExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"bmp":  true,
	"tiff": true,
	"gif":  true,
}

// UploadHandler runs the upload pipeline: file intake, OCR, field
// extraction, claim creation.
type UploadHandler struct {
	textExtractor  TextExtractor
	fieldExtractor FieldExtractor
	claimStore     store.ClaimStore
	maxFileSize    int64
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(textExtractor TextExtractor, fieldExtractor FieldExtractor, claimStore store.ClaimStore, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		textExtractor:  textExtractor,
		fieldExtractor: fieldExtractor,
		claimStore:     claimStore,
		maxFileSize:    maxFileSize,
	}
}

// UploadFile godoc
// @Summary Upload and process a claim document
// @Description Accepts a PDF or image file, extracts text via OCR, parses claim fields, and creates a claim record.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Claim document (pdf, jpg, jpeg, png, bmp, tiff, gif)"
// @Success 200 {object} types.UploadResponse "Processing result; Success=false carries a diagnostic message"
// @Failure 400 {object} types.ErrorResponse "Missing file, unsupported type, or file too large"
// @Failure 422 {object} types.ErrorResponse "Image bytes could not be decoded"
// @Router /v1/upload [post]
//
// Pipeline degradation (weak OCR output, failed persistence) is reported as a
// structured Success=false body rather than an HTTP error; only intake
// validation and undecodable images reject the request outright.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	log := logger.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if err := c.Error(errors.ValidationFailed("No file uploaded", "multipart field 'file' is required")); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}
	if fileHeader.Filename == "" {
		if err := c.Error(errors.ValidationFailed("No file uploaded", "uploaded file has no name")); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}
	if fileHeader.Size > h.maxFileSize {
		detail := fmt.Sprintf("file is %d bytes, limit is %d bytes", fileHeader.Size, h.maxFileSize)
		if err := c.Error(errors.ValidationFailed("File too large", detail)); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	ext := fileExtension(fileHeader.Filename)
	if !allowedUploadExtensions[ext] {
		if err := c.Error(errors.UnsupportedMedia(ext)); err != nil {
			log.Errorw("Failed to add media error", "error", err)
		}
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		if err := c.Error(errors.Wrap(err, errors.ServerError, "Failed to open uploaded file")); err != nil {
			log.Errorw("Failed to add server error", "error", err)
		}
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warnw("Failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		if err := c.Error(errors.Wrap(err, errors.ServerError, "Failed to read uploaded file")); err != nil {
			log.Errorw("Failed to add server error", "error", err)
		}
		return
	}
	if int64(len(data)) > h.maxFileSize {
		detail := fmt.Sprintf("file exceeds the %d byte limit", h.maxFileSize)
		if err := c.Error(errors.ValidationFailed("File too large", detail)); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	log.Infow("Processing uploaded file", "filename", fileHeader.Filename, "bytes", len(data))

	text, err := h.textExtractor.ExtractText(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Type == errors.DecodeError {
			if err := c.Error(appErr); err != nil {
				log.Errorw("Failed to add decode error", "error", err)
			}
			return
		}
		log.Errorw("Text extraction failed", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusOK, types.UploadResponse{
			Success:       false,
			Message:       "Failed to extract text from file",
			ExtractedData: map[string]interface{}{"raw_text": "OCR failed"},
		})
		return
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minMeaningfulTextRunes {
		c.JSON(http.StatusOK, types.UploadResponse{
			Success:       false,
			Message:       "No meaningful text found in the uploaded file",
			ExtractedData: map[string]interface{}{"raw_text": text},
		})
		return
	}

	fields := h.fieldExtractor.Extract(text)

	claim, err := h.claimStore.CreateClaim(c.Request.Context(), types.ClaimCreate{
		ClaimantName: fields.ClaimantName,
		Village:      fields.Village,
		Area:         fields.Area,
		Status:       fields.Status,
	})
	if err != nil {
		log.Errorw("Failed to persist extracted claim", "error", err)
		c.JSON(http.StatusOK, types.UploadResponse{
			Success: false,
			Message: "Failed to save claim to database",
			ExtractedData: map[string]interface{}{
				"raw_text":  previewText(text),
				"extracted": fields,
			},
		})
		return
	}

	log.Infow("Created claim from upload", "claim_id", claim.ID, "filename", fileHeader.Filename)

	c.JSON(http.StatusOK, types.UploadResponse{
		Success: true,
		Message: "File processed successfully and claim created",
		Claim:   claim,
		ExtractedData: map[string]interface{}{
			"raw_text":  previewText(text),
			"extracted": fields,
		},
	})
}

// previewText truncates long recognized text for response bodies.
func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= rawTextPreviewRunes {
		return text
	}
	return string(runes[:rawTextPreviewRunes]) + "..."
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
