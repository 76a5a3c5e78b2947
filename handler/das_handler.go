package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Aashish23092/das-field-extraction/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DASExtractor is the service behind the DAS endpoints.
type DASExtractor interface {
	ExtractFromFile(ctx context.Context, data []byte, filename, password string) (*dto.DASExtractResponse, error)
	ExtractFromText(ctx context.Context, text string) (*dto.DASExtractResponse, error)
}

// DASHandler handles DAS extraction requests
type DASHandler struct {
	service     DASExtractor
	maxFileSize int64
	logger      *zap.Logger
}

func NewDASHandler(service DASExtractor, maxFileSize int64, logger *zap.Logger) *DASHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DASHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Register mounts the DAS routes on the given group.
func (h *DASHandler) Register(rg *gin.RouterGroup) {
	d := rg.Group("/das")
	d.POST("/extract", h.ExtractDAS)
	d.POST("/parse", h.ParseText)
}

// ExtractDAS handles the POST /das/extract endpoint
func (h *DASHandler) ExtractDAS(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "file is required", dto.ErrFileRequired)
		return
	}

	req := &dto.DASExtractRequest{
		File:     fileHeader,
		Password: c.PostForm("password"),
	}
	if err := req.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to open file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to read file", err)
		return
	}

	h.logger.Info("received das extraction request",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size))

	resp, err := h.service.ExtractFromFile(c.Request.Context(), data, fileHeader.Filename, req.Password)
	if err != nil {
		h.sendError(c, statusFor(err), "failed to extract das", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ParseText handles the POST /das/parse endpoint
func (h *DASHandler) ParseText(c *gin.Context) {
	var req dto.DASParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "text is required", err)
		return
	}

	resp, err := h.service.ExtractFromText(c.Request.Context(), req.Text)
	if err != nil {
		h.sendError(c, statusFor(err), "failed to parse das text", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrEmptyText),
		errors.Is(err, dto.ErrFileRequired),
		errors.Is(err, dto.ErrUnsupportedFileType),
		errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrNoTextExtracted):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// sendError sends a structured error response
func (h *DASHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Warn(message, zap.Int("status", statusCode), zap.Error(err))
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
