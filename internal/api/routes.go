package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/internal/artifacts"
	"github.com/hanifra/studycast/server/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(
	e *echo.Echo,
	extraction *usecase.ExtractionService,
	synthesis *usecase.SynthesisService,
	store *artifacts.Manager,
	maxUploadBytes int64,
	logger *zap.Logger,
) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "studycast-server",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.POST("/extract", func(c echo.Context) error {
		return extractDocument(c, extraction, maxUploadBytes, logger)
	})
	v1.POST("/synthesize", func(c echo.Context) error {
		return synthesizeSpeech(c, synthesis, logger)
	})
	v1.GET("/audio/:id", func(c echo.Context) error {
		return downloadAudio(c, store, logger)
	})
}

// extractDocument handles the multipart upload and runs the extraction
// cascade. 422 means every backend was exhausted without meeting the
// quality gate; 400 covers request problems; anything else is a 500 with
// the underlying cause.
func extractDocument(c echo.Context, extraction *usecase.ExtractionService, maxUploadBytes int64, logger *zap.Logger) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file selected"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("File too large. Maximum size is %dMB.", maxUploadBytes>>20),
		})
	}
	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".pdf" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("%v: please upload a PDF file", domain.ErrUnsupportedMediaType),
		})
	}

	method := domain.ExtractionMethod(c.FormValue("method"))
	if method == "" {
		method = domain.MethodAuto
	}
	if !domain.ValidExternalMethod(method) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Invalid method: %s", method),
		})
	}

	useExternal := true
	if v := c.FormValue("usePython"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("Invalid usePython value: %s", v),
			})
		}
		useExternal = parsed
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: fmt.Sprintf("An error occurred during extraction: %v", err),
		})
	}
	defer src.Close()

	document, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		logger.Error("Failed to read uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: fmt.Sprintf("An error occurred during extraction: %v", err),
		})
	}

	logger.Info("Document uploaded",
		zap.String("filename", fileHeader.Filename),
		zap.Int("bytes", len(document)),
		zap.String("method", string(method)),
		zap.Bool("useExternal", useExternal))

	result, err := extraction.Extract(c.Request().Context(), domain.ExtractionRequest{
		Document:        document,
		Filename:        fileHeader.Filename,
		MediaType:       "application/pdf",
		Method:          method,
		UseExternalTool: useExternal,
	}, usecase.GateDefault)
	if err != nil {
		var insufficient *domain.InsufficientTextError
		if errors.As(err, &insufficient) {
			return c.JSON(http.StatusUnprocessableEntity, ExtractFailureResponse{
				Error: insufficient.Error(),
				Metadata: FailureMetadata{
					Threshold:        insufficient.Threshold,
					LongestCandidate: insufficient.Longest,
				},
			})
		}
		logger.Error("Extraction failed unexpectedly", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: fmt.Sprintf("An error occurred during extraction: %v", err),
		})
	}

	return c.JSON(http.StatusOK, result)
}

// synthesizeSpeech handles the synthesis endpoint. It never returns an
// error status for synthesis failures: the fallback path guarantees a
// playable artifact and failures surface only as a warning string.
func synthesizeSpeech(c echo.Context, synthesis *usecase.SynthesisService, logger *zap.Logger) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind synthesis request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Text is required"})
	}

	result := synthesis.Synthesize(c.Request().Context(), req.Text, req.Options)

	return c.JSON(http.StatusOK, SynthesizeResponse{
		Success:    true,
		AudioURL:   "/api/v1/audio/" + result.ArtifactID,
		Duration:   result.Duration,
		Voice:      result.Voice,
		Warning:    result.Warning,
		IsFallback: result.IsFallback,
	})
}

// downloadAudio serves a generated artifact and completes its retention
// window.
func downloadAudio(c echo.Context, store *artifacts.Manager, logger *zap.Logger) error {
	id := c.Param("id")
	path, data, ok := store.Resolve(id)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
	}

	if path != "" {
		err := c.Attachment(path, filepath.Base(path))
		store.Release(id)
		return err
	}

	store.Release(id)
	return c.Blob(http.StatusOK, "audio/wav", data)
}
