package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
	"github.com/macrolens/capture/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	nutrition      *usecase.NutritionService
	workout        *usecase.WorkoutService
	vision         *usecase.VisionDecoder
	maxUploadBytes int64
	logger         *zap.Logger
}

// HandlerConfig holds request limits for the handlers
type HandlerConfig struct {
	MaxUploadBytes int64
}

// NewHandler creates a new HTTP handler. Any service may be nil; its
// endpoints then answer 501.
func NewHandler(
	nutrition *usecase.NutritionService,
	workout *usecase.WorkoutService,
	vision *usecase.VisionDecoder,
	config HandlerConfig,
	logger *zap.Logger,
) *Handler {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 20 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		nutrition:      nutrition,
		workout:        workout,
		vision:         vision,
		maxUploadBytes: config.MaxUploadBytes,
		logger:         logger.Named("http"),
	}
}

// textRequest carries text for the parse endpoints
type textRequest struct {
	Text string `json:"text" binding:"required"`
}

// visionRequest carries a raw reply from the external vision model
type visionRequest struct {
	Response string `json:"response" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "macrolens-capture",
		"version": "1.0.0",
	})
}

// AnalyzeNutrition classifies an uploaded nutrition photo
func (h *Handler) AnalyzeNutrition(c *gin.Context) {
	if h.nutrition == nil {
		notConfigured(c, "nutrition")
		return
	}

	upload, ok := h.readUpload(c, "image")
	if !ok {
		return
	}

	outcome := h.nutrition.AnalyzeImage(c.Request.Context(), upload.image(sourceParam(c, domain.SourceGallery)))
	c.JSON(http.StatusOK, gin.H{"type": outcome.Kind(), "result": outcome})
}

// QuickCheckNutrition gives the live-preview signal for one camera frame
func (h *Handler) QuickCheckNutrition(c *gin.Context) {
	if h.nutrition == nil {
		notConfigured(c, "nutrition")
		return
	}

	frame, ok := h.openFrame(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.nutrition.QuickCheck(c.Request.Context(), frame))
}

// ParseNutrition parses label text supplied by the client
func (h *Handler) ParseNutrition(c *gin.Context) {
	if h.nutrition == nil {
		notConfigured(c, "nutrition")
		return
	}

	var req textRequest
	if !bindText(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.nutrition.ParseText(req.Text))
}

// AnalyzeWorkout classifies and routes an uploaded workout photo or file
func (h *Handler) AnalyzeWorkout(c *gin.Context) {
	if h.workout == nil {
		notConfigured(c, "workout")
		return
	}

	upload, ok := h.readUpload(c, "file")
	if !ok {
		return
	}

	outcome := h.workout.Process(c.Request.Context(), domain.CaptureInput{
		Data:     upload.data,
		Filename: upload.filename,
		MimeType: upload.mimeType,
		Source:   sourceParam(c, domain.SourceUpload),
	})
	c.JSON(http.StatusOK, gin.H{"type": outcome.Kind(), "result": outcome})
}

// QuickCheckWorkout gives the live-preview signal for one camera frame
func (h *Handler) QuickCheckWorkout(c *gin.Context) {
	if h.workout == nil {
		notConfigured(c, "workout")
		return
	}

	frame, ok := h.openFrame(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.workout.QuickCheck(c.Request.Context(), frame))
}

// ParseWorkout parses workout text supplied by the client
func (h *Handler) ParseWorkout(c *gin.Context) {
	if h.workout == nil {
		notConfigured(c, "workout")
		return
	}

	var req textRequest
	if !bindText(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.workout.ParseText(req.Text))
}

// ExtractWorkoutFile extracts text from an uploaded spreadsheet or document
func (h *Handler) ExtractWorkoutFile(c *gin.Context) {
	if h.workout == nil {
		notConfigured(c, "workout")
		return
	}

	upload, ok := h.readUpload(c, "file")
	if !ok {
		return
	}

	outcome := h.workout.ProcessFile(c.Request.Context(), upload.data, upload.filename, upload.mimeType)
	c.JSON(http.StatusOK, gin.H{"type": outcome.Kind(), "result": outcome})
}

// DecodeWorkoutVision normalizes a reply from the external vision model
func (h *Handler) DecodeWorkoutVision(c *gin.Context) {
	if h.vision == nil {
		notConfigured(c, "vision")
		return
	}

	var req visionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: response is required"})
		return
	}

	result, err := h.vision.Decode(req.Response)
	switch {
	case errors.Is(err, domain.ErrNoWorkoutFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Info("vision response rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}

type upload struct {
	data     []byte
	filename string
	mimeType string
}

func (u upload) image(source domain.InputSource) domain.Image {
	return domain.Image{Data: u.data, MimeType: u.mimeType, Source: source}
}

// readUpload reads one multipart file, enforcing the upload limit
func (h *Handler) readUpload(c *gin.Context, field string) (upload, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %s file is required", field)})
		return upload{}, false
	}
	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload exceeds size limit"})
		return upload{}, false
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return upload{}, false
	}

	return upload{data: data, filename: header.Filename, mimeType: contentType(header)}, true
}

// multipartFrame is a camera frame backed by an open multipart file
type multipartFrame struct {
	img  domain.Image
	file multipart.File
}

func (f *multipartFrame) Image() domain.Image { return f.img }
func (f *multipartFrame) Close() error        { return f.file.Close() }

// openFrame wraps the "frame" upload. The quick-check services own the
// returned frame and close it.
func (h *Handler) openFrame(c *gin.Context) (domain.Frame, bool) {
	header, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: frame file is required"})
		return nil, false
	}
	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload exceeds size limit"})
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read frame"})
		return nil, false
	}
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
	if err != nil {
		_ = f.Close()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read frame"})
		return nil, false
	}

	return &multipartFrame{
		img:  domain.Image{Data: data, MimeType: contentType(header), Source: domain.SourceCamera},
		file: f,
	}, true
}

func bindText(c *gin.Context, req *textRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error() + ": text is required"})
		return false
	}
	return true
}

func contentType(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func sourceParam(c *gin.Context, fallback domain.InputSource) domain.InputSource {
	switch domain.InputSource(c.PostForm("source")) {
	case domain.SourceCamera:
		return domain.SourceCamera
	case domain.SourceGallery:
		return domain.SourceGallery
	case domain.SourceUpload:
		return domain.SourceUpload
	default:
		return fallback
	}
}

func notConfigured(c *gin.Context, service string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": fmt.Sprintf("%s service not configured", service),
	})
}
