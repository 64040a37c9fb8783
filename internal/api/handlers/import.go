package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/codyseavey/tcg-tracker/collection/internal/importer"
	"github.com/codyseavey/tcg-tracker/collection/internal/services"
)

type ImportHandler struct {
	importService  *services.ImportService
	limiter        *rate.Limiter
	maxUploadBytes int64
}

// NewImportHandler allows perMinute uploads per minute with a burst of the
// same size. perMinute <= 0 disables the limit.
func NewImportHandler(importService *services.ImportService, perMinute int, maxUploadBytes int64) *ImportHandler {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return &ImportHandler{
		importService:  importService,
		limiter:        limiter,
		maxUploadBytes: maxUploadBytes,
	}
}

// Import accepts a multipart upload with a "file" field and optional
// "clear", "since" and "until" fields.
func (h *ImportHandler) Import(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many imports, try again later"})
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	clearFirst := false
	if raw := c.PostForm("clear"); raw != "" {
		clearFirst, err = strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clear must be true or false"})
			return
		}
	}
	since, err := importer.ParseBound(c.PostForm("since"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid since: %v", err)})
		return
	}
	until, err := importer.ParseUntilBound(c.PostForm("until"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid until: %v", err)})
		return
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "until must not be before since"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer f.Close()

	run, err := h.importService.Import(c.Request.Context(), services.ImportRequest{
		Source: fileHeader.Filename,
		CSV:    f,
		Clear:  clearFirst,
		Since:  since,
		Until:  until,
	})
	if err != nil {
		if run != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "run": run})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}

func (h *ImportHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.importService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRejects downloads the reject CSV of one run.
func (h *ImportHandler) GetRejects(c *gin.Context) {
	run, err := h.importService.GetRun(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrImportRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "import run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if run.RejectFile == "" || h.importService.Storage() == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import run has no reject file"})
		return
	}

	path, err := h.importService.Storage().Path(run.RejectFile)
	if errors.Is(err, services.ErrRejectFileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reject file no longer exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(path, run.RejectFile)
}
