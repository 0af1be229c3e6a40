package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notary-portal/notary-portal-backend/internal/audit"
	"notary-portal/notary-portal-backend/internal/auth"
)

const pdfContentType = "application/pdf"

type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: logger}
}

// RegisterRoutes registers the authenticated document routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	api := r.Group("/api", requireAuth)
	{
		api.POST("/upload", h.Upload)
		api.POST("/sign/:documentId", h.Sign)
		api.GET("/download/:filename", h.Download)
		api.GET("/audit", h.Audit)
		api.GET("/audit/export", h.ExportAudit)
		api.POST("/verify", h.Verify)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file uploaded"})
		return
	}

	// Non-PDF uploads are dropped as if no file had been sent.
	if file.Header.Get("Content-Type") != pdfContentType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file uploaded"})
		return
	}
	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF file exceeds the size limit"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "details": err.Error()})
		return
	}
	defer f.Close()

	result, err := h.service.Upload(c.Request.Context(), UploadRequest{
		OriginalName: file.Filename,
		Size:         file.Size,
		Content:      f,
	})
	if err != nil {
		h.logger.Error("upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

type signRequest struct {
	Filename string `json:"filename"`
}

func (h *Handler) Sign(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required"})
		return
	}

	result, err := h.service.Sign(c.Request.Context(), identity, c.Param("documentId"), req.Filename)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		case errors.Is(err, ErrInvalidDocument):
			c.JSON(http.StatusBadRequest, gin.H{"error": "PDF has no pages", "details": err.Error()})
		default:
			h.logger.Error("signing failed", zap.String("filename", req.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF signing failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Download(c *gin.Context) {
	filename := c.Param("filename")

	path, err := h.service.FilePath(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.Header("Content-Type", pdfContentType)
	c.FileAttachment(path, filename)
}

func (h *Handler) Audit(c *gin.Context) {
	entries, err := h.service.AuditTrail(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit trail"})
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) ExportAudit(c *gin.Context) {
	entries, err := h.service.AuditTrail(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit trail"})
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="audit-trail.csv"`)
		if err := audit.ExportCSV(c.Writer, entries); err != nil {
			h.logger.Error("audit export failed", zap.Error(err))
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="audit-trail.xlsx"`)
		if err := audit.ExportExcel(c.Writer, entries); err != nil {
			h.logger.Error("audit export failed", zap.Error(err))
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format"})
	}
}

type verifyRequest struct {
	Filename     string `json:"filename"`
	ExpectedHash string `json:"expectedHash"`
}

func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" || req.ExpectedHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename and expectedHash are required"})
		return
	}

	result, err := h.service.Verify(c.Request.Context(), req.Filename, req.ExpectedHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		h.logger.Error("verification failed", zap.String("filename", req.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
