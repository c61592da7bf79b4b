package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tarjamli/backend/internal/domain"
)

type translationService interface {
	Save(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error)
	List(ctx context.Context, userID string, limit int) ([]domain.Translation, error)
}

type TranslationHandler struct {
	translations translationService
	logger       *slog.Logger
}

func NewTranslationHandler(translations translationService, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{
		translations: translations,
		logger:       logger.With("component", "translation_handler"),
	}
}

type saveTranslationRequest struct {
	SourceText     string `json:"sourceText"     binding:"required"`
	TranslatedText string `json:"translatedText" binding:"required"`
}

// POST /translations (protected)
func (h *TranslationHandler) Save(c *gin.Context) {
	var req saveTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tr, err := h.translations.Save(c.Request.Context(), c.GetString("userID"), req.SourceText, req.TranslatedText)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "save translation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Translation saved",
		"translation": tr,
	})
}

// GET /translations?limit=N (protected)
func (h *TranslationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.translations.List(c.Request.Context(), c.GetString("userID"), limit)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list translations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	if out == nil {
		out = []domain.Translation{}
	}

	c.JSON(http.StatusOK, gin.H{"translations": out})
}
