package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lintahlo/potential-backend/internal/model"
	"github.com/lintahlo/potential-backend/internal/repository"
	"github.com/lintahlo/potential-backend/internal/response"
	"github.com/lintahlo/potential-backend/internal/service"
	"github.com/lintahlo/potential-backend/internal/validator"
)

// VocabularyHandler handles flashcard endpoints.
type VocabularyHandler struct {
	vocabularyService *service.VocabularyService
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(vocabularyService *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabularyService: vocabularyService}
}

// ListCards godoc
// GET /api/v1/vocabulary/cards
// Lists every flashcard.
func (h *VocabularyHandler) ListCards(c *gin.Context) {
	cards, err := h.vocabularyService.AllCards(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cards": cards, "count": len(cards)})
}

// DueCards godoc
// GET /api/v1/vocabulary/cards/due
// Lists flashcards due for review.
func (h *VocabularyHandler) DueCards(c *gin.Context) {
	cards, err := h.vocabularyService.DueCards(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cards": cards, "count": len(cards)})
}

// Stats godoc
// GET /api/v1/vocabulary/stats
// Returns study progress counters.
func (h *VocabularyHandler) Stats(c *gin.Context) {
	stats, err := h.vocabularyService.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Review godoc
// POST /api/v1/vocabulary/cards/:id/review
// Records a review result and schedules the next one.
func (h *VocabularyHandler) Review(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.vocabularyService.Review(c.Request.Context(), cardID, req.Result)
	if errors.Is(err, repository.ErrCardNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, attempt)
}

// CreateCard godoc
// POST /api/v1/admin/vocabulary/cards
// Adds a flashcard. Admin only.
func (h *VocabularyHandler) CreateCard(c *gin.Context) {
	var req model.CreateCardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	card, err := h.vocabularyService.CreateCard(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, card)
}
