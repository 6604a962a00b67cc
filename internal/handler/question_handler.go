package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lintahlo/potential-backend/internal/model"
	"github.com/lintahlo/potential-backend/internal/repository"
	"github.com/lintahlo/potential-backend/internal/response"
	"github.com/lintahlo/potential-backend/internal/service"
	"github.com/lintahlo/potential-backend/internal/validator"
)

// defaultListLimit caps unpaginated question listings.
const defaultListLimit = 50

// QuestionHandler handles question endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// filterFromQuery reads domain/skill/difficulty/limit query params. Absent
// params behave like the "Any" wildcard.
func filterFromQuery(c *gin.Context) model.QuestionFilter {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return model.QuestionFilter{
		Domain:     c.Query("domain"),
		Skill:      c.Query("skill"),
		Difficulty: c.Query("difficulty"),
		Limit:      limit,
	}
}

// List godoc
// GET /api/v1/questions
// Lists questions matching the domain/skill/difficulty filters, paged by the
// page and limit query params.
func (h *QuestionHandler) List(c *gin.Context) {
	filter := filterFromQuery(c)
	page := pageFromQuery(c)
	filter.Offset = (page - 1) * filter.Limit

	total, err := h.questionService.Count(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	questions, err := h.questionService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{
		"questions": questions,
		"count":     len(questions),
	}, &response.Pagination{
		Page:       page,
		PerPage:    filter.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, filter.Limit),
	})
}

// pageFromQuery reads the 1-based page query param, defaulting to 1.
func pageFromQuery(c *gin.Context) int {
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 1 {
			return n
		}
	}
	return 1
}

// totalPages rounds the item count up to whole pages.
func totalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Random godoc
// GET /api/v1/questions/random
// Returns one random question matching the filters.
func (h *QuestionHandler) Random(c *gin.Context) {
	filter := filterFromQuery(c)
	filter.Limit = 0

	question, err := h.questionService.Random(c.Request.Context(), filter)
	if errors.Is(err, repository.ErrQuestionNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, question)
}

// Filters godoc
// GET /api/v1/questions/filters
// Returns the distinct domain/skill/difficulty values available.
func (h *QuestionHandler) Filters(c *gin.Context) {
	values, err := h.questionService.Filters(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, values)
}

// Create godoc
// POST /api/v1/admin/questions
// Adds a manually authored question. Admin only.
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req)
	if errors.Is(err, service.ErrInvalidQuestion) {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrInvalidQuestion,
			map[string]string{"detail": err.Error()})
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, question)
}
