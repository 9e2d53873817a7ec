package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/usecase/queue"
	"github.com/sanjail3/fyndly-backend/internal/usecase/recommend"
)

type RecommendHandler struct {
	recommendUseCase *recommend.UseCase
	queueUseCase     *queue.UseCase
}

func NewRecommendHandler(recommendUseCase *recommend.UseCase, queueUseCase *queue.UseCase) *RecommendHandler {
	return &RecommendHandler{
		recommendUseCase: recommendUseCase,
		queueUseCase:     queueUseCase,
	}
}

// Generate handles POST /recommendations/generate
// @Summary Generate recommendation queue
// @Description Build and persist a fresh recommendation queue for the current user, replacing today's batch
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} recommend.GenerateResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations/generate [post]
func (h *RecommendHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.recommendUseCase.Generate(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUserID):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate recommendations"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetQueue handles GET /recommendations
// @Summary Read recommendation queue
// @Description Return the persisted queue grouped by section, or a staleness flag telling the client to regenerate
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queue.View
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations [get]
func (h *RecommendHandler) GetQueue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.queueUseCase.Read(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUserID) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read recommendations"})
		return
	}

	c.JSON(http.StatusOK, view)
}
