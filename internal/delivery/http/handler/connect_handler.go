package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/usecase/connect"
)

type ConnectHandler struct {
	connectUseCase *connect.UseCase
}

func NewConnectHandler(connectUseCase *connect.UseCase) *ConnectHandler {
	return &ConnectHandler{
		connectUseCase: connectUseCase,
	}
}

// SendRequestBody is the request payload for sending a connection request.
type SendRequestBody struct {
	ReceiverID int `json:"receiver_id" binding:"required"`
}

// RespondBody is the request payload for answering a connection request.
type RespondBody struct {
	Accept *bool `json:"accept" binding:"required"`
}

// SendRequest handles POST /connections/requests
// @Summary Send connection request
// @Description Send a pending connection request to another user
// @Tags connections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendRequestBody true "Receiver"
// @Success 201 {object} domain.ConnectionRequest
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections/requests [post]
func (h *ConnectHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body SendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.connectUseCase.SendRequest(c.Request.Context(), userID, body.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCannotRequestSelf):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot request yourself"})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrRequestAlreadyExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "request already exists"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to send request"})
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

// Respond handles POST /connections/requests/:id/respond
// @Summary Respond to connection request
// @Description Accept or reject a pending connection request; accepting creates a match
// @Tags connections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body RespondBody true "Decision"
// @Success 200 {object} domain.ConnectionRequest
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections/requests/{id}/respond [post]
func (h *ConnectHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request id"})
		return
	}

	var body RespondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.connectUseCase.Respond(c.Request.Context(), userID, requestID, *body.Accept)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "request not found"})
		case errors.Is(err, domain.ErrRequestAlreadyExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "request already answered"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to respond to request"})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// List handles GET /connections/requests
// @Summary List connection requests
// @Description List the current user's connection requests in any direction and status
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Success 200 {array} connect.RequestView
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections/requests [get]
func (h *ConnectHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.connectUseCase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}
