package handlers

import (
	"net/http"
	"time"

	"github.com/connosssss/trackr/models"
	"github.com/connosssss/trackr/repository"
	"github.com/connosssss/trackr/types"

	"github.com/gin-gonic/gin"
)

type SessionsHandler struct {
	repo *repository.SessionsRepository
}

func NewSessionsHandler(repo *repository.SessionsRepository) *SessionsHandler {
	return &SessionsHandler{repo: repo}
}

type sessionRequest struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int64     `json:"duration"`
	Group     *string    `json:"group"`
}

func (req *sessionRequest) validate() string {
	if req.StartTime.IsZero() {
		return "startTime is required"
	}
	if req.Duration != nil && *req.Duration < 0 {
		return "duration must not be negative"
	}
	if req.EndTime != nil && req.EndTime.Before(req.StartTime) {
		return "endTime must not precede startTime"
	}
	return ""
}

func (req *sessionRequest) toInput() repository.SessionInput {
	group := req.Group
	if group != nil && *group == "" {
		group = nil
	}
	return repository.SessionInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Group:     group,
	}
}

func (h *SessionsHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, msg))
		return
	}

	userID := c.GetInt("userId")
	session, err := h.repo.CreateSession(userID, req.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(session))
}

func (h *SessionsHandler) GetSessions(c *gin.Context) {
	userID := c.GetInt("userId")
	p := types.ParsePaginationParams(c)

	sessions, total, err := h.repo.GetSessions(userID, p.PageSize, p.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if sessions == nil {
		sessions = []*models.TimeSession{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(p.BuildResponse(sessions, total)))
}

// getOwnedSession loads a session and verifies it belongs to the caller.
// Foreign sessions report not-found rather than forbidden so ids cannot be
// probed.
func (h *SessionsHandler) getOwnedSession(c *gin.Context) *models.TimeSession {
	session, err := h.repo.GetSessionByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return nil
	}
	if session == nil || session.UserID != c.GetInt("userId") {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Session not found"))
		return nil
	}
	return session
}

func (h *SessionsHandler) UpdateSession(c *gin.Context) {
	session := h.getOwnedSession(c)
	if session == nil {
		return
	}

	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, msg))
		return
	}

	if err := h.repo.UpdateSession(session.ID, req.toInput()); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	updated, err := h.repo.GetSessionByID(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(updated))
}

func (h *SessionsHandler) DeleteSession(c *gin.Context) {
	session := h.getOwnedSession(c)
	if session == nil {
		return
	}
	if err := h.repo.DeleteSession(session.ID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
