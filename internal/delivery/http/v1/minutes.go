package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-minutes/internal/services"
)

type minutesReviewResponse struct {
	SessionID     string    `json:"session_id"`
	RecordID      string    `json:"record_id"`
	Status        string    `json:"status"`
	RevisionCount int       `json:"revision_count"`
	ExpiresAt     time.Time `json:"expires_at"`
	Markdown      string    `json:"markdown"`
}

func newMinutesReviewResponse(review *services.MinutesReview) minutesReviewResponse {
	return minutesReviewResponse{
		SessionID:     review.SessionID,
		RecordID:      review.RecordID,
		Status:        review.Status,
		RevisionCount: review.RevisionCount,
		ExpiresAt:     review.ExpiresAt,
		Markdown:      review.Markdown,
	}
}

type generateMinutesRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

func (h *handlerImpl) HandleGenerateMinutes(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req generateMinutesRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	review, err := h.minutes.Generate(c, sessionID, req.Transcript)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Msg("generated minutes")
	c.JSON(http.StatusCreated, newMinutesReviewResponse(review))
}

func (h *handlerImpl) HandleGetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	review, err := h.minutes.Get(c, sessionID)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMinutesReviewResponse(review))
}

type actionRequest struct {
	ActionID string `json:"action_id" binding:"required"`
}

type actionResponse struct {
	SessionID string    `json:"session_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleSessionAction accepts one lifecycle action per interaction and
// routes it to the record kind the action belongs to.
func (h *handlerImpl) HandleSessionAction(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req actionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	params := services.ActionParams{
		SessionID: sessionID,
		ActionID:  req.ActionID,
		ActorID:   actorID(c),
	}

	var result *services.ActionResult
	if isTaskAction(req.ActionID) {
		result, err = h.tasks.HandleAction(c, params)
	} else {
		result, err = h.minutes.HandleAction(c, params)
	}
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("action_id", req.ActionID).
		Str("status", result.Status).
		Msg("handled action")
	c.JSON(http.StatusOK, actionResponse{
		SessionID: result.SessionID,
		Status:    result.Status,
		Message:   result.Message,
		Timestamp: result.Timestamp,
	})
}

type submitRevisionRequest struct {
	Markdown string `json:"markdown" binding:"required"`
}

func (h *handlerImpl) HandleSubmitMinutesRevision(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req submitRevisionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	review, err := h.minutes.SubmitRevision(c, services.RevisionParams{
		SessionID: sessionID,
		Markdown:  req.Markdown,
		ActorID:   actorID(c),
	})
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Msg("applied minutes revision")
	c.JSON(http.StatusOK, newMinutesReviewResponse(review))
}
