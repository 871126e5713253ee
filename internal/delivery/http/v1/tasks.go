package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-minutes/internal/approval"
	"github.com/adanyl0v/go-minutes/internal/models"
	"github.com/adanyl0v/go-minutes/internal/services"
)

// isTaskAction reports whether the action id belongs to the task-batch half
// of the transition table.
func isTaskAction(actionID string) bool {
	switch actionID {
	case approval.ActionApproveTasks,
		approval.ActionRequestTaskRevision,
		approval.ActionSubmitTaskRevision,
		approval.ActionCancelTasks:
		return true
	default:
		return false
	}
}

type batchReviewResponse struct {
	SessionID      string `json:"session_id"`
	SourceRecordID string `json:"source_record_id"`
	Status         string `json:"status"`
	RevisionCount  int    `json:"revision_count"`
	TaskCount      int    `json:"task_count"`
	Markdown       string `json:"markdown"`
}

func newBatchReviewResponse(review *services.BatchReview) batchReviewResponse {
	return batchReviewResponse{
		SessionID:      review.SessionID,
		SourceRecordID: review.SourceRecordID,
		Status:         review.Status,
		RevisionCount:  review.RevisionCount,
		TaskCount:      review.TaskCount,
		Markdown:       review.Markdown,
	}
}

func (h *handlerImpl) HandleExtractTasks(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	review, err := h.tasks.Extract(c, sessionID)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Int("count", review.TaskCount).
		Msg("extracted tasks")
	c.JSON(http.StatusCreated, newBatchReviewResponse(review))
}

type addTaskRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority" binding:"required,oneof=high medium low"`
	SourceQuote string `json:"source_quote"`
}

func (h *handlerImpl) HandleAddTask(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req addTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	task := models.NewTask(req.Title, req.Description, models.Priority(req.Priority))
	task.Assignee = req.Assignee
	task.SourceQuote = req.SourceQuote
	if req.SourceQuote == "" {
		task.SourceQuote = "added manually during review"
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			h.logger.Error().
				Str("due_date", req.DueDate).
				Msg("invalid due date")
			abort(c, apiError{Code: http.StatusBadRequest, Message: "due_date must use the YYYY-MM-DD layout"})
			return
		}
		task.DueDate = due
	}

	review, err := h.tasks.AddTask(c, services.AddTaskParams{
		SessionID: sessionID,
		Task:      task,
		ActorID:   actorID(c),
	})
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("task_id", task.ID).
		Msg("added task")
	c.JSON(http.StatusCreated, newBatchReviewResponse(review))
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	sessionID := c.Param("session_id")
	taskID := c.Param("task_id")
	if sessionID == "" || taskID == "" {
		h.logger.Error().Msg("no session or task id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	params := services.UpdateTaskParams{
		SessionID:   sessionID,
		TaskID:      taskID,
		ActorID:     actorID(c),
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.Valid() {
			abort(c, apiError{Code: http.StatusBadRequest, Message: "priority must be high, medium or low"})
			return
		}
		params.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			params.DueDate = &time.Time{}
		} else {
			due, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				abort(c, apiError{Code: http.StatusBadRequest, Message: "due_date must use the YYYY-MM-DD layout"})
				return
			}
			params.DueDate = &due
		}
	}

	review, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("task_id", taskID).
		Msg("updated task")
	c.JSON(http.StatusOK, newBatchReviewResponse(review))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	sessionID := c.Param("session_id")
	taskID := c.Param("task_id")
	if sessionID == "" || taskID == "" {
		h.logger.Error().Msg("no session or task id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	review, err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		SessionID: sessionID,
		TaskID:    taskID,
		ActorID:   actorID(c),
	})
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("task_id", taskID).
		Msg("deleted task")
	c.JSON(http.StatusOK, newBatchReviewResponse(review))
}

type mutationResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Type      string    `json:"type"`
	Original  string    `json:"original"`
	Modified  string    `json:"modified"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handlerImpl) HandleListMutations(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		h.logger.Error().Msg("no session id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	records, err := h.mutations.ListBySession(c, sessionID)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	response := make([]mutationResponse, len(records))
	for i, rec := range records {
		response[i] = mutationResponse{
			ID:        rec.ID,
			TaskID:    rec.TaskID,
			ActorID:   rec.ActorID,
			Type:      string(rec.Type),
			Original:  rec.Original,
			Modified:  rec.Modified,
			CreatedAt: rec.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

// HandleActorMutationStats aggregates an actor's accepted edits per mutation
// type, the signal consumed when tuning generation for recurring corrections.
func (h *handlerImpl) HandleActorMutationStats(c *gin.Context) {
	statsActorID := c.Param("actor_id")
	if statsActorID == "" {
		h.logger.Error().Msg("no actor id provided")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	counts, err := h.mutations.CountByType(c, statsActorID)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}

	response := make(map[string]int, len(counts))
	for typ, count := range counts {
		response[string(typ)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"actor_id": statsActorID,
		"counts":   response,
	})
}
