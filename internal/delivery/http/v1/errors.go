package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-minutes/internal/approval"
	"github.com/adanyl0v/go-minutes/internal/codec"
	"github.com/adanyl0v/go-minutes/internal/generation"
	"github.com/adanyl0v/go-minutes/internal/services"
	"github.com/adanyl0v/go-minutes/internal/validate"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

// abortServiceError maps the error taxonomy onto HTTP statuses: unknown
// actions and invalid tasks are the caller's fault (400/422), illegal
// lifecycle transitions and duplicate sessions are conflicts (409), and
// unparseable documents are unprocessable (422).
func (h *handlerImpl) abortServiceError(c *gin.Context, err error) {
	var (
		unknownErr   *approval.UnknownActionError
		lifecycleErr *approval.LifecycleError
		formatErr    *codec.FormatError
		validateErr  *validate.Error
	)

	switch {
	case errors.Is(err, generation.ErrEmptyTranscript):
		abort(c, apiError{Code: http.StatusBadRequest, Message: err.Error()})
	case errors.As(err, &unknownErr):
		abort(c, apiError{Code: http.StatusBadRequest, Message: unknownErr.Error()})
	case errors.As(err, &lifecycleErr):
		abort(c, apiError{Code: http.StatusConflict, Message: lifecycleErr.Error()})
	case errors.As(err, &formatErr):
		abort(c, apiError{Code: http.StatusUnprocessableEntity, Message: formatErr.Error()})
	case errors.As(err, &validateErr):
		abort(c, apiError{Code: http.StatusUnprocessableEntity, Message: validateErr.Error()})
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, approval.ErrTaskNotFound):
		abort(c, apiError{Code: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, services.ErrSessionAlreadyActive):
		abort(c, apiError{Code: http.StatusConflict, Message: err.Error()})
	case errors.Is(err, services.ErrNoApprovedMinutes):
		abort(c, apiError{Code: http.StatusConflict, Message: err.Error()})
	default:
		h.logger.Error().
			Err(err).
			Msg("internal error")
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
