package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-minutes/internal/services"
)

type Handler interface {
	HandleActorMiddleware(c *gin.Context)

	HandleGenerateMinutes(c *gin.Context)
	HandleGetSession(c *gin.Context)
	HandleSessionAction(c *gin.Context)
	HandleSubmitMinutesRevision(c *gin.Context)

	HandleExtractTasks(c *gin.Context)
	HandleAddTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleListMutations(c *gin.Context)
	HandleActorMutationStats(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	minutes   services.MinutesService
	tasks     services.TaskService
	mutations services.MutationService

	jwtSigningKey []byte
}

func New(
	logger zerolog.Logger,
	minutesService services.MinutesService,
	taskService services.TaskService,
	mutationService services.MutationService,
	jwtSigningKey string,
) Handler {
	return &handlerImpl{
		logger:        logger,
		minutes:       minutesService,
		tasks:         taskService,
		mutations:     mutationService,
		jwtSigningKey: []byte(jwtSigningKey),
	}
}
