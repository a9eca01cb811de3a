package middleware

import (
	"context"
	"errors"
	"strconv"

	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
	apierrors "github.com/actionanand/Ctrl-Alt-Del/internal/errors"
	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/actionanand/Ctrl-Alt-Del/internal/services"
	"github.com/gin-gonic/gin"
)

const taskNotFoundMessage = "Task not found!"

// TaskFinder loads a task owned by a given user
type TaskFinder interface {
	GetTask(ctx context.Context, taskID, ownerID uint64) (*models.Task, error)
}

// RequireOwnedTask loads the task named by the :id parameter. Tasks of other
// users are reported as not found so their existence does not leak.
func RequireOwnedTask(tasks TaskFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c)
			c.Abort()
			return
		}

		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.NotFound(c, taskNotFoundMessage)
			c.Abort()
			return
		}

		task, err := tasks.GetTask(c.Request.Context(), taskID, user.ID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, taskNotFoundMessage)
			} else {
				apierrors.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetCurrentTask retrieves the task loaded by RequireOwnedTask
func GetCurrentTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}

	task, ok := value.(*models.Task)
	if !ok || task == nil {
		return nil, false
	}
	return task, true
}
