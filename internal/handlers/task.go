package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/actionanand/Ctrl-Alt-Del/internal/dto"
	apierrors "github.com/actionanand/Ctrl-Alt-Del/internal/errors"
	"github.com/actionanand/Ctrl-Alt-Del/internal/middleware"
	"github.com/actionanand/Ctrl-Alt-Del/internal/services"
	"github.com/actionanand/Ctrl-Alt-Del/internal/validation"
	"github.com/gin-gonic/gin"
)

const msgTaskNotFound = "Task not found!"

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	var req struct {
		Description string `json:"description"`
		Completed   *bool  `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, msgInvalidBody)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		OwnerID:     user.ID,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the current user's tasks
// Can filter by completed=true|false
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	var completed *bool
	if value, present := c.GetQuery("completed"); present && value != "" {
		done := value == "true"
		completed = &done
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), user.ID, completed)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns the task loaded by the ownership middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetCurrentTask(c)
	if !ok {
		apierrors.NotFound(c, msgTaskNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to description and completed
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}
	task, ok := middleware.GetCurrentTask(c)
	if !ok {
		apierrors.NotFound(c, msgTaskNotFound)
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BadRequest(c, apierrors.MessageInvalidUpdate)
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task.ID, user.ID, patch)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes the task and returns it
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}
	task, ok := middleware.GetCurrentTask(c)
	if !ok {
		apierrors.NotFound(c, msgTaskNotFound)
		return
	}

	deleted, err := h.taskService.DeleteTask(c.Request.Context(), task.ID, user.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*deleted))
}

func respondTaskError(c *gin.Context, err error) {
	var validationErr *validation.Error

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequest(c, validationErr.Message)
	case errors.Is(err, services.ErrInvalidUpdate):
		apierrors.BadRequest(c, apierrors.MessageInvalidUpdate)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, msgTaskNotFound)
	case errors.Is(err, services.ErrOwnerNotFound):
		apierrors.BadRequest(c, msgUserNotFound)
	default:
		apierrors.InternalError(c)
	}
}
