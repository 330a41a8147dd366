package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adilzhanb/taskhub/internal/domain"
	"github.com/adilzhanb/taskhub/internal/usecase"
	"github.com/gin-gonic/gin"
)

// taskUsecaser is the subset of TaskUsecase the handler needs.
type taskUsecaser interface {
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	Create(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, input usecase.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, taskID, userID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string        `json:"title"       binding:"required,max=100"`
	Description string        `json:"description" binding:"omitempty,max=500"`
	Status      domain.Status `json:"status"      binding:"omitempty,oneof=todo in_progress done"`
}

// updateTaskRequest uses pointers for the optional fields so an omitted field
// can be told apart from an explicit value; omitted fields keep their stored
// value.
type updateTaskRequest struct {
	Title       string         `json:"title"       binding:"required,max=100"`
	Description *string        `json:"description" binding:"omitempty,max=500"`
	Status      *domain.Status `json:"status"      binding:"omitempty,oneof=todo in_progress done"`
}

type taskResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// GET /todos
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskUsecase.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// GET /todos/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetByID(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.Error("get task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// POST /todos
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.Create(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.Error("create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// PUT /todos/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.Update(c.Request.Context(), usecase.UpdateTaskInput{
		TaskID:      taskID,
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.Error("update task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// DELETE /todos/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.taskUsecase.Delete(c.Request.Context(), taskID, c.GetString("userID")); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.Error("delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
