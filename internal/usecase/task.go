package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/adilzhanb/taskhub/internal/domain"
	"github.com/adilzhanb/taskhub/internal/metrics"
	"github.com/adilzhanb/taskhub/internal/repository"
)

// TaskUsecase implements the owner-scoped task operations. The userID on every
// call comes from the verified session token, never from client input.
type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Status      domain.Status
}

func (u *TaskUsecase) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.StatusTodo
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return created, nil
}

func (u *TaskUsecase) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Nil Description and Status mean the field was omitted from the request and
// the stored value is kept. An explicit empty description clears it.
type UpdateTaskInput struct {
	TaskID      string
	UserID      string
	Title       string
	Description *string
	Status      *domain.Status
}

func (u *TaskUsecase) Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	current, err := u.repo.GetByID(ctx, input.TaskID, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task for update: %w", err)
	}

	description := current.Description
	if input.Description != nil {
		description = *input.Description
	}
	status := current.Status
	if input.Status != nil {
		status = *input.Status
	}

	task, err := u.repo.Update(ctx, &domain.Task{
		ID:          input.TaskID,
		UserID:      input.UserID,
		Title:       input.Title,
		Description: description,
		Status:      status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return task, nil
}

func (u *TaskUsecase) Delete(ctx context.Context, taskID, userID string) error {
	if err := u.repo.Delete(ctx, taskID, userID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}
