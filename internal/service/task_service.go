package service

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/savansr/task-management-app/internal/cache"
	dom "github.com/savansr/task-management-app/internal/domain"
	"github.com/savansr/task-management-app/internal/errs"
	"github.com/savansr/task-management-app/internal/repo"
)

// CreateTaskInput carries the caller-supplied fields for Create.
// The owner is never part of the input: it always comes from the
// authenticated identity.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    dom.Priority
}

// UpdateTaskInput carries the partial fields for Update. nil = keep.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *dom.Priority
	Status      *dom.Status
}

// TaskService enforces ownership on every task operation. It assumes the
// auth middleware already resolved the identity; it never re-verifies tokens.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create persists a new task owned by the given identity. Status always
// starts incomplete; priority defaults to medium.
func (s *TaskService) Create(ctx context.Context, owner dom.User, in CreateTaskInput) (dom.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Task{}, errs.ErrValidation
	}
	priority := in.Priority
	if priority == "" {
		priority = dom.PriorityMedium
	}
	if !priority.Valid() {
		return dom.Task{}, errs.ErrValidation
	}

	t, err := s.repo.Create(ctx, dom.Task{
		OwnerID:     owner.ID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Priority:    priority,
		Status:      dom.StatusIncomplete,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, owner.ID)
	return t, nil
}

// List returns exactly the identity's tasks, newest first.
func (s *TaskService) List(ctx context.Context, owner dom.User) ([]dom.Task, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(owner.ID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, owner.ID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByOwner(ctx, owner.ID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, owner.ID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.ListByOwner(ctx, owner.ID)
}

// Update merges the non-nil fields of in into the stored task. Ownership is
// resolved before any write: a missing task is ErrNotFound, someone else's
// task is ErrForbidden, and in neither case does the store get touched.
func (s *TaskService) Update(ctx context.Context, owner dom.User, id int64, in UpdateTaskInput) (dom.Task, error) {
	existing, err := s.authorize(ctx, owner, id)
	if err != nil {
		return dom.Task{}, err
	}
	patch := existing
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title != "" {
			patch.Title = title
		}
	}
	if in.Description != nil {
		patch.Description = strings.TrimSpace(*in.Description)
	}
	if in.Priority != nil && in.Priority.Valid() {
		patch.Priority = *in.Priority
	}
	if in.Status != nil && in.Status.Valid() {
		patch.Status = *in.Status
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, owner.ID)
	return t, nil
}

// Delete removes the task permanently after the same ownership checks as Update.
func (s *TaskService) Delete(ctx context.Context, owner dom.User, id int64) error {
	if _, err := s.authorize(ctx, owner, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, owner.ID)
	return nil
}

// authorize fetches the task by bare ID and checks ownership.
func (s *TaskService) authorize(ctx context.Context, owner dom.User, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	if t.OwnerID != owner.ID {
		return dom.Task{}, errs.ErrForbidden
	}
	return t, nil
}

func (s *TaskService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}
