package service

import (
	"context"
	"errors"
	"sync"

	classroomserrors "examdesk/internal/classrooms/errors"
	"examdesk/internal/classrooms/repository"
	"examdesk/internal/classrooms/validator"
	"examdesk/pkg/config"
	apperrors "examdesk/pkg/errors"
	"examdesk/pkg/model"
	"examdesk/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type ClassroomService interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, int64, error)
	Update(ctx context.Context, id string, updates *model.ClassroomUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type classroomService struct {
	repo      repository.ClassroomRepository
	validator *validator.ClassroomValidator
	cfg       *config.Config
}

func NewClassroomService(
	repo repository.ClassroomRepository,
	validator *validator.ClassroomValidator,
	cfg *config.Config,
) ClassroomService {
	return &classroomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *classroomService) Create(ctx context.Context, classroom *model.Classroom) error {
	s.sanitize(classroom)
	s.applyDefaults(classroom)
	if err := s.validator.Validate(classroom); err != nil {
		s.cfg.Log.Warn("Classroom validation failed", "error", err)
		return apperrors.Validation("Classroom validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, classroom); err != nil {
		// Room names carry a unique index per building
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("A classroom with this name already exists in this building")
		}
		s.cfg.Log.Error("Failed to create classroom", "error", err)
		return apperrors.Internal("Failed to create classroom", err)
	}

	s.cfg.Log.Info("Classroom created successfully", "id", classroom.ID, "name", classroom.Name)
	return nil
}

func (s *classroomService) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Classroom ID cannot be empty")
	}

	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, classroomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Classroom", id)
		}
		if errors.Is(err, classroomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid classroom ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve classroom", err)
	}

	return classroom, nil
}

func (s *classroomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, int64, error) {
	var count int64
	var classrooms []*model.Classroom
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count classrooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count classrooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		classrooms, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list classrooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve classrooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return classrooms, count, nil
}

func (s *classroomService) Update(ctx context.Context, id string, updates *model.ClassroomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Classroom ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Classroom update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeClassroomUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Classroom validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update classroom", "id", id, "error", err)
		return apperrors.Internal("Failed to update classroom", err)
	}

	s.cfg.Log.Info("Classroom updated successfully", "id", id)
	return nil
}

func (s *classroomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Classroom ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, classroomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Classroom", id)
		}
		if errors.Is(err, classroomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid classroom ID format")
		}
		return apperrors.Internal("Failed to delete classroom", err)
	}

	s.cfg.Log.Info("Classroom deleted successfully", "id", id)
	return nil
}

func (s *classroomService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.Internal("Failed to count classrooms", err)
	}
	return count, nil
}

func (s *classroomService) sanitize(c *model.Classroom) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Building = sanitizer.NormalizeName(c.Building)
}

func (s *classroomService) applyDefaults(c *model.Classroom) {
	if c.Status == "" {
		c.Status = model.ClassroomAvailable
	}
}

func (s *classroomService) mergeClassroomUpdates(existing *model.Classroom, updates *model.ClassroomUpdate) *model.Classroom {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Building != "" {
		merged.Building = updates.Building
	}
	if updates.Floor != nil {
		merged.Floor = *updates.Floor
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.HasComputers != nil {
		merged.HasComputers = *updates.HasComputers
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}
