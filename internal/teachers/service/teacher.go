package service

import (
	"context"
	"errors"
	"sync"

	teacherserrors "examdesk/internal/teachers/errors"
	"examdesk/internal/teachers/repository"
	"examdesk/internal/teachers/validator"
	"examdesk/pkg/config"
	apperrors "examdesk/pkg/errors"
	"examdesk/pkg/model"
	"examdesk/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type TeacherService interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Teacher, int64, error)
	Update(ctx context.Context, id string, updates *model.TeacherUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type teacherService struct {
	repo      repository.TeacherRepository
	validator *validator.TeacherValidator
	cfg       *config.Config
}

func NewTeacherService(
	repo repository.TeacherRepository,
	validator *validator.TeacherValidator,
	cfg *config.Config,
) TeacherService {
	return &teacherService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *teacherService) Create(ctx context.Context, teacher *model.Teacher) error {
	s.sanitize(teacher)
	if err := s.validator.Validate(teacher); err != nil {
		s.cfg.Log.Warn("Teacher validation failed", "error", err)
		return apperrors.Validation("Teacher validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		// Employee IDs carry a unique index
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("A teacher with this employee ID already exists")
		}
		s.cfg.Log.Error("Failed to create teacher", "error", err)
		return apperrors.Internal("Failed to create teacher", err)
	}

	s.cfg.Log.Info("Teacher created successfully", "id", teacher.ID, "employee_id", teacher.EmployeeID)
	return nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Teacher ID cannot be empty")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, teacherserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Teacher", id)
		}
		if errors.Is(err, teacherserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid teacher ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve teacher", err)
	}

	return teacher, nil
}

func (s *teacherService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Teacher, int64, error) {
	var count int64
	var teachers []*model.Teacher
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count teachers", "error", errCount)
			errCount = apperrors.Internal("Failed to count teachers", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		teachers, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list teachers", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve teachers", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return teachers, count, nil
}

func (s *teacherService) Update(ctx context.Context, id string, updates *model.TeacherUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Teacher ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Teacher update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeTeacherUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Teacher validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update teacher", "id", id, "error", err)
		return apperrors.Internal("Failed to update teacher", err)
	}

	s.cfg.Log.Info("Teacher updated successfully", "id", id)
	return nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Teacher ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, teacherserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Teacher", id)
		}
		if errors.Is(err, teacherserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid teacher ID format")
		}
		return apperrors.Internal("Failed to delete teacher", err)
	}

	s.cfg.Log.Info("Teacher deleted successfully", "id", id)
	return nil
}

func (s *teacherService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.Internal("Failed to count teachers", err)
	}
	return count, nil
}

func (s *teacherService) sanitize(t *model.Teacher) {
	t.Name = sanitizer.NormalizeName(t.Name)
	t.Department = sanitizer.NormalizeName(t.Department)
	t.EmployeeID = sanitizer.TrimAndNormalize(t.EmployeeID)
	if t.Phone != "" {
		t.Phone = sanitizer.NormalizePhone(t.Phone)
	}
}

func (s *teacherService) mergeTeacherUpdates(existing *model.Teacher, updates *model.TeacherUpdate) *model.Teacher {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Department != "" {
		merged.Department = updates.Department
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}

	return &merged
}
