package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	examerrors "examdesk/internal/exams/errors"
	"examdesk/internal/exams/events"
	"examdesk/internal/exams/repository"
	"examdesk/internal/exams/schedule"
	"examdesk/internal/exams/validator"
	"examdesk/pkg/config"
	apperrors "examdesk/pkg/errors"
	"examdesk/pkg/model"
	"examdesk/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type ExamService interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Exam, int64, error)
	GetByDate(ctx context.Context, examDate string) ([]*model.Exam, error)
	Update(ctx context.Context, id string, updates *model.ExamUpdate) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.ExamStats, error)
}

type examService struct {
	repo      repository.ExamRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.ExamValidator
	publisher *events.Publisher
	cfg       *config.Config
}

func NewExamService(
	repo repository.ExamRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.ExamValidator,
	publisher *events.Publisher,
	cfg *config.Config,
) ExamService {
	return &examService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *examService) Create(ctx context.Context, exam *model.Exam) error {
	s.applyDefaults(exam)
	s.sanitize(exam)
	if err := s.validate(exam); err != nil {
		return err
	}

	// Advisory lock serializes the check-then-commit window per date
	lockID, err := s.acquireDateLock(ctx, exam.ExamDate)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseDateLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release date lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyBookable(sessCtx, exam); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, exam); err != nil {
			return apperrors.Internal("Failed to create exam", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create exam", "error", err)
		return err
	}

	s.publisher.Publish(ctx, events.ExamCreated, exam)

	s.cfg.Log.Info("Exam created successfully",
		"id", exam.ID,
		"exam_date", exam.ExamDate,
		"start_time", exam.StartTime,
		"classroom_id", exam.ClassroomID,
	)
	return nil
}

func (s *examService) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Exam ID cannot be empty")
	}

	exam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, examerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Exam", id)
		}
		if errors.Is(err, examerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid exam ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve exam", err)
	}

	return exam, nil
}

func (s *examService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Exam, int64, error) {
	var count int64
	var exams []*model.Exam
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count exams", "error", errCount)
			errCount = apperrors.Internal("Failed to count exams", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		exams, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list exams", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve exams", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return exams, count, nil
}

func (s *examService) GetByDate(ctx context.Context, examDate string) ([]*model.Exam, error) {
	if _, err := time.Parse("2006-01-02", examDate); err != nil {
		return nil, apperrors.InvalidInput("exam_date must be in YYYY-MM-DD format")
	}

	exams, err := s.repo.FindByDate(ctx, examDate)
	if err != nil {
		s.cfg.Log.Error("Failed to search exams by date", "exam_date", examDate, "error", err)
		return nil, apperrors.Internal("Failed to search exams", err)
	}

	return exams, nil
}

func (s *examService) Update(ctx context.Context, id string, updates *model.ExamUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Exam ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, examerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Exam", id)
		}
		if errors.Is(err, examerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid exam ID format")
		}
		return apperrors.Internal("Failed to check exam existence", err)
	}

	if !existing.Editable() {
		return apperrors.Conflict(fmt.Sprintf("Exam is %s and can no longer be modified", existing.Status))
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Exam update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeExamUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	lockID, err := s.acquireDateLock(ctx, merged.ExamDate)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseDateLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release date lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyBookable(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update exam", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update exam", "id", id, "error", err)
		return err
	}

	eventType := events.ExamUpdated
	if merged.Status == model.ExamCancelled {
		eventType = events.ExamCancelled
	}
	s.publisher.Publish(ctx, eventType, merged)

	s.cfg.Log.Info("Exam updated successfully", "id", id)
	return nil
}

func (s *examService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Exam ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, examerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Exam", id)
		}
		if errors.Is(err, examerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid exam ID format")
		}
		return apperrors.Internal("Failed to check exam existence", err)
	}

	if !existing.Editable() {
		return apperrors.Conflict(fmt.Sprintf("Exam is %s and can no longer be deleted", existing.Status))
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, examerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Exam", id)
			}
			return apperrors.Internal("Failed to delete exam", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.ExamDeleted, existing)

	s.cfg.Log.Info("Exam deleted successfully", "id", id)
	return nil
}

func (s *examService) Stats(ctx context.Context) (*model.ExamStats, error) {
	today := time.Now().UTC().Format("2006-01-02")
	horizon := time.Now().UTC().AddDate(0, 0, s.cfg.UpcomingWindowDays).Format("2006-01-02")

	var total, upcoming int64
	var errTotal, errUpcoming error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, errTotal = s.repo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		upcoming, errUpcoming = s.repo.CountUpcoming(ctx, today, horizon)
	}()

	wg.Wait()
	if errTotal != nil {
		s.cfg.Log.Error("Failed to count exams", "error", errTotal)
		return nil, apperrors.Internal("Failed to count exams", errTotal)
	}
	if errUpcoming != nil {
		s.cfg.Log.Error("Failed to count upcoming exams", "error", errUpcoming)
		return nil, apperrors.Internal("Failed to count upcoming exams", errUpcoming)
	}

	return &model.ExamStats{ExamCount: total, UpcomingExams: upcoming}, nil
}

// --- Helpers ---

func (s *examService) sanitize(e *model.Exam) {
	e.Name = sanitizer.NormalizeName(e.Name)
	e.CourseCode = sanitizer.NormalizeCode(e.CourseCode)
}

func (s *examService) applyDefaults(e *model.Exam) {
	if e.Status == "" {
		e.Status = model.ExamPending
	}
	if e.DurationMinutes == 0 {
		e.DurationMinutes = s.cfg.DefaultExamDurationMin
	}
}

func (s *examService) mergeExamUpdates(existing *model.Exam, updates *model.ExamUpdate) *model.Exam {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.CourseCode != "" {
		merged.CourseCode = updates.CourseCode
	}
	if updates.ExamDate != "" {
		merged.ExamDate = updates.ExamDate
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.DurationMinutes != nil {
		merged.DurationMinutes = *updates.DurationMinutes
	}
	if updates.StudentCount != nil {
		merged.StudentCount = *updates.StudentCount
	}
	if updates.NeedComputer != nil {
		merged.NeedComputer = *updates.NeedComputer
	}
	if updates.ClassroomID != "" {
		merged.ClassroomID = updates.ClassroomID
	}
	if updates.ExaminerID != "" {
		merged.ExaminerID = updates.ExaminerID
	}
	if updates.InvigilatorID != "" {
		merged.InvigilatorID = updates.InvigilatorID
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *examService) validate(exam *model.Exam) error {
	if err := s.validator.Validate(exam); err != nil {
		s.cfg.Log.Warn("Exam validation failed", "error", err)
		return apperrors.Validation("Exam validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyBookable re-reads the day's schedule inside the transaction and
// rejects the exam if any non-cancelled exam shares a resource and
// overlaps in time.
func (s *examService) verifyBookable(ctx context.Context, exam *model.Exam) error {
	others, err := s.repo.FindByDate(ctx, exam.ExamDate)
	if err != nil {
		return apperrors.Internal("Failed to check existing exams", err)
	}

	conflict, err := schedule.FindConflict(exam, others)
	if err != nil {
		return apperrors.Internal("Failed to evaluate exam schedule", err)
	}
	if conflict != nil {
		return apperrors.Conflict(conflict.Message()).WithDetails(conflict.Details())
	}
	return nil
}

// acquireDateLock creates an advisory lock covering one exam date.
// Returns the lock ID if successful, or conflict error if the lock is held.
func (s *examService) acquireDateLock(ctx context.Context, examDate string) (string, error) {
	lockID := fmt.Sprintf("exam_date_%s", examDate)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This exam date is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire date lock", err)
	}

	return lockID, nil
}

// releaseDateLock removes the advisory lock
func (s *examService) releaseDateLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
