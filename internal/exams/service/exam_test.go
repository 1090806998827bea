package service

import (
	"context"
	"errors"
	"testing"
	"time"

	examerrors "examdesk/internal/exams/errors"
	"examdesk/internal/exams/events"
	"examdesk/internal/exams/validator"
	"examdesk/pkg/config"
	apperrors "examdesk/pkg/errors"
	"examdesk/pkg/logger"
	"examdesk/pkg/model"

	mongotx "examdesk/pkg/db/mongo"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repositories for testing

type mockExamRepository struct {
	createFunc        func(ctx context.Context, exam *model.Exam) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Exam, error)
	findAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Exam, error)
	findByDateFunc    func(ctx context.Context, examDate string) ([]*model.Exam, error)
	updateFunc        func(ctx context.Context, id string, exam *model.Exam) (*mongo.UpdateResult, error)
	deleteFunc        func(ctx context.Context, id string) error
	countFunc         func(ctx context.Context) (int64, error)
	countUpcomingFunc func(ctx context.Context, fromDate, toDate string) (int64, error)
}

func (m *mockExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, exam)
	}
	exam.ID = "665f1e8a2c4b9a0012345678"
	return nil
}

func (m *mockExamRepository) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, examerrors.ErrNotFound
}

func (m *mockExamRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Exam, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Exam{}, nil
}

func (m *mockExamRepository) FindByDate(ctx context.Context, examDate string) ([]*model.Exam, error) {
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, examDate)
	}
	return []*model.Exam{}, nil
}

func (m *mockExamRepository) Update(ctx context.Context, id string, exam *model.Exam) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, exam)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockExamRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockExamRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockExamRepository) CountUpcoming(ctx context.Context, fromDate, toDate string) (int64, error) {
	if m.countUpcomingFunc != nil {
		return m.countUpcomingFunc(ctx, fromDate, toDate)
	}
	return 0, nil
}

func (m *mockExamRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
	created    []string
	deleted    []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	m.created = append(m.created, lock.ID)
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

func newTestService(repo *mockExamRepository, locks *mockSlotLockRepository) ExamService {
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "test",
	})

	cfg := &config.Config{
		Log:                    log,
		ReadTimeout:            5 * time.Second,
		WriteTimeout:           5 * time.Second,
		SlotLockTTL:            10 * time.Second,
		DefaultExamDurationMin: 90,
		UpcomingWindowDays:     7,
	}

	return NewExamService(repo, locks, validator.NewExamValidator(log), events.NewPublisher(nil, log), cfg)
}

func newExam(start string, duration int, classroom, examiner, invigilator string) *model.Exam {
	return &model.Exam{
		Name:            "Linear Algebra Final",
		CourseCode:      "MATH202",
		ExamDate:        "2026-06-01",
		StartTime:       start,
		DurationMinutes: duration,
		StudentCount:    40,
		ClassroomID:     classroom,
		ExaminerID:      examiner,
		InvigilatorID:   invigilator,
		Status:          model.ExamScheduled,
	}
}

const (
	roomA    = "665f1e8a2c4b9a0012345601"
	roomB    = "665f1e8a2c4b9a0012345602"
	teacherA = "665f1e8a2c4b9a0012345611"
	teacherB = "665f1e8a2c4b9a0012345612"
	teacherC = "665f1e8a2c4b9a0012345613"
	teacherD = "665f1e8a2c4b9a0012345614"
)

func TestCreate_NoConflict(t *testing.T) {
	repo := &mockExamRepository{
		findByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			existing := newExam("09:00", 60, roomA, teacherA, teacherB)
			existing.ID = "665f1e8a2c4b9a0012345699"
			return []*model.Exam{existing}, nil
		},
	}
	locks := &mockSlotLockRepository{}
	svc := newTestService(repo, locks)

	// Same room, but back to back with the existing exam
	exam := newExam("10:00", 60, roomA, teacherC, teacherD)
	if err := svc.Create(context.Background(), exam); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if exam.ID == "" {
		t.Error("Create() did not assign an ID")
	}

	if len(locks.created) != 1 || locks.created[0] != "exam_date_2026-06-01" {
		t.Errorf("expected one date lock exam_date_2026-06-01, got %v", locks.created)
	}
	if len(locks.deleted) != 1 {
		t.Errorf("expected lock to be released, deleted=%v", locks.deleted)
	}
}

func TestCreate_ClassroomConflict(t *testing.T) {
	repo := &mockExamRepository{
		findByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			existing := newExam("09:00", 120, roomA, teacherA, teacherB)
			existing.ID = "665f1e8a2c4b9a0012345699"
			return []*model.Exam{existing}, nil
		},
	}
	locks := &mockSlotLockRepository{}
	svc := newTestService(repo, locks)

	exam := newExam("10:00", 60, roomA, teacherC, teacherD)
	err := svc.Create(context.Background(), exam)
	if err == nil {
		t.Fatal("Create() expected conflict error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("Create() error code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
	if appErr.Details["conflicting_exam_id"] != "665f1e8a2c4b9a0012345699" {
		t.Errorf("conflict details = %v, want witness 665f1e8a2c4b9a0012345699", appErr.Details)
	}
	if appErr.Details["resource_kind"] != "classroom" {
		t.Errorf("conflict resource_kind = %v, want classroom", appErr.Details["resource_kind"])
	}

	// Lock must be released even on conflict
	if len(locks.deleted) != 1 {
		t.Errorf("expected lock release on conflict, deleted=%v", locks.deleted)
	}
}

func TestCreate_TeacherConflictAcrossRoles(t *testing.T) {
	repo := &mockExamRepository{
		findByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			existing := newExam("09:00", 120, roomB, teacherC, teacherA)
			existing.ID = "665f1e8a2c4b9a0012345699"
			return []*model.Exam{existing}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	// teacherA examines here but invigilates the existing exam
	exam := newExam("10:00", 60, roomA, teacherA, teacherD)
	err := svc.Create(context.Background(), exam)
	if err == nil {
		t.Fatal("Create() expected teacher conflict, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details["resource_kind"] != "teacher" {
		t.Errorf("conflict resource_kind = %v, want teacher", appErr.Details["resource_kind"])
	}
	if appErr.Details["resource_id"] != teacherA {
		t.Errorf("conflict resource_id = %v, want %s", appErr.Details["resource_id"], teacherA)
	}
}

func TestCreate_CancelledExamsIgnored(t *testing.T) {
	repo := &mockExamRepository{
		findByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			existing := newExam("09:00", 120, roomA, teacherA, teacherB)
			existing.ID = "665f1e8a2c4b9a0012345699"
			existing.Status = model.ExamCancelled
			return []*model.Exam{existing}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	exam := newExam("09:00", 120, roomA, teacherA, teacherB)
	if err := svc.Create(context.Background(), exam); err != nil {
		t.Fatalf("Create() should ignore cancelled exams, got error: %v", err)
	}
}

func TestCreate_DateLockHeld(t *testing.T) {
	repo := &mockExamRepository{}
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestService(repo, locks)

	exam := newExam("09:00", 60, roomA, teacherA, teacherB)
	err := svc.Create(context.Background(), exam)
	if err == nil {
		t.Fatal("Create() expected conflict while lock is held, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("Create() error code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newTestService(&mockExamRepository{}, &mockSlotLockRepository{})

	exam := newExam("23:30", 120, roomA, teacherA, teacherB) // crosses midnight
	err := svc.Create(context.Background(), exam)
	if err == nil {
		t.Fatal("Create() expected validation error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("Create() error code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := &mockExamRepository{}
	svc := newTestService(repo, &mockSlotLockRepository{})

	exam := newExam("09:00", 0, roomA, teacherA, teacherB)
	exam.Status = ""
	if err := svc.Create(context.Background(), exam); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if exam.Status != model.ExamPending {
		t.Errorf("default status = %s, want %s", exam.Status, model.ExamPending)
	}
	if exam.DurationMinutes != 90 {
		t.Errorf("default duration = %d, want 90", exam.DurationMinutes)
	}
}

func TestCreate_StorageError(t *testing.T) {
	repo := &mockExamRepository{
		createFunc: func(ctx context.Context, exam *model.Exam) error {
			return errors.New("write failed")
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	exam := newExam("09:00", 60, roomA, teacherA, teacherB)
	err := svc.Create(context.Background(), exam)
	if err == nil {
		t.Fatal("Create() expected storage error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("Create() error code = %s, want %s", appErr.Code, apperrors.CodeInternal)
	}
}

func TestUpdate_SelfExcludedFromConflictCheck(t *testing.T) {
	stored := newExam("09:00", 120, roomA, teacherA, teacherB)
	stored.ID = "665f1e8a2c4b9a0012345699"
	stored.Status = model.ExamScheduled

	repo := &mockExamRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Exam, error) {
			return stored, nil
		},
		findByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			return []*model.Exam{stored}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	newCount := 50
	err := svc.Update(context.Background(), stored.ID, &model.ExamUpdate{StudentCount: &newCount})
	if err != nil {
		t.Fatalf("Update() against own slot should not conflict, got: %v", err)
	}
}

func TestUpdate_RejectedWhenTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{name: "completed exam", status: model.ExamCompleted},
		{name: "cancelled exam", status: model.ExamCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := newExam("09:00", 120, roomA, teacherA, teacherB)
			stored.ID = "665f1e8a2c4b9a0012345699"
			stored.Status = tt.status

			repo := &mockExamRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Exam, error) {
					return stored, nil
				},
			}
			svc := newTestService(repo, &mockSlotLockRepository{})

			newName := "Rescheduled Final"
			err := svc.Update(context.Background(), stored.ID, &model.ExamUpdate{Name: newName})
			if err == nil {
				t.Fatal("Update() expected conflict for terminal exam, got nil")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
				t.Errorf("Update() error code = %s, want %s", appErr.Code, apperrors.CodeConflict)
			}
		})
	}
}

func TestUpdate_MoveIntoOccupiedSlot(t *testing.T) {
	stored := newExam("09:00", 60, roomA, teacherA, teacherB)
	stored.ID = "665f1e8a2c4b9a0012345699"

	other := newExam("14:00", 60, roomA, teacherC, teacherD)
	other.ID = "665f1e8a2c4b9a0012345698"

	repo := &mockExamRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Exam, error) {
			return stored, nil
		},
		findByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			return []*model.Exam{stored, other}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	err := svc.Update(context.Background(), stored.ID, &model.ExamUpdate{StartTime: "14:30"})
	if err == nil {
		t.Fatal("Update() expected conflict when moving into occupied slot, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Details["conflicting_exam_id"] != other.ID {
		t.Errorf("conflict witness = %v, want %s", appErr.Details["conflicting_exam_id"], other.ID)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&mockExamRepository{}, &mockSlotLockRepository{})

	err := svc.Update(context.Background(), "665f1e8a2c4b9a0012345699", &model.ExamUpdate{StartTime: "10:00"})
	if err == nil {
		t.Fatal("Update() expected not found error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("Update() error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestDelete_RejectedWhenTerminal(t *testing.T) {
	stored := newExam("09:00", 60, roomA, teacherA, teacherB)
	stored.ID = "665f1e8a2c4b9a0012345699"
	stored.Status = model.ExamCompleted

	repo := &mockExamRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Exam, error) {
			return stored, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	err := svc.Delete(context.Background(), stored.ID)
	if err == nil {
		t.Fatal("Delete() expected conflict for completed exam, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("Delete() error code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestDelete_Editable(t *testing.T) {
	stored := newExam("09:00", 60, roomA, teacherA, teacherB)
	stored.ID = "665f1e8a2c4b9a0012345699"

	var deletedID string
	repo := &mockExamRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Exam, error) {
			return stored, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	if err := svc.Delete(context.Background(), stored.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if deletedID != stored.ID {
		t.Errorf("Delete() removed %s, want %s", deletedID, stored.ID)
	}
}

func TestGetByDate_InvalidFormat(t *testing.T) {
	svc := newTestService(&mockExamRepository{}, &mockSlotLockRepository{})

	_, err := svc.GetByDate(context.Background(), "06/01/2026")
	if err == nil {
		t.Fatal("GetByDate() expected invalid input error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("GetByDate() error code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}

func TestStats(t *testing.T) {
	repo := &mockExamRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			return 42, nil
		},
		countUpcomingFunc: func(ctx context.Context, fromDate, toDate string) (int64, error) {
			return 7, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}
	if stats.ExamCount != 42 || stats.UpcomingExams != 7 {
		t.Errorf("Stats() = %+v, want {42 7}", stats)
	}
}
