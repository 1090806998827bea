package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"examdesk/pkg/config"
	apperrors "examdesk/pkg/errors"
	"examdesk/pkg/logger"
	"examdesk/pkg/model"
)

type mockTeacherService struct {
	countFunc func(ctx context.Context) (int64, error)
}

func (m *mockTeacherService) Create(ctx context.Context, t *model.Teacher) error { return nil }
func (m *mockTeacherService) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	return nil, nil
}
func (m *mockTeacherService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Teacher, int64, error) {
	return nil, 0, nil
}
func (m *mockTeacherService) Update(ctx context.Context, id string, u *model.TeacherUpdate) error {
	return nil
}
func (m *mockTeacherService) Delete(ctx context.Context, id string) error { return nil }
func (m *mockTeacherService) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockClassroomService struct {
	countFunc func(ctx context.Context) (int64, error)
}

func (m *mockClassroomService) Create(ctx context.Context, c *model.Classroom) error { return nil }
func (m *mockClassroomService) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	return nil, nil
}
func (m *mockClassroomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, int64, error) {
	return nil, 0, nil
}
func (m *mockClassroomService) Update(ctx context.Context, id string, u *model.ClassroomUpdate) error {
	return nil
}
func (m *mockClassroomService) Delete(ctx context.Context, id string) error { return nil }
func (m *mockClassroomService) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockExamsClient struct {
	statsFunc func(ctx context.Context) (*model.ExamStats, error)
}

func (m *mockExamsClient) Stats(ctx context.Context) (*model.ExamStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &model.ExamStats{}, nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"}),
		ReadTimeout: 5 * time.Second,
	}
}

func TestStats_Aggregates(t *testing.T) {
	svc := NewDashboardService(
		&mockTeacherService{countFunc: func(ctx context.Context) (int64, error) { return 12, nil }},
		&mockClassroomService{countFunc: func(ctx context.Context) (int64, error) { return 5, nil }},
		&mockExamsClient{statsFunc: func(ctx context.Context) (*model.ExamStats, error) {
			return &model.ExamStats{ExamCount: 42, UpcomingExams: 7}, nil
		}},
		newTestConfig(),
	)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}

	want := model.DashboardStats{TeacherCount: 12, ClassroomCount: 5, ExamCount: 42, UpcomingExams: 7}
	if *stats != want {
		t.Errorf("Stats() = %+v, want %+v", *stats, want)
	}
}

func TestStats_ExamsServiceDown(t *testing.T) {
	svc := NewDashboardService(
		&mockTeacherService{},
		&mockClassroomService{},
		&mockExamsClient{statsFunc: func(ctx context.Context) (*model.ExamStats, error) {
			return nil, errors.New("connection refused")
		}},
		newTestConfig(),
	)

	_, err := svc.Stats(context.Background())
	if err == nil {
		t.Fatal("Stats() expected error when exams service is down, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnavailable {
		t.Errorf("Stats() error code = %s, want %s", appErr.Code, apperrors.CodeUnavailable)
	}
}
