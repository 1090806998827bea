package service

import (
	"context"
	"sync"

	classroomservice "examdesk/internal/classrooms/service"
	teacherservice "examdesk/internal/teachers/service"
	"examdesk/pkg/config"
	apperrors "examdesk/pkg/errors"
	"examdesk/pkg/model"
)

// examsStatsClient is the slice of the exams service client the
// dashboard needs.
type examsStatsClient interface {
	Stats(ctx context.Context) (*model.ExamStats, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	teachers   teacherservice.TeacherService
	classrooms classroomservice.ClassroomService
	exams      examsStatsClient
	cfg        *config.Config
}

func NewDashboardService(
	teachers teacherservice.TeacherService,
	classrooms classroomservice.ClassroomService,
	exams examsStatsClient,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		teachers:   teachers,
		classrooms: classrooms,
		exams:      exams,
		cfg:        cfg,
	}
}

// Stats gathers local registry counts and remote exam counts in
// parallel. A failure of the exams service fails the whole call so the
// dashboard never shows silently wrong numbers.
func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var teacherCount, classroomCount int64
	var examStats *model.ExamStats
	var errTeachers, errClassrooms, errExams error
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		teacherCount, errTeachers = s.teachers.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		classroomCount, errClassrooms = s.classrooms.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		examStats, errExams = s.exams.Stats(ctx)
	}()

	wg.Wait()

	if errTeachers != nil {
		return nil, errTeachers
	}
	if errClassrooms != nil {
		return nil, errClassrooms
	}
	if errExams != nil {
		s.cfg.Log.Error("Failed to fetch exam stats from exams service", "error", errExams)
		return nil, apperrors.Unavailable("exams service")
	}

	return &model.DashboardStats{
		TeacherCount:   teacherCount,
		ClassroomCount: classroomCount,
		ExamCount:      examStats.ExamCount,
		UpcomingExams:  examStats.UpcomingExams,
	}, nil
}
