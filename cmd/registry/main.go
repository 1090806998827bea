package main

import (
	classroomhandler "examdesk/internal/classrooms/handler"
	classroomrepository "examdesk/internal/classrooms/repository"
	classroomservice "examdesk/internal/classrooms/service"
	classroomvalidator "examdesk/internal/classrooms/validator"
	dashboardhandler "examdesk/internal/dashboard/handler"
	dashboardservice "examdesk/internal/dashboard/service"
	teacherhandler "examdesk/internal/teachers/handler"
	teacherrepository "examdesk/internal/teachers/repository"
	teacherservice "examdesk/internal/teachers/service"
	teachervalidator "examdesk/internal/teachers/validator"
	"examdesk/pkg/app"
	"examdesk/pkg/client"
	"examdesk/pkg/config"
	"examdesk/pkg/contracts"
)

const ServiceName = "registry"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Registry service")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg))
	serverApp.Run()
}

func initHandlers(cfg *config.Config) contracts.Handler {
	teacherSvc := teacherservice.NewTeacherService(
		teacherrepository.NewMongoTeacherRepository(cfg),
		teachervalidator.NewTeacherValidator(cfg.Log),
		cfg,
	)

	classroomSvc := classroomservice.NewClassroomService(
		classroomrepository.NewMongoClassroomRepository(cfg),
		classroomvalidator.NewClassroomValidator(cfg.Log),
		cfg,
	)

	dashboardSvc := dashboardservice.NewDashboardService(
		teacherSvc,
		classroomSvc,
		client.NewExamsClient(cfg.ExamsServiceURL),
		cfg,
	)

	cfg.Log.Info("Registry services initialized",
		"database", cfg.MongoDatabaseName,
		"exams_service_url", cfg.ExamsServiceURL,
	)

	return contracts.Compose(
		teacherhandler.NewTeacherHandler(teacherSvc, cfg.Log),
		classroomhandler.NewClassroomHandler(classroomSvc, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardSvc, cfg.Log),
	)
}
