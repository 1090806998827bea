package main

import (
	"os"

	"examdesk/internal/exams/events"
	"examdesk/internal/exams/handler"
	"examdesk/internal/exams/repository"
	"examdesk/internal/exams/service"
	"examdesk/internal/exams/validator"
	"examdesk/pkg/app"
	"examdesk/pkg/config"
	"examdesk/pkg/kafka"
	kafka_config "examdesk/pkg/kafka/config"
	kafka_middleware "examdesk/pkg/kafka/middleware"
)

const ServiceName = "exams"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Exams service")

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	examService := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewExamHandler(examService, cfg.Log))
	serverApp.Run()
}

// initProducer builds the Kafka producer when brokers are configured.
// Without KAFKA_BROKERS the service runs with event publishing disabled.
func initProducer(cfg *config.Config) *kafka.Producer {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("KAFKA_BROKERS not set, event publishing disabled")
		return nil
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, events.TopicExamEvents, events.TopicExamDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
	}

	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.ExamService {
	examValidator := validator.NewExamValidator(cfg.Log)
	examRepo := repository.NewMongoExamRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)

	var publisher *events.Publisher
	if producer != nil {
		publisher = events.NewPublisher(producer, cfg.Log)
	}

	examService := service.NewExamService(
		examRepo,
		lockRepo,
		examValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Exam service initialized", "database", cfg.MongoDatabaseName)
	return examService
}
