package events

import (
	"context"

	"examdesk/pkg/kafka"
	"examdesk/pkg/logger"
	"examdesk/pkg/model"
)

const (
	TopicExamEvents = "exam-events"
	TopicExamDLQ    = "exam-events-dlq"

	SchemaVersion = "1"
	SourceService = "exams"
)

// Event types carried in the event-type header
const (
	ExamCreated   = "exam.created"
	ExamUpdated   = "exam.updated"
	ExamCancelled = "exam.cancelled"
	ExamDeleted   = "exam.deleted"
)

// producer is the subset of kafka.Producer the publisher needs
type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Publisher emits exam lifecycle events. A nil Publisher is a no-op, so
// services run unchanged when Kafka is not configured.
type Publisher struct {
	producer producer
	log      *logger.Logger
}

func NewPublisher(p producer, log *logger.Logger) *Publisher {
	return &Publisher{producer: p, log: log}
}

// Publish emits an event keyed by exam date so all events for one day
// land on the same partition in order. Publish failures are logged, not
// returned: the booking already committed and must not be rolled back
// because a notification could not be sent.
func (p *Publisher) Publish(ctx context.Context, eventType string, exam *model.Exam) {
	if p == nil || p.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(exam.ExamDate).
		WithValue(exam).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(SourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish exam event",
			"event_type", eventType,
			"exam_id", exam.ID,
			"exam_date", exam.ExamDate,
			"error", err,
		)
	}
}
