package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	examerrors "examdesk/internal/exams/errors"
	"examdesk/pkg/config"
	mongotx "examdesk/pkg/db/mongo"
	"examdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Exams"
)

type mongoExamRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	FindByID(ctx context.Context, id string) (*model.Exam, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Exam, error)
	FindByDate(ctx context.Context, examDate string) ([]*model.Exam, error)
	Update(ctx context.Context, id string, exam *model.Exam) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context, fromDate, toDate string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoExamRepository(cfg *config.Config) ExamRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoExamRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoExamRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	exam.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, exam)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		exam.ID = oid.Hex()
	}
	return nil
}

func (r *mongoExamRepository) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", examerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var exam model.Exam
	err = r.collection.FindOne(ctx, filter).Decode(&exam)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, examerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exam: %w", err)
	}

	return &exam, nil
}

func (r *mongoExamRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Exam, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "exam_date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find exams: %w", err)
	}
	defer cursor.Close(ctx)

	var exams []*model.Exam
	if err = cursor.All(ctx, &exams); err != nil {
		return nil, fmt.Errorf("failed to decode exams: %w", err)
	}

	return exams, nil
}

// FindByDate returns every exam booked on a calendar day, sorted by
// start time then ID so conflict checks scan in a stable order.
func (r *mongoExamRepository) FindByDate(ctx context.Context, examDate string) ([]*model.Exam, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"exam_date": examDate}
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find exams by date: %w", err)
	}
	defer cursor.Close(ctx)

	var exams []*model.Exam
	if err = cursor.All(ctx, &exams); err != nil {
		return nil, fmt.Errorf("failed to decode exams: %w", err)
	}

	return exams, nil
}

func (r *mongoExamRepository) Update(ctx context.Context, id string, exam *model.Exam) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", examerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":             exam.Name,
			"course_code":      exam.CourseCode,
			"exam_date":        exam.ExamDate,
			"start_time":       exam.StartTime,
			"duration_minutes": exam.DurationMinutes,
			"student_count":    exam.StudentCount,
			"need_computer":    exam.NeedComputer,
			"classroom_id":     exam.ClassroomID,
			"examiner_id":      exam.ExaminerID,
			"invigilator_id":   exam.InvigilatorID,
			"status":           exam.Status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, examerrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoExamRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", examerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	if result.DeletedCount == 0 {
		return examerrors.ErrNotFound
	}

	return nil
}

func (r *mongoExamRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count exams: %w", err)
	}

	return count, nil
}

// CountUpcoming counts non-cancelled exams in [fromDate, toDate].
// Date strings sort lexicographically, so range queries work directly.
func (r *mongoExamRepository) CountUpcoming(ctx context.Context, fromDate, toDate string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"exam_date": bson.M{"$gte": fromDate, "$lte": toDate},
		"status":    bson.M{"$ne": model.ExamCancelled},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming exams: %w", err)
	}

	return count, nil
}

func (r *mongoExamRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
