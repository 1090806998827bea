package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	teacherserrors "examdesk/internal/teachers/errors"
	"examdesk/pkg/config"
	"examdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Teachers"
)

type mongoTeacherRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	FindByID(ctx context.Context, id string) (*model.Teacher, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Teacher, error)
	Update(ctx context.Context, id string, teacher *model.Teacher) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoTeacherRepository(cfg *config.Config) TeacherRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTeacherRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTeacherRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoTeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	teacher.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, teacher)
	if err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		teacher.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTeacherRepository) FindByID(ctx context.Context, id string) (*model.Teacher, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", teacherserrors.ErrInvalidID, id)
	}

	var teacher model.Teacher
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, teacherserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find teacher: %w", err)
	}

	return &teacher, nil
}

func (r *mongoTeacherRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Teacher, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find teachers: %w", err)
	}
	defer cursor.Close(ctx)

	var teachers []*model.Teacher
	if err = cursor.All(ctx, &teachers); err != nil {
		return nil, fmt.Errorf("failed to decode teachers: %w", err)
	}

	return teachers, nil
}

func (r *mongoTeacherRepository) Update(ctx context.Context, id string, teacher *model.Teacher) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", teacherserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":       teacher.Name,
			"department": teacher.Department,
			"email":      teacher.Email,
			"phone":      teacher.Phone,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update teacher: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, teacherserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoTeacherRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", teacherserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	if result.DeletedCount == 0 {
		return teacherserrors.ErrNotFound
	}

	return nil
}

func (r *mongoTeacherRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	return count, nil
}
