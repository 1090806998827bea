package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	classroomserrors "examdesk/internal/classrooms/errors"
	"examdesk/pkg/config"
	"examdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Classrooms"
)

type mongoClassroomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	FindByID(ctx context.Context, id string) (*model.Classroom, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, error)
	Update(ctx context.Context, id string, classroom *model.Classroom) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoClassroomRepository(cfg *config.Config) ClassroomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClassroomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoClassroomRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoClassroomRepository) Create(ctx context.Context, classroom *model.Classroom) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	classroom.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, classroom)
	if err != nil {
		return fmt.Errorf("failed to create classroom: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		classroom.ID = oid.Hex()
	}
	return nil
}

func (r *mongoClassroomRepository) FindByID(ctx context.Context, id string) (*model.Classroom, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", classroomserrors.ErrInvalidID, id)
	}

	var classroom model.Classroom
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&classroom)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, classroomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find classroom: %w", err)
	}

	return &classroom, nil
}

func (r *mongoClassroomRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "building", Value: 1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find classrooms: %w", err)
	}
	defer cursor.Close(ctx)

	var classrooms []*model.Classroom
	if err = cursor.All(ctx, &classrooms); err != nil {
		return nil, fmt.Errorf("failed to decode classrooms: %w", err)
	}

	return classrooms, nil
}

func (r *mongoClassroomRepository) Update(ctx context.Context, id string, classroom *model.Classroom) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", classroomserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":          classroom.Name,
			"building":      classroom.Building,
			"floor":         classroom.Floor,
			"capacity":      classroom.Capacity,
			"has_computers": classroom.HasComputers,
			"status":        classroom.Status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update classroom: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, classroomserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoClassroomRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", classroomserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}

	if result.DeletedCount == 0 {
		return classroomserrors.ErrNotFound
	}

	return nil
}

func (r *mongoClassroomRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count classrooms: %w", err)
	}

	return count, nil
}
