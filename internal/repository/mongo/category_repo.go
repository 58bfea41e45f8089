package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/repository"
)

const categoryCollectionName = "categories"

// mongoCategoryRepository implements repository.CategoryRepository.
// Exercises live as an embedded array inside each category document, so
// exercise operations are array updates on the owning document.
type mongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new category repository backed by MongoDB.
func NewMongoCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(categoryCollectionName),
	}
}

// Create inserts a new category. The exercises array is always stored, even
// when empty, so array updates never have to special-case a missing field.
func (r *mongoCategoryRepository) Create(ctx context.Context, category *domain.WorkoutCategory) (primitive.ObjectID, error) {
	if category.Name == "" {
		return primitive.NilObjectID, errors.New("category name is required")
	}

	category.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	if category.Exercises == nil {
		category.Exercises = []domain.Exercise{}
	}

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a category by its ID.
func (r *mongoCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCategory, error) {
	var category domain.WorkoutCategory
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// List retrieves categories, optionally filtered by a free-text query over
// the text index, ordered newest first.
func (r *mongoCategoryRepository) List(ctx context.Context, query string, limit, offset int) ([]domain.WorkoutCategory, error) {
	filter := bson.M{}
	if query != "" {
		filter["$text"] = bson.M{"$search": query}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []domain.WorkoutCategory
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateFields applies a partial update to the category's own fields
// (name, focusArea, keyObjective) and bumps updatedAt.
func (r *mongoCategoryRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return repository.ErrUpdateFailed
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a category and, by composition, all of its exercises.
func (r *mongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddExercise appends an exercise to the category's embedded array.
func (r *mongoCategoryRepository) AddExercise(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
	update := bson.M{
		"$push": bson.M{"exercises": exercise},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": categoryID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateExercise rewrites one embedded exercise in place via the positional
// operator. The exercise's Order is preserved by the caller.
func (r *mongoCategoryRepository) UpdateExercise(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
	filter := bson.M{"_id": categoryID, "exercises._id": exercise.ID}
	update := bson.M{
		"$set": bson.M{
			"exercises.$": exercise,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveExercise pulls one exercise out of the embedded array.
func (r *mongoCategoryRepository) RemoveExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID) error {
	filter := bson.M{"_id": categoryID, "exercises._id": exerciseID}
	update := bson.M{
		"$pull": bson.M{"exercises": bson.M{"_id": exerciseID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceExercises swaps the whole embedded array, used by reorder where
// every element's order value changes at once.
func (r *mongoCategoryRepository) ReplaceExercises(ctx context.Context, categoryID primitive.ObjectID, exercises []domain.Exercise) error {
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	update := bson.M{
		"$set": bson.M{
			"exercises": exercises,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": categoryID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCategoryIndexes creates necessary indexes for the categories collection.
func EnsureCategoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "focusArea", Value: "text"}},
			Options: options.Index().SetName("category_text_search"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
