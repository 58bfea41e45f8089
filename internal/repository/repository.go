package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"volleytrack/training-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// CategoryRepository defines the interface for interacting with workout
// categories and their embedded exercises.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.WorkoutCategory) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCategory, error)
	List(ctx context.Context, query string, limit, offset int) ([]domain.WorkoutCategory, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Embedded exercise operations. Exercises have no identity outside
	// their category, so every operation is scoped by the category id.
	AddExercise(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error
	UpdateExercise(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error
	RemoveExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID) error
	ReplaceExercises(ctx context.Context, categoryID primitive.ObjectID, exercises []domain.Exercise) error
}

// WorkoutPlanRepository defines the interface for interacting with workout
// plan data.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, categoryID *primitive.ObjectID, limit, offset int) ([]domain.WorkoutPlan, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // delete only if owned by userID
}
