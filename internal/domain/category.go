package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty is the fixed three-level rating for an exercise.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyChallenging Difficulty = "challenging"
)

// IsValid reports whether d is one of the three known levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyChallenging:
		return true
	}
	return false
}

// Exercise is a single movement prescription inside a category.
// Exercises have no identity outside their owning category; they are
// embedded in the category document.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Sets        int                `bson:"sets" json:"sets"`                               // 1-10
	Repetitions string             `bson:"repetitions" json:"repetitions"`                 // free-form, e.g. "8-12"
	Difficulty  Difficulty         `bson:"difficulty" json:"difficulty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"` // unique within the category, defines display sequence
	VideoKey    string             `bson:"videoKey,omitempty" json:"-"`                    // S3 object key of the demo video, internal use
}

// WorkoutCategory groups exercises under a training focus area.
// The exercises slice is kept sorted by Order; the two must agree.
type WorkoutCategory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	FocusArea    string             `bson:"focusArea" json:"focusArea"`
	KeyObjective string             `bson:"keyObjective" json:"keyObjective"`
	Exercises    []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseByID returns the embedded exercise with the given id, or nil.
func (c *WorkoutCategory) ExerciseByID(id primitive.ObjectID) *Exercise {
	for i := range c.Exercises {
		if c.Exercises[i].ID == id {
			return &c.Exercises[i]
		}
	}
	return nil
}
