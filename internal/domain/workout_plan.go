package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is a player's commitment to a category's exercises over a
// number of weeks. It references the category and user by id only; deleting
// a category does not cascade to plans.
type WorkoutPlan struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID   `bson:"userId" json:"userId"`
	CategoryID          primitive.ObjectID   `bson:"categoryId" json:"categoryId"`
	StartDate           string               `bson:"startDate" json:"startDate"` // calendar date, YYYY-MM-DD
	NumberOfWeeks       int                  `bson:"numberOfWeeks" json:"numberOfWeeks"` // 1-12
	SelectedDays        []int                `bson:"selectedDays" json:"selectedDays"`   // weekday indices 0 (Sunday) - 6 (Saturday)
	SelectedExerciseIDs []primitive.ObjectID `bson:"selectedExerciseIds" json:"selectedExerciseIds"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
}
