package service

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/repository"
	"volleytrack/training-app/internal/validation"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound        = errors.New("workout plan not found")
	ErrPlanAccessDenied    = errors.New("access denied to this workout plan")
	ErrPlanCategoryInvalid = errors.New("plan references an unknown category")
	ErrUnknownExercise     = errors.New("plan selects an exercise the category does not contain")
)

// PlanService owns workout plans: creation (with referential checks against
// the category library), listing, and deletion. The wizard's three steps are
// validated shape-only by the validation package; the referential checks run
// once here, at final creation.
type PlanService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, req *validation.CreateWorkoutPlanRequest) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID, q *validation.ListWorkoutPlansQuery) ([]domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.WorkoutPlanRepository
	categoryRepo repository.CategoryRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.WorkoutPlanRepository, categoryRepo repository.CategoryRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		categoryRepo: categoryRepo,
	}
}

// CreatePlan persists a plan from a validated request. Beyond the shape
// checks already done, it verifies the category exists and every selected
// exercise id belongs to it. Selected days are normalized to a sorted set.
func (s *planService) CreatePlan(ctx context.Context, userID primitive.ObjectID, req *validation.CreateWorkoutPlanRequest) (*domain.WorkoutPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a plan")
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, ErrPlanCategoryInvalid
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanCategoryInvalid
		}
		return nil, err
	}

	exerciseIDs, err := resolveExerciseIDs(category, req.SelectedExerciseIDs)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		UserID:              userID,
		CategoryID:          categoryID,
		StartDate:           req.StartDate,
		NumberOfWeeks:       req.NumberOfWeeks,
		SelectedDays:        normalizeDays(req.SelectedDays),
		SelectedExerciseIDs: exerciseIDs,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// GetPlan retrieves a single plan, enforcing ownership.
func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// ListPlans retrieves a page of the user's plans, optionally filtered by
// category.
func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID, q *validation.ListWorkoutPlansQuery) ([]domain.WorkoutPlan, error) {
	var categoryFilter *primitive.ObjectID
	if q.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(q.CategoryID)
		if err != nil {
			return nil, ErrPlanCategoryInvalid
		}
		categoryFilter = &categoryID
	}
	return s.planRepo.GetByUserID(ctx, userID, categoryFilter, q.Limit, q.Offset)
}

// DeletePlan removes one of the user's own plans. The repository's combined
// filter makes someone else's plan read as not found.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// resolveExerciseIDs parses the selected ids and checks each one against the
// category's embedded exercises. Duplicates collapse silently.
func resolveExerciseIDs(category *domain.WorkoutCategory, raw []string) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool, len(raw))
	resolved := make([]primitive.ObjectID, 0, len(raw))
	for _, idStr := range raw {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return nil, ErrUnknownExercise
		}
		if category.ExerciseByID(id) == nil {
			return nil, ErrUnknownExercise
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		resolved = append(resolved, id)
	}
	return resolved, nil
}

// normalizeDays collapses the selected weekdays into a sorted set.
func normalizeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
