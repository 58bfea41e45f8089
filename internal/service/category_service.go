package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/repository"
	"volleytrack/training-app/internal/storage"
	"volleytrack/training-app/internal/validation"
)

// --- Error Definitions ---
var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrExerciseNotFound       = errors.New("exercise not found in category")
	ErrTargetCategoryNotFound = errors.New("target category not found")
	ErrReorderMismatch        = errors.New("reorder list must contain each existing exercise id exactly once")
	ErrNoDemoVideo            = errors.New("exercise has no demo video")
)

// CategoryService owns the admin side of the exercise library: categories,
// their embedded exercises, and the demo-video attachments. All request
// payloads arrive pre-validated by the validation package; this layer adds
// the referential rules that need storage access.
type CategoryService interface {
	CreateCategory(ctx context.Context, req *validation.CreateCategoryRequest) (*domain.WorkoutCategory, error)
	GetCategory(ctx context.Context, categoryID primitive.ObjectID) (*domain.WorkoutCategory, error)
	ListCategories(ctx context.Context, q *validation.ListCategoriesQuery) ([]domain.WorkoutCategory, error)
	UpdateCategory(ctx context.Context, categoryID primitive.ObjectID, req *validation.UpdateCategoryRequest) (*domain.WorkoutCategory, error)
	DeleteCategory(ctx context.Context, categoryID primitive.ObjectID) error

	AddExercise(ctx context.Context, categoryID primitive.ObjectID, req *validation.CreateExerciseRequest) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID, req *validation.UpdateExerciseRequest) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID) error
	DuplicateExercise(ctx context.Context, categoryID, exerciseID, targetCategoryID primitive.ObjectID) (*domain.Exercise, error)
	ReorderExercises(ctx context.Context, categoryID primitive.ObjectID, exerciseIDs []primitive.ObjectID) (*domain.WorkoutCategory, error)

	AttachDemoVideo(ctx context.Context, categoryID, exerciseID primitive.ObjectID, contentType string) (uploadURL string, err error)
	DemoVideoURL(ctx context.Context, categoryID, exerciseID primitive.ObjectID) (string, error)
}

// categoryService implements the CategoryService interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	fileStorage  storage.FileStorage
}

// NewCategoryService creates a new instance of categoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, fileStorage storage.FileStorage) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		fileStorage:  fileStorage,
	}
}

// CreateCategory creates an empty category from a validated request.
func (s *categoryService) CreateCategory(ctx context.Context, req *validation.CreateCategoryRequest) (*domain.WorkoutCategory, error) {
	category := &domain.WorkoutCategory{
		Name:         req.Name,
		FocusArea:    req.FocusArea,
		KeyObjective: req.KeyObjective,
		Exercises:    []domain.Exercise{},
	}

	categoryID, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	// Fetch again so CreatedAt/UpdatedAt come back populated.
	return s.categoryRepo.GetByID(ctx, categoryID)
}

// GetCategory retrieves a single category with its exercises.
func (s *categoryService) GetCategory(ctx context.Context, categoryID primitive.ObjectID) (*domain.WorkoutCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListCategories retrieves a page of categories.
func (s *categoryService) ListCategories(ctx context.Context, q *validation.ListCategoriesQuery) ([]domain.WorkoutCategory, error) {
	return s.categoryRepo.List(ctx, q.Query, q.Limit, q.Offset)
}

// UpdateCategory applies a validated partial update to the category fields.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID primitive.ObjectID, req *validation.UpdateCategoryRequest) (*domain.WorkoutCategory, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.FocusArea != nil {
		fields["focusArea"] = *req.FocusArea
	}
	if req.KeyObjective != nil {
		fields["keyObjective"] = *req.KeyObjective
	}

	if err := s.categoryRepo.UpdateFields(ctx, categoryID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, categoryID)
}

// DeleteCategory removes a category and all exercises it owns. Demo-video
// objects are cleaned up best effort.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	for _, ex := range category.Exercises {
		if ex.VideoKey != "" {
			if err := s.fileStorage.DeleteObject(ctx, ex.VideoKey); err != nil {
				log.Printf("WARN: failed to delete demo video '%s': %v", ex.VideoKey, err)
			}
		}
	}
	return nil
}

// AddExercise appends a new exercise to a category. The new exercise takes
// the next free order slot at the end of the display sequence.
func (s *categoryService) AddExercise(ctx context.Context, categoryID primitive.ObjectID, req *validation.CreateExerciseRequest) (*domain.Exercise, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Sets:        req.Sets,
		Repetitions: req.Repetitions,
		Difficulty:  domain.Difficulty(req.Difficulty),
		Description: req.Description,
		Order:       len(category.Exercises),
	}

	if err := s.categoryRepo.AddExercise(ctx, categoryID, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// UpdateExercise applies a validated partial update to one embedded
// exercise, leaving its order untouched.
func (s *categoryService) UpdateExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID, req *validation.UpdateExerciseRequest) (*domain.Exercise, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	exercise := category.ExerciseByID(exerciseID)
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	if req.Name != nil {
		exercise.Name = *req.Name
	}
	if req.Sets != nil {
		exercise.Sets = *req.Sets
	}
	if req.Repetitions != nil {
		exercise.Repetitions = *req.Repetitions
	}
	if req.Difficulty != nil {
		exercise.Difficulty = domain.Difficulty(*req.Difficulty)
	}
	if req.Description != nil {
		exercise.Description = *req.Description
	}

	if err := s.categoryRepo.UpdateExercise(ctx, categoryID, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes one exercise and compacts the order values of the
// remaining ones so the sequence stays gapless.
func (s *categoryService) DeleteExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID) error {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	exercise := category.ExerciseByID(exerciseID)
	if exercise == nil {
		return ErrExerciseNotFound
	}
	videoKey := exercise.VideoKey

	remaining := make([]domain.Exercise, 0, len(category.Exercises)-1)
	for _, ex := range category.Exercises {
		if ex.ID == exerciseID {
			continue
		}
		ex.Order = len(remaining)
		remaining = append(remaining, ex)
	}

	if err := s.categoryRepo.ReplaceExercises(ctx, categoryID, remaining); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if videoKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, videoKey); err != nil {
			log.Printf("WARN: failed to delete demo video '%s': %v", videoKey, err)
		}
	}
	return nil
}

// DuplicateExercise copies an exercise into the target category (which may
// be the source itself). The copy gets a fresh id, lands at the end of the
// target's sequence, and does not share the demo video.
func (s *categoryService) DuplicateExercise(ctx context.Context, categoryID, exerciseID, targetCategoryID primitive.ObjectID) (*domain.Exercise, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	source := category.ExerciseByID(exerciseID)
	if source == nil {
		return nil, ErrExerciseNotFound
	}

	target := category
	if targetCategoryID != categoryID {
		target, err = s.categoryRepo.GetByID(ctx, targetCategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTargetCategoryNotFound
			}
			return nil, err
		}
	}

	duplicate := &domain.Exercise{
		ID:          primitive.NewObjectID(),
		Name:        source.Name,
		Sets:        source.Sets,
		Repetitions: source.Repetitions,
		Difficulty:  source.Difficulty,
		Description: source.Description,
		Order:       len(target.Exercises),
	}

	if err := s.categoryRepo.AddExercise(ctx, targetCategoryID, duplicate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTargetCategoryNotFound
		}
		return nil, err
	}
	return duplicate, nil
}

// ReorderExercises rewrites the display sequence: position i in the
// submitted list becomes order i. The submitted ids must be exactly the
// stored exercise id set; omissions, unknown ids, and duplicates are all
// rejected as a mismatch.
func (s *categoryService) ReorderExercises(ctx context.Context, categoryID primitive.ObjectID, exerciseIDs []primitive.ObjectID) (*domain.WorkoutCategory, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if len(exerciseIDs) != len(category.Exercises) {
		return nil, ErrReorderMismatch
	}

	byID := make(map[primitive.ObjectID]domain.Exercise, len(category.Exercises))
	for _, ex := range category.Exercises {
		byID[ex.ID] = ex
	}

	reordered := make([]domain.Exercise, 0, len(exerciseIDs))
	for i, id := range exerciseIDs {
		ex, ok := byID[id]
		if !ok {
			// Unknown id, or a duplicate already consumed below.
			return nil, ErrReorderMismatch
		}
		delete(byID, id) // a repeated id now reads as unknown
		ex.Order = i
		reordered = append(reordered, ex)
	}

	if err := s.categoryRepo.ReplaceExercises(ctx, categoryID, reordered); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Exercises = reordered
	return category, nil
}

// AttachDemoVideo mints an object key for an exercise demo video, stores it
// on the exercise, and returns a presigned PUT URL for the direct upload.
// A previously attached video is deleted best effort.
func (s *categoryService) AttachDemoVideo(ctx context.Context, categoryID, exerciseID primitive.ObjectID, contentType string) (string, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return "", err
	}

	exercise := category.ExerciseByID(exerciseID)
	if exercise == nil {
		return "", ErrExerciseNotFound
	}

	oldKey := exercise.VideoKey
	objectKey := fmt.Sprintf("demo-videos/%s/%s", categoryID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	exercise.VideoKey = objectKey
	if err := s.categoryRepo.UpdateExercise(ctx, categoryID, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}

	if oldKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, oldKey); err != nil {
			log.Printf("WARN: failed to delete replaced demo video '%s': %v", oldKey, err)
		}
	}
	return uploadURL, nil
}

// DemoVideoURL returns a presigned GET URL for an exercise's demo video.
func (s *categoryService) DemoVideoURL(ctx context.Context, categoryID, exerciseID primitive.ObjectID) (string, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return "", err
	}

	exercise := category.ExerciseByID(exerciseID)
	if exercise == nil {
		return "", ErrExerciseNotFound
	}
	if exercise.VideoKey == "" {
		return "", ErrNoDemoVideo
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.VideoKey, storage.DefaultPresignedURLExpiry)
}
