package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/repository"
	"volleytrack/training-app/internal/service"
	"volleytrack/training-app/internal/validation"
)

// --- Mocks ---

type mockCategoryRepo struct {
	createFn           func(ctx context.Context, category *domain.WorkoutCategory) (primitive.ObjectID, error)
	getByIDFn          func(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCategory, error)
	listFn             func(ctx context.Context, query string, limit, offset int) ([]domain.WorkoutCategory, error)
	updateFieldsFn     func(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	deleteFn           func(ctx context.Context, id primitive.ObjectID) error
	addExerciseFn      func(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error
	updateExerciseFn   func(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error
	removeExerciseFn   func(ctx context.Context, categoryID, exerciseID primitive.ObjectID) error
	replaceExercisesFn func(ctx context.Context, categoryID primitive.ObjectID, exercises []domain.Exercise) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.WorkoutCategory) (primitive.ObjectID, error) {
	if m.createFn == nil {
		return primitive.NewObjectID(), nil
	}
	return m.createFn(ctx, category)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCategory, error) {
	if m.getByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockCategoryRepo) List(ctx context.Context, query string, limit, offset int) ([]domain.WorkoutCategory, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, query, limit, offset)
}

func (m *mockCategoryRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	if m.updateFieldsFn == nil {
		return nil
	}
	return m.updateFieldsFn(ctx, id, fields)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockCategoryRepo) AddExercise(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
	if m.addExerciseFn == nil {
		return nil
	}
	return m.addExerciseFn(ctx, categoryID, exercise)
}

func (m *mockCategoryRepo) UpdateExercise(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
	if m.updateExerciseFn == nil {
		return nil
	}
	return m.updateExerciseFn(ctx, categoryID, exercise)
}

func (m *mockCategoryRepo) RemoveExercise(ctx context.Context, categoryID, exerciseID primitive.ObjectID) error {
	if m.removeExerciseFn == nil {
		return nil
	}
	return m.removeExerciseFn(ctx, categoryID, exerciseID)
}

func (m *mockCategoryRepo) ReplaceExercises(ctx context.Context, categoryID primitive.ObjectID, exercises []domain.Exercise) error {
	if m.replaceExercisesFn == nil {
		return nil
	}
	return m.replaceExercisesFn(ctx, categoryID, exercises)
}

type mockFileStorage struct {
	uploadURLFn   func(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)
	downloadURLFn func(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	deleteFn      func(ctx context.Context, objectKey string) error
}

func (m *mockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	if m.uploadURLFn == nil {
		return "https://storage.example.com/upload/" + objectKey, nil
	}
	return m.uploadURLFn(ctx, objectKey, contentType, expires)
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if m.downloadURLFn == nil {
		return "https://storage.example.com/get/" + objectKey, nil
	}
	return m.downloadURLFn(ctx, objectKey, expires)
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, objectKey)
}

// --- Helpers ---

// seedCategory builds a category with n exercises already in display order.
func seedCategory(n int) *domain.WorkoutCategory {
	category := &domain.WorkoutCategory{
		ID:           primitive.NewObjectID(),
		Name:         "Serving",
		FocusArea:    "Serve accuracy",
		KeyObjective: "Consistent float serves",
	}
	for i := 0; i < n; i++ {
		category.Exercises = append(category.Exercises, domain.Exercise{
			ID:          primitive.NewObjectID(),
			Name:        "Drill",
			Sets:        3,
			Repetitions: "8-12",
			Difficulty:  domain.DifficultyMedium,
			Order:       i,
		})
	}
	return category
}

func repoReturning(category *domain.WorkoutCategory) *mockCategoryRepo {
	return &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCategory, error) {
			if id != category.ID {
				return nil, repository.ErrNotFound
			}
			return category, nil
		},
	}
}

// --- Tests ---

func TestAddExerciseAssignsNextOrder(t *testing.T) {
	category := seedCategory(2)
	repo := repoReturning(category)

	var pushed *domain.Exercise
	repo.addExerciseFn = func(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
		pushed = exercise
		return nil
	}

	svc := service.NewCategoryService(repo, &mockFileStorage{})
	req := &validation.CreateExerciseRequest{Name: "Squats", Sets: 3, Repetitions: "8-12", Difficulty: "medium"}

	exercise, err := svc.AddExercise(context.Background(), category.ID, req)
	require.NoError(t, err)
	require.NotNil(t, pushed)
	assert.Equal(t, 2, exercise.Order)
	assert.Equal(t, "Squats", pushed.Name)
	assert.Equal(t, domain.DifficultyMedium, pushed.Difficulty)
	assert.False(t, exercise.ID.IsZero())
}

func TestAddExerciseCategoryMissing(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{}, &mockFileStorage{})
	req := &validation.CreateExerciseRequest{Name: "Squats", Sets: 3, Repetitions: "8-12", Difficulty: "medium"}

	_, err := svc.AddExercise(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestUpdateExerciseUnknownID(t *testing.T) {
	category := seedCategory(1)
	svc := service.NewCategoryService(repoReturning(category), &mockFileStorage{})

	sets := 5
	_, err := svc.UpdateExercise(context.Background(), category.ID, primitive.NewObjectID(), &validation.UpdateExerciseRequest{Sets: &sets})
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

func TestDeleteExerciseCompactsOrders(t *testing.T) {
	category := seedCategory(3)
	victim := category.Exercises[1]
	repo := repoReturning(category)

	var replaced []domain.Exercise
	repo.replaceExercisesFn = func(ctx context.Context, categoryID primitive.ObjectID, exercises []domain.Exercise) error {
		replaced = exercises
		return nil
	}

	svc := service.NewCategoryService(repo, &mockFileStorage{})
	require.NoError(t, svc.DeleteExercise(context.Background(), category.ID, victim.ID))

	require.Len(t, replaced, 2)
	assert.Equal(t, category.Exercises[0].ID, replaced[0].ID)
	assert.Equal(t, category.Exercises[2].ID, replaced[1].ID)
	assert.Equal(t, 0, replaced[0].Order)
	assert.Equal(t, 1, replaced[1].Order)
}

func TestDeleteExerciseRemovesVideo(t *testing.T) {
	category := seedCategory(1)
	category.Exercises[0].VideoKey = "demo-videos/abc/def"

	var deletedKey string
	fs := &mockFileStorage{deleteFn: func(ctx context.Context, objectKey string) error {
		deletedKey = objectKey
		return nil
	}}

	svc := service.NewCategoryService(repoReturning(category), fs)
	require.NoError(t, svc.DeleteExercise(context.Background(), category.ID, category.Exercises[0].ID))
	assert.Equal(t, "demo-videos/abc/def", deletedKey)
}

func TestDeleteCategorySurvivesStorageFailure(t *testing.T) {
	category := seedCategory(1)
	category.Exercises[0].VideoKey = "demo-videos/abc/def"

	fs := &mockFileStorage{deleteFn: func(ctx context.Context, objectKey string) error {
		return errors.New("bucket unavailable")
	}}

	svc := service.NewCategoryService(repoReturning(category), fs)
	assert.NoError(t, svc.DeleteCategory(context.Background(), category.ID))
}

func TestDuplicateExerciseIntoOtherCategory(t *testing.T) {
	source := seedCategory(2)
	source.Exercises[0].VideoKey = "demo-videos/abc/def"
	target := seedCategory(3)

	repo := &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCategory, error) {
			switch id {
			case source.ID:
				return source, nil
			case target.ID:
				return target, nil
			}
			return nil, repository.ErrNotFound
		},
	}

	var pushedTo primitive.ObjectID
	var pushed *domain.Exercise
	repo.addExerciseFn = func(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
		pushedTo = categoryID
		pushed = exercise
		return nil
	}

	svc := service.NewCategoryService(repo, &mockFileStorage{})
	dup, err := svc.DuplicateExercise(context.Background(), source.ID, source.Exercises[0].ID, target.ID)
	require.NoError(t, err)

	assert.Equal(t, target.ID, pushedTo)
	assert.NotEqual(t, source.Exercises[0].ID, dup.ID)
	assert.Equal(t, 3, dup.Order) // lands at the end of the target sequence
	assert.Equal(t, source.Exercises[0].Name, dup.Name)
	assert.Empty(t, pushed.VideoKey) // the demo video is not shared
}

func TestDuplicateExerciseTargetMissing(t *testing.T) {
	source := seedCategory(1)
	svc := service.NewCategoryService(repoReturning(source), &mockFileStorage{})

	_, err := svc.DuplicateExercise(context.Background(), source.ID, source.Exercises[0].ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrTargetCategoryNotFound)
}

func TestDuplicateExerciseSourceMissing(t *testing.T) {
	source := seedCategory(1)
	svc := service.NewCategoryService(repoReturning(source), &mockFileStorage{})

	_, err := svc.DuplicateExercise(context.Background(), source.ID, primitive.NewObjectID(), source.ID)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

func TestReorderExercisesRewritesOrders(t *testing.T) {
	category := seedCategory(3)
	repo := repoReturning(category)

	var replaced []domain.Exercise
	repo.replaceExercisesFn = func(ctx context.Context, categoryID primitive.ObjectID, exercises []domain.Exercise) error {
		replaced = exercises
		return nil
	}

	svc := service.NewCategoryService(repo, &mockFileStorage{})
	submitted := []primitive.ObjectID{
		category.Exercises[2].ID,
		category.Exercises[0].ID,
		category.Exercises[1].ID,
	}

	result, err := svc.ReorderExercises(context.Background(), category.ID, submitted)
	require.NoError(t, err)
	require.Len(t, replaced, 3)
	for i, id := range submitted {
		assert.Equal(t, id, replaced[i].ID)
		assert.Equal(t, i, replaced[i].Order)
	}
	assert.Equal(t, replaced, result.Exercises)
}

func TestReorderExercisesMismatch(t *testing.T) {
	category := seedCategory(3)
	ids := func() []primitive.ObjectID {
		out := make([]primitive.ObjectID, len(category.Exercises))
		for i, ex := range category.Exercises {
			out[i] = ex.ID
		}
		return out
	}

	tests := []struct {
		name      string
		submitted []primitive.ObjectID
	}{
		{"omitted exercise", ids()[:2]},
		{"unknown id", append(ids()[:2], primitive.NewObjectID())},
		{"duplicate id", []primitive.ObjectID{ids()[0], ids()[0], ids()[1]}},
		{"empty list", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewCategoryService(repoReturning(category), &mockFileStorage{})
			_, err := svc.ReorderExercises(context.Background(), category.ID, tc.submitted)
			assert.ErrorIs(t, err, service.ErrReorderMismatch)
		})
	}
}

func TestAttachDemoVideo(t *testing.T) {
	category := seedCategory(1)
	category.Exercises[0].VideoKey = "demo-videos/old/key"
	repo := repoReturning(category)

	var stored *domain.Exercise
	repo.updateExerciseFn = func(ctx context.Context, categoryID primitive.ObjectID, exercise *domain.Exercise) error {
		stored = exercise
		return nil
	}

	var deletedKey string
	fs := &mockFileStorage{deleteFn: func(ctx context.Context, objectKey string) error {
		deletedKey = objectKey
		return nil
	}}

	svc := service.NewCategoryService(repo, fs)
	uploadURL, err := svc.AttachDemoVideo(context.Background(), category.ID, category.Exercises[0].ID, "video/mp4")
	require.NoError(t, err)

	assert.NotEmpty(t, uploadURL)
	require.NotNil(t, stored)
	assert.True(t, strings.HasPrefix(stored.VideoKey, "demo-videos/"+category.ID.Hex()+"/"))
	assert.Equal(t, "demo-videos/old/key", deletedKey)
}

func TestDemoVideoURL(t *testing.T) {
	category := seedCategory(2)
	category.Exercises[0].VideoKey = "demo-videos/abc/def"

	svc := service.NewCategoryService(repoReturning(category), &mockFileStorage{})

	url, err := svc.DemoVideoURL(context.Background(), category.ID, category.Exercises[0].ID)
	require.NoError(t, err)
	assert.Contains(t, url, "demo-videos/abc/def")

	_, err = svc.DemoVideoURL(context.Background(), category.ID, category.Exercises[1].ID)
	assert.ErrorIs(t, err, service.ErrNoDemoVideo)
}
