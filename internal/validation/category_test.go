package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volleytrack/training-app/internal/validation"
)

// hasFieldError reports whether errs contains an error whose field matches
// field exactly or starts with it (for slice elements like selectedDays[1]).
func hasFieldError(errs validation.Errors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field || strings.HasPrefix(fe.Field, field+"[") {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestValidateCreateCategory(t *testing.T) {
	tests := []struct {
		name      string
		req       validation.CreateCategoryRequest
		wantField string // empty means the request must pass
	}{
		{
			name: "valid",
			req: validation.CreateCategoryRequest{
				Name: "Serving", FocusArea: "Serve accuracy", KeyObjective: "Consistent float serves",
			},
		},
		{
			name:      "empty name",
			req:       validation.CreateCategoryRequest{Name: "", FocusArea: "x", KeyObjective: "y"},
			wantField: "name",
		},
		{
			name:      "whitespace-only name",
			req:       validation.CreateCategoryRequest{Name: "   ", FocusArea: "x", KeyObjective: "y"},
			wantField: "name",
		},
		{
			name: "name too long",
			req: validation.CreateCategoryRequest{
				Name: strings.Repeat("a", 101), FocusArea: "x", KeyObjective: "y",
			},
			wantField: "name",
		},
		{
			name: "key objective too long",
			req: validation.CreateCategoryRequest{
				Name: "Blocking", FocusArea: "Net play", KeyObjective: strings.Repeat("a", 501),
			},
			wantField: "keyObjective",
		},
		{
			name:      "missing focus area",
			req:       validation.CreateCategoryRequest{Name: "Blocking", KeyObjective: "y"},
			wantField: "focusArea",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := validation.ValidateCreateCategory(&tc.req)
			if tc.wantField == "" {
				assert.Nil(t, errs)
			} else {
				assert.True(t, hasFieldError(errs, tc.wantField), "expected error on %q, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestValidateCreateCategoryTrims(t *testing.T) {
	req := validation.CreateCategoryRequest{
		Name: "  Serving  ", FocusArea: " Serve accuracy ", KeyObjective: " Objective ",
	}
	require.Nil(t, validation.ValidateCreateCategory(&req))
	assert.Equal(t, "Serving", req.Name)
	assert.Equal(t, "Serve accuracy", req.FocusArea)
	assert.Equal(t, "Objective", req.KeyObjective)
}

func TestValidateUpdateCategory(t *testing.T) {
	t.Run("empty partial object rejected", func(t *testing.T) {
		errs := validation.ValidateUpdateCategory(&validation.UpdateCategoryRequest{})
		require.NotNil(t, errs)
		assert.True(t, hasFieldError(errs, "request"))
	})

	t.Run("single field accepted", func(t *testing.T) {
		req := validation.UpdateCategoryRequest{Name: strPtr("Defense")}
		assert.Nil(t, validation.ValidateUpdateCategory(&req))
	})

	t.Run("present empty field rejected", func(t *testing.T) {
		req := validation.UpdateCategoryRequest{Name: strPtr("  ")}
		errs := validation.ValidateUpdateCategory(&req)
		assert.True(t, hasFieldError(errs, "name"))
	})

	t.Run("present too-long field rejected", func(t *testing.T) {
		req := validation.UpdateCategoryRequest{FocusArea: strPtr(strings.Repeat("a", 101))}
		errs := validation.ValidateUpdateCategory(&req)
		assert.True(t, hasFieldError(errs, "focusArea"))
	})
}

func TestValidateCreateExercise(t *testing.T) {
	tests := []struct {
		name      string
		req       validation.CreateExerciseRequest
		wantField string
	}{
		{
			name: "valid",
			req: validation.CreateExerciseRequest{
				Name: "Squats", Sets: 3, Repetitions: "8-12", Difficulty: "medium",
			},
		},
		{
			name: "boundary sets accepted",
			req: validation.CreateExerciseRequest{
				Name: "Squats", Sets: 1, Repetitions: "8-12", Difficulty: "easy",
			},
		},
		{
			name: "upper boundary sets accepted",
			req: validation.CreateExerciseRequest{
				Name: "Squats", Sets: 10, Repetitions: "8-12", Difficulty: "challenging",
			},
		},
		{
			name:      "empty name",
			req:       validation.CreateExerciseRequest{Name: "", Sets: 3, Repetitions: "8-12", Difficulty: "medium"},
			wantField: "name",
		},
		{
			name:      "sets below range",
			req:       validation.CreateExerciseRequest{Name: "Squats", Sets: 0, Repetitions: "8-12", Difficulty: "medium"},
			wantField: "sets",
		},
		{
			name:      "sets above range",
			req:       validation.CreateExerciseRequest{Name: "Squats", Sets: 11, Repetitions: "8-12", Difficulty: "medium"},
			wantField: "sets",
		},
		{
			name:      "unknown difficulty",
			req:       validation.CreateExerciseRequest{Name: "Squats", Sets: 3, Repetitions: "8-12", Difficulty: "brutal"},
			wantField: "difficulty",
		},
		{
			name:      "repetitions missing",
			req:       validation.CreateExerciseRequest{Name: "Squats", Sets: 3, Difficulty: "medium"},
			wantField: "repetitions",
		},
		{
			name: "description too long",
			req: validation.CreateExerciseRequest{
				Name: "Squats", Sets: 3, Repetitions: "8-12", Difficulty: "medium",
				Description: strings.Repeat("a", 501),
			},
			wantField: "description",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := validation.ValidateCreateExercise(&tc.req)
			if tc.wantField == "" {
				assert.Nil(t, errs)
			} else {
				assert.True(t, hasFieldError(errs, tc.wantField), "expected error on %q, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestValidateCreateExerciseAggregatesAllViolations(t *testing.T) {
	req := validation.CreateExerciseRequest{Name: "", Sets: 0, Repetitions: "", Difficulty: "extreme"}
	errs := validation.ValidateCreateExercise(&req)
	require.NotNil(t, errs)
	assert.True(t, hasFieldError(errs, "name"))
	assert.True(t, hasFieldError(errs, "sets"))
	assert.True(t, hasFieldError(errs, "repetitions"))
	assert.True(t, hasFieldError(errs, "difficulty"))
}

func TestValidateUpdateExercise(t *testing.T) {
	t.Run("empty partial object rejected", func(t *testing.T) {
		errs := validation.ValidateUpdateExercise(&validation.UpdateExerciseRequest{})
		require.NotNil(t, errs)
		assert.True(t, hasFieldError(errs, "request"))
	})

	t.Run("single valid field accepted", func(t *testing.T) {
		req := validation.UpdateExerciseRequest{Sets: intPtr(5)}
		assert.Nil(t, validation.ValidateUpdateExercise(&req))
	})

	t.Run("sets out of range rejected", func(t *testing.T) {
		req := validation.UpdateExerciseRequest{Sets: intPtr(11)}
		assert.True(t, hasFieldError(validation.ValidateUpdateExercise(&req), "sets"))
	})

	t.Run("unknown difficulty rejected", func(t *testing.T) {
		req := validation.UpdateExerciseRequest{Difficulty: strPtr("extreme")}
		assert.True(t, hasFieldError(validation.ValidateUpdateExercise(&req), "difficulty"))
	})

	t.Run("description may be cleared", func(t *testing.T) {
		req := validation.UpdateExerciseRequest{Description: strPtr("")}
		assert.Nil(t, validation.ValidateUpdateExercise(&req))
	})
}

func TestValidateDuplicateExercise(t *testing.T) {
	errs := validation.ValidateDuplicateExercise(&validation.DuplicateExerciseRequest{})
	assert.True(t, hasFieldError(errs, "targetCategoryId"))

	req := validation.DuplicateExerciseRequest{TargetCategoryID: " 66f0a1b2c3d4e5f6a7b8c9d0 "}
	require.Nil(t, validation.ValidateDuplicateExercise(&req))
	assert.Equal(t, "66f0a1b2c3d4e5f6a7b8c9d0", req.TargetCategoryID)
}

func TestValidateReorderExercises(t *testing.T) {
	t.Run("empty list rejected", func(t *testing.T) {
		errs := validation.ValidateReorderExercises(&validation.ReorderExercisesRequest{})
		assert.True(t, hasFieldError(errs, "exerciseIds"))
	})

	t.Run("blank element rejected", func(t *testing.T) {
		req := validation.ReorderExercisesRequest{ExerciseIDs: []string{"a", "  "}}
		errs := validation.ValidateReorderExercises(&req)
		assert.True(t, hasFieldError(errs, "exerciseIds"))
	})

	t.Run("duplicates pass this layer", func(t *testing.T) {
		req := validation.ReorderExercisesRequest{ExerciseIDs: []string{"a", "a"}}
		assert.Nil(t, validation.ValidateReorderExercises(&req))
	})
}

func TestValidateListCategoriesQuery(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		q, errs := validation.ValidateListCategoriesQuery("", "", "")
		require.Nil(t, errs)
		assert.Equal(t, validation.DefaultListLimit, q.Limit)
		assert.Equal(t, 0, q.Offset)
	})

	t.Run("numeric strings coerced", func(t *testing.T) {
		q, errs := validation.ValidateListCategoriesQuery("serve", "25", "10")
		require.Nil(t, errs)
		assert.Equal(t, "serve", q.Query)
		assert.Equal(t, 25, q.Limit)
		assert.Equal(t, 10, q.Offset)
	})

	t.Run("non-numeric limit rejected", func(t *testing.T) {
		_, errs := validation.ValidateListCategoriesQuery("", "lots", "")
		assert.True(t, hasFieldError(errs, "limit"))
	})

	t.Run("limit bounds", func(t *testing.T) {
		_, errs := validation.ValidateListCategoriesQuery("", "0", "")
		assert.True(t, hasFieldError(errs, "limit"))
		_, errs = validation.ValidateListCategoriesQuery("", "1001", "")
		assert.True(t, hasFieldError(errs, "limit"))
		q, errs := validation.ValidateListCategoriesQuery("", "1000", "")
		require.Nil(t, errs)
		assert.Equal(t, 1000, q.Limit)
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		_, errs := validation.ValidateListCategoriesQuery("", "", "-1")
		assert.True(t, hasFieldError(errs, "offset"))
	})
}
