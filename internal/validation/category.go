package validation

import "strings"

// Field length bounds for categories and exercises.
const (
	maxNameLen         = 100
	maxFocusAreaLen    = 100
	maxKeyObjectiveLen = 500
	maxRepetitionsLen  = 50
	maxDescriptionLen  = 500
)

// CreateCategoryRequest is the payload for creating a workout category.
type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	FocusArea    string `json:"focusArea" validate:"required,max=100"`
	KeyObjective string `json:"keyObjective" validate:"required,max=500"`
}

// ValidateCreateCategory trims the three text fields and checks presence and
// length bounds. Returns nil when the request is valid.
func ValidateCreateCategory(req *CreateCategoryRequest) Errors {
	req.Name = strings.TrimSpace(req.Name)
	req.FocusArea = strings.TrimSpace(req.FocusArea)
	req.KeyObjective = strings.TrimSpace(req.KeyObjective)
	return checkStruct(req, nil)
}

// UpdateCategoryRequest is a partial update; every field is optional but at
// least one must be present.
type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	FocusArea    *string `json:"focusArea"`
	KeyObjective *string `json:"keyObjective"`
}

// ValidateUpdateCategory validates whichever fields are present and rejects
// an entirely empty partial object.
func ValidateUpdateCategory(req *UpdateCategoryRequest) Errors {
	if req.Name == nil && req.FocusArea == nil && req.KeyObjective == nil {
		return Errors(nil).add("request", "at least one field must be provided")
	}
	var errs Errors
	errs = trimmedStringField("name", req.Name, maxNameLen, errs)
	errs = trimmedStringField("focusArea", req.FocusArea, maxFocusAreaLen, errs)
	errs = trimmedStringField("keyObjective", req.KeyObjective, maxKeyObjectiveLen, errs)
	return errs
}

// CreateExerciseRequest is the payload for adding an exercise to a category.
type CreateExerciseRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Sets        int    `json:"sets" validate:"min=1,max=10"`
	Repetitions string `json:"repetitions" validate:"required,max=50"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=easy medium challenging"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// ValidateCreateExercise checks the full exercise shape: name and free-form
// repetitions present and bounded, sets in [1,10], difficulty in the fixed
// enum, description optional but bounded.
func ValidateCreateExercise(req *CreateExerciseRequest) Errors {
	req.Name = strings.TrimSpace(req.Name)
	req.Repetitions = strings.TrimSpace(req.Repetitions)
	req.Description = strings.TrimSpace(req.Description)
	return checkStruct(req, nil)
}

// UpdateExerciseRequest is a partial exercise update.
type UpdateExerciseRequest struct {
	Name        *string `json:"name"`
	Sets        *int    `json:"sets"`
	Repetitions *string `json:"repetitions"`
	Difficulty  *string `json:"difficulty"`
	Description *string `json:"description"`
}

// ValidateUpdateExercise validates present fields only and requires at least
// one. A present description may be set to empty (clearing it), unlike the
// other text fields.
func ValidateUpdateExercise(req *UpdateExerciseRequest) Errors {
	if req.Name == nil && req.Sets == nil && req.Repetitions == nil &&
		req.Difficulty == nil && req.Description == nil {
		return Errors(nil).add("request", "at least one field must be provided")
	}
	var errs Errors
	errs = trimmedStringField("name", req.Name, maxNameLen, errs)
	errs = trimmedStringField("repetitions", req.Repetitions, maxRepetitionsLen, errs)
	if req.Sets != nil && (*req.Sets < 1 || *req.Sets > 10) {
		errs = errs.add("sets", "must be between 1 and 10")
	}
	if req.Difficulty != nil {
		*req.Difficulty = strings.TrimSpace(*req.Difficulty)
		switch *req.Difficulty {
		case "easy", "medium", "challenging":
		default:
			errs = errs.add("difficulty", "must be one of: easy, medium, challenging")
		}
	}
	if req.Description != nil {
		*req.Description = strings.TrimSpace(*req.Description)
		if len(*req.Description) > maxDescriptionLen {
			errs = errs.add("description", "must not exceed 500 characters")
		}
	}
	return errs
}

// DuplicateExerciseRequest names the category an exercise is copied into.
type DuplicateExerciseRequest struct {
	TargetCategoryID string `json:"targetCategoryId" validate:"required"`
}

// ValidateDuplicateExercise requires a non-empty target category id.
func ValidateDuplicateExercise(req *DuplicateExerciseRequest) Errors {
	req.TargetCategoryID = strings.TrimSpace(req.TargetCategoryID)
	return checkStruct(req, nil)
}

// ReorderExercisesRequest carries the new display order: the position of each
// id defines its order value (first element becomes order 0). Duplicate ids
// are not deduplicated here; the category service rejects id sets that do not
// match the stored exercises exactly.
type ReorderExercisesRequest struct {
	ExerciseIDs []string `json:"exerciseIds" validate:"required,min=1,dive,required"`
}

// ValidateReorderExercises requires a non-empty list of non-empty ids.
func ValidateReorderExercises(req *ReorderExercisesRequest) Errors {
	for i := range req.ExerciseIDs {
		req.ExerciseIDs[i] = strings.TrimSpace(req.ExerciseIDs[i])
	}
	return checkStruct(req, nil)
}

// ListCategoriesQuery is the normalized form of the category list query
// string: optional free-text filter plus paging.
type ListCategoriesQuery struct {
	Query  string
	Limit  int
	Offset int
}

// ValidateListCategoriesQuery coerces raw query-string parameters, applying
// the defaults (limit 50, offset 0) and range checks.
func ValidateListCategoriesQuery(queryRaw, limitRaw, offsetRaw string) (*ListCategoriesQuery, Errors) {
	var errs Errors
	limit, offset, errs := coerceLimitOffset(limitRaw, offsetRaw, errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &ListCategoriesQuery{
		Query:  strings.TrimSpace(queryRaw),
		Limit:  limit,
		Offset: offset,
	}, nil
}
