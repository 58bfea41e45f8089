package validation

import (
	"regexp"
	"strings"
	"time"
)

// datePattern is the literal YYYY-MM-DD shape a plan start date must have
// before any calendar parsing is attempted.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const dateLayout = "2006-01-02"

// checkStartDate applies the reusable date rule: the value must match
// YYYY-MM-DD, parse as a real calendar date at local midnight, and not fall
// strictly before today's local midnight. Today itself is accepted.
func checkStartDate(field, value string, errs Errors) Errors {
	if !datePattern.MatchString(value) {
		return errs.add(field, "must be a date in YYYY-MM-DD format")
	}
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return errs.add(field, "is not a valid calendar date")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if d.Before(today) {
		return errs.add(field, "must be today or later")
	}
	return errs
}

// CreateWorkoutPlanRequest is the full plan-creation payload. SelectedDays
// uses weekday indices 0 (Sunday) through 6 (Saturday).
type CreateWorkoutPlanRequest struct {
	CategoryID          string   `json:"categoryId" validate:"required"`
	StartDate           string   `json:"startDate" validate:"required"`
	NumberOfWeeks       int      `json:"numberOfWeeks" validate:"min=1,max=12"`
	SelectedDays        []int    `json:"selectedDays" validate:"required,min=1,dive,gte=0,lte=6"`
	SelectedExerciseIDs []string `json:"selectedExerciseIds" validate:"required,min=1,dive,required"`
}

// ValidateCreateWorkoutPlan checks the complete plan shape and applies the
// start-date rule on top of the per-field constraints.
func ValidateCreateWorkoutPlan(req *CreateWorkoutPlanRequest) Errors {
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.StartDate = strings.TrimSpace(req.StartDate)
	for i := range req.SelectedExerciseIDs {
		req.SelectedExerciseIDs[i] = strings.TrimSpace(req.SelectedExerciseIDs[i])
	}
	errs := checkStruct(req, nil)
	if req.StartDate != "" {
		errs = checkStartDate("startDate", req.StartDate, errs)
	}
	return errs
}

// ListWorkoutPlansQuery is the normalized plan list query: optional category
// filter plus paging.
type ListWorkoutPlansQuery struct {
	CategoryID string
	Limit      int
	Offset     int
}

// ValidateListWorkoutPlansQuery coerces the plan list query parameters with
// the same limit/offset semantics as the category list.
func ValidateListWorkoutPlansQuery(categoryIDRaw, limitRaw, offsetRaw string) (*ListWorkoutPlansQuery, Errors) {
	var errs Errors
	limit, offset, errs := coerceLimitOffset(limitRaw, offsetRaw, errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &ListWorkoutPlansQuery{
		CategoryID: strings.TrimSpace(categoryIDRaw),
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// The wizard is a linear 3-step flow: category choice, schedule/commitment,
// exercise selection. Each step's payload is validated in isolation;
// sequencing is the caller's responsibility.

// WizardStep1Request is the category-choice step.
type WizardStep1Request struct {
	CategoryID string `json:"categoryId" validate:"required"`
}

// ValidateWizardStep1 requires a non-empty category id.
func ValidateWizardStep1(req *WizardStep1Request) Errors {
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	return checkStruct(req, nil)
}

// WizardStep2Request is the schedule/commitment step.
type WizardStep2Request struct {
	StartDate     string `json:"startDate" validate:"required"`
	NumberOfWeeks int    `json:"numberOfWeeks" validate:"min=1,max=12"`
	SelectedDays  []int  `json:"selectedDays" validate:"required,min=1,dive,gte=0,lte=6"`
}

// ValidateWizardStep2 checks the schedule fields, including the start-date
// rule shared with full plan creation.
func ValidateWizardStep2(req *WizardStep2Request) Errors {
	req.StartDate = strings.TrimSpace(req.StartDate)
	errs := checkStruct(req, nil)
	if req.StartDate != "" {
		errs = checkStartDate("startDate", req.StartDate, errs)
	}
	return errs
}

// WizardStep3Request is the exercise-selection step.
type WizardStep3Request struct {
	SelectedExerciseIDs []string `json:"selectedExerciseIds" validate:"required,min=1,dive,required"`
}

// ValidateWizardStep3 requires a non-empty selection of non-empty ids.
func ValidateWizardStep3(req *WizardStep3Request) Errors {
	for i := range req.SelectedExerciseIDs {
		req.SelectedExerciseIDs[i] = strings.TrimSpace(req.SelectedExerciseIDs[i])
	}
	return checkStruct(req, nil)
}
