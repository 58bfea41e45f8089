package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/service"
	"volleytrack/training-app/internal/validation"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// PlanResponse is the DTO for returning workout plan details.
type PlanResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	CategoryID          string    `json:"categoryId"`
	StartDate           string    `json:"startDate"`
	NumberOfWeeks       int       `json:"numberOfWeeks"`
	SelectedDays        []int     `json:"selectedDays"`
	SelectedExerciseIDs []string  `json:"selectedExerciseIds"`
	CreatedAt           time.Time `json:"createdAt"`
}

// MapPlanToResponse converts a domain.WorkoutPlan to PlanResponse DTO.
func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	exerciseIDs := make([]string, len(plan.SelectedExerciseIDs))
	for i, id := range plan.SelectedExerciseIDs {
		exerciseIDs[i] = id.Hex()
	}
	return PlanResponse{
		ID:                  plan.ID.Hex(),
		UserID:              plan.UserID.Hex(),
		CategoryID:          plan.CategoryID.Hex(),
		StartDate:           plan.StartDate,
		NumberOfWeeks:       plan.NumberOfWeeks,
		SelectedDays:        plan.SelectedDays,
		SelectedExerciseIDs: exerciseIDs,
		CreatedAt:           plan.CreatedAt,
	}
}

// MapPlansToResponse converts a slice of plans to DTOs.
func MapPlansToResponse(plans []domain.WorkoutPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

// userIDFromToken resolves the authenticated user's ObjectID, aborting on
// failure.
func userIDFromToken(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// mapPlanServiceError translates plan service errors to HTTP status codes.
func mapPlanServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPlanCategoryInvalid),
		errors.Is(err, service.ErrUnknownExercise):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

// CreatePlan handles POST /plans.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	var req validation.CreateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateCreateWorkoutPlan(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, &req)
	if err != nil {
		mapPlanServiceError(c, err, "Failed to create workout plan.")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans handles GET /plans?categoryId=&limit=&offset=.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	q, errs := validation.ValidateListWorkoutPlansQuery(
		c.Query("categoryId"), c.Query("limit"), c.Query("offset"))
	if errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID, q)
	if err != nil {
		mapPlanServiceError(c, err, "Failed to list workout plans.")
		return
	}
	if plans == nil {
		c.JSON(http.StatusOK, []PlanResponse{})
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetPlan handles GET /plans/:id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		mapPlanServiceError(c, err, "Failed to retrieve workout plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan handles DELETE /plans/:id.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		mapPlanServiceError(c, err, "Failed to delete workout plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Wizard step endpoints ---
//
// Each step validates its own payload in isolation so the client can gate
// "Next" buttons server-side. Sequencing and accumulation stay client-side;
// the full payload is re-validated on final creation.

// WizardStep1 handles POST /plans/wizard/step1 (category choice).
func (h *PlanHandler) WizardStep1(c *gin.Context) {
	var req validation.WizardStep1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateWizardStep1(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// WizardStep2 handles POST /plans/wizard/step2 (schedule and commitment).
func (h *PlanHandler) WizardStep2(c *gin.Context) {
	var req validation.WizardStep2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateWizardStep2(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// WizardStep3 handles POST /plans/wizard/step3 (exercise selection).
func (h *PlanHandler) WizardStep3(c *gin.Context) {
	var req validation.WizardStep3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateWizardStep3(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
