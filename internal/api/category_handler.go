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

// CategoryHandler holds the category service dependency.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Sets        int               `json:"sets"`
	Repetitions string            `json:"repetitions"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	Description string            `json:"description,omitempty"`
	Order       int               `json:"order"`
	HasVideo    bool              `json:"hasVideo"`
}

// CategoryResponse is the DTO for returning category details.
type CategoryResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	FocusArea    string             `json:"focusArea"`
	KeyObjective string             `json:"keyObjective"`
	Exercises    []ExerciseResponse `json:"exercises"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		Name:        ex.Name,
		Sets:        ex.Sets,
		Repetitions: ex.Repetitions,
		Difficulty:  ex.Difficulty,
		Description: ex.Description,
		Order:       ex.Order,
		HasVideo:    ex.VideoKey != "",
	}
}

// MapCategoryToResponse converts a domain.WorkoutCategory to its DTO.
func MapCategoryToResponse(cat *domain.WorkoutCategory) CategoryResponse {
	if cat == nil {
		return CategoryResponse{}
	}
	exercises := make([]ExerciseResponse, len(cat.Exercises))
	for i := range cat.Exercises {
		exercises[i] = MapExerciseToResponse(&cat.Exercises[i])
	}
	return CategoryResponse{
		ID:           cat.ID.Hex(),
		Name:         cat.Name,
		FocusArea:    cat.FocusArea,
		KeyObjective: cat.KeyObjective,
		Exercises:    exercises,
		CreatedAt:    cat.CreatedAt,
		UpdatedAt:    cat.UpdatedAt,
	}
}

// MapCategoriesToResponse converts a slice of categories to DTOs.
func MapCategoriesToResponse(categories []domain.WorkoutCategory) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = MapCategoryToResponse(&categories[i])
	}
	return responses
}

// parseIDParam reads a path parameter as a Mongo ObjectID, aborting with a
// 400 when it is not valid hex.
func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// mapCategoryServiceError translates category service errors to HTTP status codes.
func mapCategoryServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrNoDemoVideo):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTargetCategoryNotFound),
		errors.Is(err, service.ErrReorderMismatch):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req validation.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateCreateCategory(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to create category.")
		return
	}
	c.JSON(http.StatusCreated, MapCategoryToResponse(category))
}

// ListCategories handles GET /categories?query=&limit=&offset=.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	q, errs := validation.ValidateListCategoriesQuery(
		c.Query("query"), c.Query("limit"), c.Query("offset"))
	if errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list categories.")
		return
	}
	if categories == nil {
		c.JSON(http.StatusOK, []CategoryResponse{})
		return
	}
	c.JSON(http.StatusOK, MapCategoriesToResponse(categories))
}

// GetCategory handles GET /categories/:id.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to retrieve category.")
		return
	}
	c.JSON(http.StatusOK, MapCategoryToResponse(category))
}

// UpdateCategory handles PUT /categories/:id with a partial body.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validation.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateUpdateCategory(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to update category.")
		return
	}
	c.JSON(http.StatusOK, MapCategoryToResponse(category))
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		mapCategoryServiceError(c, err, "Failed to delete category.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddExercise handles POST /categories/:id/exercises.
func (h *CategoryHandler) AddExercise(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validation.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateCreateExercise(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	exercise, err := h.categoryService.AddExercise(c.Request.Context(), categoryID, &req)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to add exercise.")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise handles PUT /categories/:id/exercises/:exerciseId.
func (h *CategoryHandler) UpdateExercise(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	var req validation.UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateUpdateExercise(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	exercise, err := h.categoryService.UpdateExercise(c.Request.Context(), categoryID, exerciseID, &req)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise handles DELETE /categories/:id/exercises/:exerciseId.
func (h *CategoryHandler) DeleteExercise(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteExercise(c.Request.Context(), categoryID, exerciseID); err != nil {
		mapCategoryServiceError(c, err, "Failed to delete exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}

// DuplicateExercise handles POST /categories/:id/exercises/:exerciseId/duplicate.
func (h *CategoryHandler) DuplicateExercise(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	var req validation.DuplicateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateDuplicateExercise(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	targetCategoryID, err := primitive.ObjectIDFromHex(req.TargetCategoryID)
	if err != nil {
		abortWithValidationErrors(c, validation.Errors{
			{Field: "targetCategoryId", Message: "must be a valid id"},
		})
		return
	}

	exercise, err := h.categoryService.DuplicateExercise(c.Request.Context(), categoryID, exerciseID, targetCategoryID)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to duplicate exercise.")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ReorderExercises handles PUT /categories/:id/reorder.
func (h *CategoryHandler) ReorderExercises(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validation.ReorderExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if errs := validation.ValidateReorderExercises(&req); errs != nil {
		abortWithValidationErrors(c, errs)
		return
	}

	exerciseIDs := make([]primitive.ObjectID, len(req.ExerciseIDs))
	for i, idStr := range req.ExerciseIDs {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			abortWithValidationErrors(c, validation.Errors{
				{Field: "exerciseIds", Message: "must contain valid ids"},
			})
			return
		}
		exerciseIDs[i] = id
	}

	category, err := h.categoryService.ReorderExercises(c.Request.Context(), categoryID, exerciseIDs)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to reorder exercises.")
		return
	}
	c.JSON(http.StatusOK, MapCategoryToResponse(category))
}

// --- Demo video endpoints ---

type AttachDemoVideoRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// AttachDemoVideo handles POST /categories/:id/exercises/:exerciseId/video.
// It returns a presigned PUT URL; the client uploads the file directly.
func (h *CategoryHandler) AttachDemoVideo(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	var req AttachDemoVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uploadURL, err := h.categoryService.AttachDemoVideo(c.Request.Context(), categoryID, exerciseID, req.ContentType)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to prepare video upload.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL})
}

// GetDemoVideoURL handles GET /categories/:id/exercises/:exerciseId/video.
func (h *CategoryHandler) GetDemoVideoURL(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	url, err := h.categoryService.DemoVideoURL(c.Request.Context(), categoryID, exerciseID)
	if err != nil {
		mapCategoryServiceError(c, err, "Failed to generate video URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"videoUrl": url})
}
