package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volleytrack/training-app/internal/domain"
	"volleytrack/training-app/internal/service"
)

// SetupRoutes wires all HTTP routes. Category and exercise mutation is
// admin-only; plans belong to the authenticated user regardless of role.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	categoryService service.CategoryService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	categoryHandler := NewCategoryHandler(categoryService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/password-strength", authHandler.PasswordStrength)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Category Routes ---
		categoryGroup := protected.Group("/categories")
		{
			// Reads are open to any authenticated user; players browse the
			// library when building plans.
			categoryGroup.GET("", categoryHandler.ListCategories)
			categoryGroup.GET("/:id", categoryHandler.GetCategory)
			categoryGroup.GET("/:id/exercises/:exerciseId/video", categoryHandler.GetDemoVideoURL)

			categoryGroup.POST("", adminOnly, categoryHandler.CreateCategory)
			categoryGroup.PUT("/:id", adminOnly, categoryHandler.UpdateCategory)
			categoryGroup.DELETE("/:id", adminOnly, categoryHandler.DeleteCategory)

			categoryGroup.POST("/:id/exercises", adminOnly, categoryHandler.AddExercise)
			categoryGroup.PUT("/:id/reorder", adminOnly, categoryHandler.ReorderExercises)
			categoryGroup.PUT("/:id/exercises/:exerciseId", adminOnly, categoryHandler.UpdateExercise)
			categoryGroup.DELETE("/:id/exercises/:exerciseId", adminOnly, categoryHandler.DeleteExercise)
			categoryGroup.POST("/:id/exercises/:exerciseId/duplicate", adminOnly, categoryHandler.DuplicateExercise)
			categoryGroup.POST("/:id/exercises/:exerciseId/video", adminOnly, categoryHandler.AttachDemoVideo)
		}

		// --- Workout Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)

			planGroup.POST("/wizard/step1", planHandler.WizardStep1)
			planGroup.POST("/wizard/step2", planHandler.WizardStep2)
			planGroup.POST("/wizard/step3", planHandler.WizardStep3)
		}
	}
}
