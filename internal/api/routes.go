package api

import (
	"campusconnect/placement-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	studentService service.StudentService,
	resumeService service.ResumeService,
	placementService service.PlacementService,
	questionBankService service.QuestionBankService,
) {

	authHandler := NewAuthHandler(authService)
	studentHandler := NewStudentHandler(studentService)
	resumeHandler := NewResumeHandler(resumeService)
	placementHandler := NewPlacementHandler(placementService, resumeService)
	questionBankHandler := NewQuestionBankHandler(questionBankService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/reset-password", authHandler.ResetPassword)

		// --- Profile Routes ---
		protected.GET("/profile", studentHandler.GetProfile)
		protected.PUT("/profile", studentHandler.UpdateProfile)

		// --- Resume Routes ---
		resumeGroup := protected.Group("/resumes")
		{
			resumeGroup.POST("", resumeHandler.Upload)
			resumeGroup.GET("", resumeHandler.List)
			resumeGroup.GET("/skills", resumeHandler.ListSkills)
			resumeGroup.PUT("/:resumeId/activate", resumeHandler.Activate)
			resumeGroup.DELETE("/:resumeId", resumeHandler.Delete)
		}

		// --- Placement Drive Routes ---
		placementGroup := protected.Group("/placements")
		{
			placementGroup.GET("/featured", placementHandler.Featured)
			placementGroup.GET("/ongoing", placementHandler.Ongoing)
			placementGroup.GET("/upcoming", placementHandler.Upcoming)
			placementGroup.GET("/completed", placementHandler.Completed)
			placementGroup.POST("/:placementId/apply", placementHandler.Apply)
			placementGroup.GET("/applied", placementHandler.Applied)
		}

		// --- Question Bank Routes ---
		protected.GET("/question-banks", questionBankHandler.ListByCategory)
	}
}
