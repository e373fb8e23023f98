package routes

import (
	"healthcard-backend/internal/handlers"
	"healthcard-backend/internal/middleware"
	"healthcard-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Health Card API is running"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("", handlers.GetUsers)
				users.GET("/:id", handlers.GetUser)
				users.PUT("/:id", handlers.UpdateUser)
				users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), handlers.DeleteUser)
				users.PUT("/:id/assign-doctor", middleware.RequireRoles(models.RoleAdmin), handlers.AssignDoctor)
			}

			protected.GET("/doctors/:id/patients", handlers.GetDoctorPatients)

			appointments := protected.Group("/appointments")
			{
				appointments.POST("", handlers.CreateAppointment)
				appointments.GET("", handlers.GetAppointments)
				appointments.GET("/:id", handlers.GetAppointment)
				appointments.PUT("/:id", handlers.UpdateAppointment)
				appointments.DELETE("/:id", handlers.CancelAppointment)
			}

			records := protected.Group("/medical-records")
			{
				records.POST("", middleware.RequireRoles(models.RoleDoctor), handlers.CreateMedicalRecord)
				records.GET("", handlers.GetMedicalRecords)
				records.GET("/:id", handlers.GetMedicalRecord)
				records.PUT("/:id", handlers.UpdateMedicalRecord)
				records.DELETE("/:id", handlers.DeleteMedicalRecord)
			}

			prescriptions := protected.Group("/prescriptions")
			{
				prescriptions.POST("", middleware.RequireRoles(models.RoleDoctor), handlers.CreatePrescription)
				prescriptions.GET("", handlers.GetPrescriptions)
				prescriptions.GET("/:id", handlers.GetPrescription)
				prescriptions.PUT("/:id", handlers.UpdatePrescription)
				prescriptions.DELETE("/:id", handlers.DeletePrescription)
			}
		}
	}
}
