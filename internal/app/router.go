package app

import (
	"classquiz_backend/docs"
	"classquiz_backend/internal/config"
	"classquiz_backend/internal/middleware"
	"classquiz_backend/internal/model"
	"classquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.Profile)

		// readable by both roles, scoped per caller inside the services
		authGroup.GET("/classrooms", c.classroom.List)
		authGroup.GET("/classrooms/:id", c.classroom.Get)
		authGroup.GET("/quizzes", c.quiz.List)
		authGroup.GET("/quizzes/classroom/:classroomId", c.quiz.ListByClassroom)
		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.GET("/questions/quiz/:quizId", c.question.ListByQuiz)
		authGroup.GET("/questions/:id", c.question.Get)

		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/classrooms", c.classroom.Create)
			teacher.PUT("/classrooms/:id", c.classroom.Update)
			teacher.DELETE("/classrooms/:id", c.classroom.Delete)
			teacher.DELETE("/classrooms/:id/students/:studentId", c.classroom.RemoveStudent)

			teacher.GET("/enrollment/:classroomId", c.enrollment.GetCode)
			teacher.PUT("/enrollment/:classroomId", c.enrollment.UpdateCode)

			teacher.POST("/quizzes", c.quiz.Create)
			teacher.PUT("/quizzes/:id", c.quiz.Update)
			teacher.DELETE("/quizzes/:id", c.quiz.Delete)

			teacher.POST("/questions", c.question.Create)
			teacher.PUT("/questions/:id", c.question.Update)
			teacher.DELETE("/questions/:id", c.question.Delete)

			teacher.POST("/answers", c.answer.Create)
			teacher.GET("/answers/question/:questionId", c.answer.ListByQuestion)
			teacher.GET("/answers/:id", c.answer.Get)
			teacher.PUT("/answers/:id", c.answer.Update)
			teacher.DELETE("/answers/:id", c.answer.Delete)

			teacher.GET("/quiz/:id/stats", c.stats.ListAttempts)
			teacher.GET("/quiz/:id/stats/:attemptId", c.stats.GetAttemptDetail)
			teacher.PATCH("/quiz/:id/stats/:attemptId", c.stats.SetScore)
		}

		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/enroll", c.enrollment.Enroll)

			student.POST("/attempts", c.attempt.Start)
			student.GET("/attempts", c.attempt.List)
			student.GET("/attempts/archived", c.attempt.ListArchived)
			student.GET("/attempts/classroom/:classroomId", c.attempt.ListByClassroom)
			student.GET("/attempts/:id", c.attempt.Get)
			student.GET("/attempts/:id/next-question", c.attempt.NextQuestion)

			student.POST("/answer-submit", c.attempt.SubmitAnswers)
		}
	}
}
