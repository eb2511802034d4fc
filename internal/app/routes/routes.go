package routes

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/rafael/coursehub/internal/app/auth"
	"github.com/rafael/coursehub/internal/app/controllers"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/middleware"
	"github.com/rafael/coursehub/internal/pkg/auth"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Account      *controllers.AccountController
	Category     *controllers.CategoryController
	Course       *controllers.CourseController
	Lesson       *controllers.LessonController
	QA           *controllers.QAController
	Notification *controllers.NotificationController
	Quiz         *controllers.QuizController
	Forum        *controllers.ForumController
	Instructor   *controllers.InstructorController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	jwtService *auth.JWTService,
	authzService *appauth.AuthorizationService,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", ctrl.Auth.Register)
		authRoutes.POST("/login", ctrl.Auth.Login)
		authRoutes.POST("/refresh", ctrl.Auth.RefreshToken)
		authRoutes.POST("/logout", ctrl.Auth.Logout)
		// Organization list feeds the registration form, so it stays public
		authRoutes.GET("/organizations", ctrl.Auth.ListOrganizations)
	}

	// --- Authenticated routes (valid token, no tenant resolution) ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		account := authenticated.Group("/account")
		{
			account.GET("/profile", ctrl.Account.GetProfile)
			account.PUT("/profile", ctrl.Account.UpdateProfile)
			account.POST("/profile/photo", ctrl.Account.UploadProfilePhoto)
			account.DELETE("/profile/photo", ctrl.Account.DeleteProfilePhoto)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrl.Notification.ListNotifications)
			notifications.GET("/unread-count", ctrl.Notification.GetUnreadCount)
		}
	}

	// --- Tenant routes (approved membership or ownership required) ---
	tenant := v1.Group("")
	tenant.Use(middleware.JWTAuth(jwtService), middleware.TenantRequired(authzService))
	{
		categories := tenant.Group("/categories")
		{
			categories.GET("", ctrl.Category.ListCategories)
			categories.GET("/:id", ctrl.Category.GetCategory)
		}

		courses := tenant.Group("/courses")
		{
			courses.GET("", ctrl.Course.ListCourses)
			courses.GET("/:courseId", ctrl.Course.GetCourse)
			courses.GET("/:courseId/lessons", ctrl.Lesson.ListLessons)
			courses.GET("/:courseId/progress", ctrl.Lesson.GetCourseProgress)
			courses.GET("/:courseId/quiz", ctrl.Quiz.GetQuiz)
			courses.POST("/:courseId/quiz/submit", ctrl.Quiz.SubmitQuiz)
			courses.GET("/:courseId/quiz/my-results", ctrl.Quiz.ListMyResults)
		}

		lessons := tenant.Group("/lessons")
		{
			lessons.GET("/:lessonId", ctrl.Lesson.GetLesson)
			lessons.POST("/:lessonId/complete", ctrl.Lesson.CompleteLesson)
			lessons.GET("/:lessonId/questions", ctrl.QA.ListQuestions)
			lessons.POST("/:lessonId/questions", ctrl.QA.PostQuestion)
		}

		questions := tenant.Group("/questions")
		{
			questions.POST("/:questionId/answers", ctrl.QA.PostAnswer)
			questions.DELETE("/:questionId", ctrl.QA.DeleteQuestion)
		}

		answers := tenant.Group("/answers")
		{
			answers.POST("/:answerId/vote", ctrl.QA.ToggleVote)
			answers.DELETE("/:answerId", ctrl.QA.DeleteAnswer)
		}

		forum := tenant.Group("/forum")
		{
			forum.GET("/topics", ctrl.Forum.ListTopics)
			forum.POST("/topics", ctrl.Forum.CreateTopic)
			forum.GET("/topics/:topicId", ctrl.Forum.GetTopic)
			forum.DELETE("/topics/:topicId", ctrl.Forum.DeleteTopic)
			forum.POST("/topics/:topicId/comments", ctrl.Forum.AddComment)
			forum.DELETE("/comments/:commentId", ctrl.Forum.DeleteComment)
		}

		// --- Owner-only management routes ---
		owner := tenant.Group("")
		owner.Use(middleware.OwnerRequired())
		{
			ownerCategories := owner.Group("/categories")
			{
				ownerCategories.POST("", ctrl.Category.CreateCategory)
				ownerCategories.PUT("/:id", ctrl.Category.UpdateCategory)
				ownerCategories.DELETE("/:id", ctrl.Category.DeleteCategory)
			}

			ownerCourses := owner.Group("/courses")
			{
				ownerCourses.POST("", ctrl.Course.CreateCourse)
				ownerCourses.PUT("/:courseId", ctrl.Course.UpdateCourse)
				ownerCourses.DELETE("/:courseId", ctrl.Course.DeleteCourse)
				ownerCourses.POST("/:courseId/cover", ctrl.Course.UploadCoverImage)
				ownerCourses.POST("/:courseId/lessons", ctrl.Lesson.CreateLesson)
				ownerCourses.PUT("/:courseId/quiz", ctrl.Quiz.UpsertQuiz)
				ownerCourses.GET("/:courseId/quiz/results", ctrl.Quiz.ListResults)
			}

			ownerLessons := owner.Group("/lessons")
			{
				ownerLessons.PUT("/:lessonId", ctrl.Lesson.UpdateLesson)
				ownerLessons.DELETE("/:lessonId", ctrl.Lesson.DeleteLesson)
				ownerLessons.POST("/:lessonId/material", ctrl.Lesson.UploadSupportMaterial)
			}

			quizzes := owner.Group("/quizzes")
			{
				quizzes.POST("/:quizId/questions", ctrl.Quiz.AddQuestion)
			}

			quizQuestions := owner.Group("/quiz-questions")
			{
				quizQuestions.PUT("/:questionId", ctrl.Quiz.UpdateQuestion)
				quizQuestions.DELETE("/:questionId", ctrl.Quiz.DeleteQuestion)
				quizQuestions.POST("/:questionId/options", ctrl.Quiz.AddOption)
			}

			quizOptions := owner.Group("/quiz-options")
			{
				quizOptions.PUT("/:optionId", ctrl.Quiz.UpdateOption)
				quizOptions.DELETE("/:optionId", ctrl.Quiz.DeleteOption)
			}

			instructor := owner.Group("/instructor")
			{
				instructor.GET("/dashboard", ctrl.Instructor.Dashboard)
				instructor.GET("/associates", ctrl.Instructor.ListMembers)
				instructor.POST("/associates/:id/approve", ctrl.Instructor.ApproveMember)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
