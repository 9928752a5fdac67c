package api

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth       service.AuthService
	Exercises  service.ExerciseService
	Workouts   service.WorkoutService
	Plans      service.PlanService
	Athletes   service.AthleteService
	Assignment service.AssignmentService
	Chat       service.ChatService
	Feed       service.FeedService
}

func SetupRoutes(router *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	exerciseHandler := NewExerciseHandler(svc.Exercises)
	workoutHandler := NewWorkoutHandler(svc.Workouts)
	planHandler := NewPlanHandler(svc.Plans)
	athleteHandler := NewAthleteHandler(svc.Athletes, svc.Assignment)
	chatHandler := NewChatHandler(svc.Chat)
	feedHandler := NewFeedHandler(svc.Feed)

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
	protected.Use(AuthMiddleware(svc.Auth))
	{
		protected.GET("/me", authHandler.Me)

		// --- Chat and feed: any role ---
		conversations := protected.Group("/conversations")
		{
			conversations.GET("", chatHandler.ListConversations)
			conversations.POST("", chatHandler.OpenConversation)
			conversations.GET("/:id/messages", chatHandler.ListMessages)
			conversations.POST("/:id/messages", chatHandler.SendMessage)
		}

		feed := protected.Group("/feed")
		{
			feed.GET("", feedHandler.ListPosts)
			feed.POST("", feedHandler.CreatePost)
			feed.POST("/upload-url", feedHandler.RequestUploadURL)
			feed.POST("/:id/like", feedHandler.ToggleLike)
			feed.DELETE("/:id", feedHandler.DeletePost)
		}
	}

	// --- Coach workspace ---
	coach := protected.Group("")
	coach.Use(RoleMiddleware(domain.RoleCoach))
	{
		exercises := coach.Group("/exercises")
		{
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.POST("", exerciseHandler.CreateExercise)
			exercises.GET("/:id", exerciseHandler.GetExercise)
			exercises.PUT("/:id", exerciseHandler.UpdateExercise)
		}

		workouts := coach.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.CreateWorkout)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.PUT("/:id", workoutHandler.UpdateWorkout)
			workouts.POST("/:id/copy", workoutHandler.CopyWorkout)
			workouts.POST("/:id/exercises", workoutHandler.AddExercises)
			workouts.POST("/:id/exercises/move", workoutHandler.MoveRow)
			workouts.PATCH("/:id/exercises/:rowId", workoutHandler.UpdateRow)
			workouts.DELETE("/:id/exercises/:rowId", workoutHandler.RemoveRow)
		}

		plans := coach.Group("/plans")
		{
			plans.GET("", planHandler.ListPlans)
			plans.GET("/:id", planHandler.GetPlan)
		}

		// Wizard days and weeks are 1-based in the URL.
		drafts := coach.Group("/plans/drafts")
		{
			drafts.POST("", planHandler.StartDraft)
			drafts.GET("/:id", planHandler.GetDraft)
			drafts.PUT("/:id/basic-info", planHandler.SetBasicInfo)
			drafts.POST("/:id/next", planHandler.NextStep)
			drafts.POST("/:id/back", planHandler.PreviousStep)
			drafts.POST("/:id/weeks", planHandler.AddWeek)
			drafts.POST("/:id/weeks/:week/clone", planHandler.CloneWeek)
			drafts.DELETE("/:id/weeks/:week", planHandler.DeleteWeek)
			drafts.PUT("/:id/weeks/:week/days/:day", planHandler.AssignWorkout)
			drafts.DELETE("/:id/weeks/:week/days/:day", planHandler.RemoveWorkout)
			drafts.POST("/:id/weeks/:week/days/:day/rest", planHandler.SetRestDay)
			drafts.POST("/:id/save", planHandler.SaveDraft)
		}

		athletes := coach.Group("/athletes")
		{
			athletes.GET("", athleteHandler.ListAthletes)
			athletes.POST("", athleteHandler.AddAthletes)
			athletes.GET("/:id", athleteHandler.GetAthlete)
			athletes.DELETE("/:id", athleteHandler.DeleteAthlete)
			athletes.POST("/:id/freeze", athleteHandler.FreezeAthlete)
			athletes.POST("/:id/unfreeze", athleteHandler.UnfreezeAthlete)
			athletes.GET("/:id/assignments", athleteHandler.ListAssignments)
			athletes.POST("/:id/assignments", athleteHandler.AssignPlan)
		}
	}
}
