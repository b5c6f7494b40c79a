package main

import (
	"log"

	"github.com/wpsadi/AssessKit-sub000/internal/config"
	"github.com/wpsadi/AssessKit-sub000/internal/database"
	"github.com/wpsadi/AssessKit-sub000/internal/handlers"
	"github.com/wpsadi/AssessKit-sub000/internal/middleware"
	"github.com/wpsadi/AssessKit-sub000/internal/services"
	"github.com/wpsadi/AssessKit-sub000/pkg/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title           AssessKit API
// @version         1.0
// @description     Quiz/assessment platform: organizers author events, participants answer timed questions in order, leaderboards rank by points and speed.
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedisCache(cfg.RedisAddr)
	} else {
		log.Println("REDIS_ADDR not set, leaderboard caching disabled")
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	eventService := services.NewEventService(db)
	roundService := services.NewRoundService(db)
	questionService := services.NewQuestionService(db)
	participantService := services.NewParticipantService(db)
	timingService := services.NewTimingService()
	scoringService := services.NewScoringService()
	progressionService := services.NewProgressionService(db, timingService, scoringService)
	leaderboardService := services.NewLeaderboardService(db, redisCache)

	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	roundHandler := handlers.NewRoundHandler(roundService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	participantHandler := handlers.NewParticipantHandler(participantService, progressionService)
	playHandler := handlers.NewPlayHandler(authService, progressionService, leaderboardService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		events := api.Group("/events")
		events.Use(middleware.JWTAuth(authService))
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
			events.POST("/:id/rounds", roundHandler.CreateRound)
			events.POST("/:id/participants", participantHandler.CreateParticipant)
			events.GET("/:id/participants", participantHandler.ListParticipants)
		}

		rounds := api.Group("/rounds")
		{
			rounds.PUT("/:id", middleware.JWTAuth(authService), roundHandler.UpdateRound)
			rounds.DELETE("/:id", middleware.JWTAuth(authService), roundHandler.DeleteRound)
			rounds.POST("/:id/questions", middleware.JWTAuth(authService), questionHandler.CreateQuestion)
			rounds.GET("/:id/leaderboard", middleware.FlexAuth(authService), leaderboardHandler.GetRoundLeaderboard)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}

		participants := api.Group("/participants")
		participants.Use(middleware.JWTAuth(authService))
		{
			participants.PUT("/:id", participantHandler.UpdateParticipant)
			participants.DELETE("/:id", participantHandler.DeleteParticipant)
			participants.POST("/:id/recalculate/:roundId", participantHandler.RecalculateScore)
		}

		play := api.Group("/play")
		{
			play.POST("/login", playHandler.Login)
			play.POST("/rounds/start", middleware.ParticipantAuth(authService), playHandler.StartRound)
			play.GET("/questions/current", middleware.ParticipantAuth(authService), playHandler.CurrentQuestion)
			play.POST("/questions/start", middleware.ParticipantAuth(authService), playHandler.StartQuestion)
			play.POST("/answers", middleware.ParticipantAuth(authService), playHandler.SubmitAnswer)
		}

		api.GET("/events/:id/leaderboard", middleware.FlexAuth(authService), leaderboardHandler.GetEventLeaderboard)
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
