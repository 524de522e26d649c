// Package server is the command-adapter surface: the chat gateway calls
// these routes with an already-authenticated user identity and receives
// JSON it renders back into the chat platform. The core never parses raw
// command text.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/config"
	"github.com/teampulse/pulsebot/internal/daily"
	"github.com/teampulse/pulsebot/internal/health"
	"github.com/teampulse/pulsebot/internal/notify"
	"github.com/teampulse/pulsebot/internal/reminder"
	"github.com/teampulse/pulsebot/internal/store"
	"github.com/teampulse/pulsebot/internal/tracker"
)

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(cfg *config.Config, s *store.Store, t *tracker.Tracker, d *daily.Tracker, r *reminder.Service, n notify.Dispatcher) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.GET("/health", gin.WrapF(health.Handler))

	api := engine.Group("/api", Auth(cfg), Identity())
	{
		clock := api.Group("/clock")
		{
			clock.POST("/in", ClockInHandler(cfg, t, n))
			clock.POST("/out", ClockOutHandler(cfg, t, n))
			clock.GET("/status", ClockStatusHandler(t))
			clock.GET("/report", RequireElevated(cfg, s), ClockReportHandler(t))
		}

		dailyGroup := api.Group("/daily")
		{
			dailyGroup.POST("", DailySubmitHandler(d))
			dailyGroup.GET("", DailyViewHandler(d))
			dailyGroup.GET("/report", RequireElevated(cfg, s), DailyReportHandler(d))
			dailyGroup.POST("/sweep", RequireElevated(cfg, s), DailySweepHandler(r))
		}

		api.POST("/support", SupportHandler(cfg, n))

		admin := api.Group("/admin", RequireAdmin(cfg, s))
		{
			admin.POST("/users", RegisterUserHandler(s))
			admin.GET("/users", ListUsersHandler(s))
			admin.DELETE("/users/:id", RemoveUserHandler(s))

			admin.POST("/toggles/:name", FeatureToggleHandler(s))

			admin.POST("/clock/reset", ClockResetHandler(s))
			admin.POST("/clock/toggle", TrackingToggleHandler(t))
			admin.POST("/daily/clear", DailyClearHandler(s))

			admin.POST("/ignored-dates", AddIgnoredDateHandler(s))
			admin.GET("/ignored-dates", ListIgnoredDatesHandler(s))
			admin.DELETE("/ignored-dates/:id", RemoveIgnoredDateHandler(s))
			admin.DELETE("/ignored-dates", ClearIgnoredDatesHandler(s))
		}
	}

	return engine
}
