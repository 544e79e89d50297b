package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/auth"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/config"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(app App, provider auth.Provider, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CORSMiddleware())

	r.GET("/health", Health(app))

	protected := r.Group("/api", auth.AuthMiddleware(provider, cfg))
	protected.GET("/habits", GetHabits(app))
	protected.POST("/habits", PostHabit(app))
	protected.PUT("/habits/:id", PutHabit(app))
	protected.DELETE("/habits/:id", DeleteHabit(app))
	protected.PUT("/habits/:id/reminder", PutReminder(app))
	protected.POST("/habits/:id/toggle", PostToggle(app))
	protected.GET("/habits/:id/completions", GetHabitCompletions(app))
	protected.GET("/log", GetDayLog(app))
	protected.POST("/suggestions", PostSuggestions(app))

	return r
}

func Health(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		if app.StorageHealth() != nil && !app.StorageHealth().WriteHealthy() {
			status = "degraded"
		}
		c.JSON(200, gin.H{"status": status})
	}
}
