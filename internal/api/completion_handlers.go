package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/service"
)

func PostToggle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateToggleRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		completed, err := service.ToggleCompletion(c.Request.Context(), app.HabitRepo(), app.CompletionRepo(), app.DayLogCache(), c.Param("id"), req.Date)
		if errors.Is(err, internal.ErrNotFound) {
			HandleError(c, app.Logger(), err, 404, "Habit not found")
			return
		}
		meta, err := persistMeta(app.Logger(), err)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to toggle completion")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"habit_id": c.Param("id"), "date": req.Date, "completed": completed}, meta)
	}
}

func GetHabitCompletions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := app.HabitRepo().GetHabit(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Habit not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch habit")
			return
		}

		completions, err := app.CompletionRepo().ListCompletionsForHabit(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch completions")
			return
		}
		HandleSuccess(c, app.Logger(), completions, nil)
	}
}

func GetDayLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			date = service.Today()
		}
		if err := service.ValidateDate(date); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}

		entries, err := service.DayLog(c.Request.Context(), app.HabitRepo(), app.CompletionRepo(), app.DayLogCache(), date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to build day log")
			return
		}
		HandleSuccess(c, app.Logger(), entries, map[string]any{"date": date})
	}
}
