package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/service"
)

func PostHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input service.NewHabitInput
		if err := c.ShouldBindJSON(&input); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateNewHabitInput(&input); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		habit, err := service.CreateHabit(c.Request.Context(), app.HabitRepo(), &input)
		meta, err := persistMeta(app.Logger(), err)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save habit")
			return
		}

		HandleSuccess(c, app.Logger(), habit, meta)
	}
}

func GetHabits(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		habits, err := app.HabitRepo().ListHabits(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch habits")
			return
		}
		HandleSuccess(c, app.Logger(), habits, nil)
	}
}

func PutHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd service.ExistingHabitUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateExistingHabitUpdate(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		habit, err := service.UpdateHabit(c.Request.Context(), app.HabitRepo(), c.Param("id"), &upd)
		if errors.Is(err, internal.ErrNotFound) {
			HandleError(c, app.Logger(), err, 404, "Habit not found")
			return
		}
		meta, err := persistMeta(app.Logger(), err)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update habit")
			return
		}

		HandleSuccess(c, app.Logger(), habit, meta)
	}
}

func DeleteHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.DeleteHabit(c.Request.Context(), app.HabitRepo(), app.CompletionRepo(), c.Param("id"))
		meta, err := persistMeta(app.Logger(), err)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete habit")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"deleted": c.Param("id")}, meta)
	}
}

func PutReminder(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd service.ReminderUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateReminderUpdate(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		habit, err := service.SetReminder(c.Request.Context(), app.HabitRepo(), c.Param("id"), upd.ReminderTime)
		if errors.Is(err, internal.ErrNotFound) {
			HandleError(c, app.Logger(), err, 404, "Habit not found")
			return
		}
		meta, err := persistMeta(app.Logger(), err)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to set reminder")
			return
		}

		HandleSuccess(c, app.Logger(), habit, meta)
	}
}
