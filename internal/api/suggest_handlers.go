package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/service"
)

func PostSuggestions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SuggestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSuggestionRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		result, err := service.SuggestHabits(c.Request.Context(), app.HabitRepo(), app.Suggester(), req.Goals)
		if err != nil {
			HandleError(c, app.Logger(), err, 502, "Suggestion generation failed")
			return
		}

		HandleSuccess(c, app.Logger(), result, nil)
	}
}
