package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	case 502:
		resp = response.BadGateway(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

// persistMeta converts a failed durable write into a non-blocking advisory:
// the mutation already took effect in memory, so the request succeeds with a
// warning instead of failing.
func persistMeta(logger internal.Logger, err error) (map[string]any, error) {
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, internal.ErrStorageWrite) {
		logger.Warnf("durable write failed, in-memory state remains authoritative: %v", err)
		return map[string]any{"warning": "changes saved in memory only; durable storage is unavailable"}, nil
	}
	return nil, err
}
