package handlers

import (
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response body on the account flows.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c *gin.Context, status int, success bool, message string, data any) {
	c.JSON(status, envelope{Success: success, Message: message, Data: data})
}

func getStringFromCtx(c *gin.Context, key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
