package handler

import (
	"github.com/gin-gonic/gin"
)

// respond は {message, success, ...data} 形式でレスポンスを書き込みます。
func respond(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"message": message,
		"success": false,
	})
}
