package utils

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"error": msg,
	})
}

func ErrorWithDetails(c *gin.Context, code int, msg, details string) {
	c.JSON(code, gin.H{
		"error":   msg,
		"details": details,
	})
}
