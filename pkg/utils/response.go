package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func ErrorResponse(c *gin.Context, code int, message string, err error) {
	response := ErrorBody{
		Error: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	c.JSON(code, response)
}

// AbortWithError writes the error body and stops the handler chain
func AbortWithError(c *gin.Context, code int, message string, err error) {
	ErrorResponse(c, code, message, err)
	c.Abort()
}
