package response

import "github.com/gin-gonic/gin"

// The wire format is fixed by the API consumers: successful payloads are
// plain JSON documents, errors are {"error": message}, and several state
// changes answer with an empty body.

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, data)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

func Empty(c *gin.Context, httpStatus int) {
	c.Status(httpStatus)
}
