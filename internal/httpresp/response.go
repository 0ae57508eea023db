package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T    `json:"data"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// ListWithError responde 200 com a lista vazia e a mensagem de falha de carga.
func ListWithError[T any](c *gin.Context, message string) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  []T{},
		Error: message,
	})
}
