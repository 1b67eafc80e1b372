package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// FilteredResponse is a dashboard list behind a status filter. Expanded is
// the accordion row left open, if any.
type FilteredResponse[T any] struct {
	Data     []T      `json:"data"`
	Total    int      `json:"total"`
	Status   string   `json:"status"`
	Statuses []string `json:"statuses"`
	Expanded string   `json:"expanded,omitempty"`
}

type PageResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func nonNil[T any](data []T) []T {
	if data == nil {
		return []T{}
	}
	return data
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  nonNil(data),
		Total: len(data),
	})
}

func Filtered[T any](c *gin.Context, data []T, status string, statuses []string, expanded string) {
	c.JSON(http.StatusOK, FilteredResponse[T]{
		Data:     nonNil(data),
		Total:    len(data),
		Status:   status,
		Statuses: statuses,
		Expanded: expanded,
	})
}

func Page[T any](c *gin.Context, data []T, total int64, page, limit int) {
	c.JSON(http.StatusOK, PageResponse[T]{
		Data:  nonNil(data),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
