package handler

import (
	"strconv"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/gin-gonic/gin"
)

type paginationResponse struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

func toPaginationResponse(p domain.Pagination) paginationResponse {
	return paginationResponse(p)
}

// pageRequest reads ?page and ?limit. Missing, non-numeric and non-positive values
// fall back to the defaults.
func pageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.NewPageRequest(page, limit)
}
