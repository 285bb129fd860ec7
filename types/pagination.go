package types

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// AllowedPageSizes defines the page sizes the list endpoints accept.
var AllowedPageSizes = []int{10, 20, 50, 100}

// PaginatedResponse wraps list data with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PageSize   int `json:"pageSize"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

type PaginationHelper struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPaginationHelper clamps page and pageSize to sane values. A pageSize
// outside AllowedPageSizes rounds down to the nearest allowed one.
func NewPaginationHelper(page, pageSize int) *PaginationHelper {
	if page < 1 {
		page = 1
	}
	allowed := AllowedPageSizes[0]
	for _, size := range AllowedPageSizes {
		if size <= pageSize {
			allowed = size
		}
	}
	if pageSize == 0 {
		allowed = 20
	}
	return &PaginationHelper{
		Page:     page,
		PageSize: allowed,
		Offset:   (page - 1) * allowed,
	}
}

// ParsePaginationParams extracts page/pageSize query parameters.
func ParsePaginationParams(c *gin.Context) *PaginationHelper {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return NewPaginationHelper(page, pageSize)
}

// BuildResponse assembles the paginated envelope for a result set.
func (p *PaginationHelper) BuildResponse(data interface{}, total int) PaginatedResponse {
	resp := PaginatedResponse{Data: data}
	resp.Pagination.Page = p.Page
	resp.Pagination.PageSize = p.PageSize
	resp.Pagination.Total = total
	resp.Pagination.TotalPages = (total + p.PageSize - 1) / p.PageSize
	return resp
}
