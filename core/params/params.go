package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// QueryParams holds the common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func Parse(c echo.Context) QueryParams {
	params := QueryParams{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.PageNumber = page
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			if size > MaxPageSize {
				size = MaxPageSize
			}
			params.PageSize = size
		}
	}

	return params
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
