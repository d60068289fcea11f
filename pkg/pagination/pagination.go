package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Sort directions produced by ParseSort.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Compute builds Params from raw query strings. Malformed or absent input
// never fails; it falls back to page 1 and defaultLimit (clamped to
// [MinLimit, MaxLimit]). A defaultLimit <= 0 means DefaultLimit.
func Compute(pageStr, limitStr string, defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < MinLimit {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Parse extracts and validates page/limit from query parameters
func Parse(c *gin.Context, defaultLimit int) Params {
	return Compute(c.Query("page"), c.Query("limit"), defaultLimit)
}

// ParseSort turns an order string such as "workspace_name_desc" into a
// (field, direction) pair. The field must appear in the allowed list;
// anything absent or unparseable falls back to defaultField ascending.
func ParseSort(order, defaultField string, allowed ...string) (string, string) {
	field := order
	direction := Asc

	switch {
	case strings.HasSuffix(order, "_desc"):
		field = strings.TrimSuffix(order, "_desc")
		direction = Desc
	case strings.HasSuffix(order, "_asc"):
		field = strings.TrimSuffix(order, "_asc")
	}

	for _, a := range allowed {
		if field == a {
			return field, direction
		}
	}
	return defaultField, Asc
}
