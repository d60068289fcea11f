package response

// Body is the uniform result envelope returned by every endpoint.
// Err 0 means success; Err 1 means an expected, caller-actionable
// condition (not found, duplicate, nothing to delete).
type Body struct {
	Err     int         `json:"err"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListData is the data payload of paginated list endpoints.
type ListData struct {
	Count int64       `json:"count"`
	Rows  interface{} `json:"rows"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// OK returns a success envelope wrapping the data
func OK(message string, data interface{}) Body {
	return Body{
		Err:     0,
		Message: message,
		Data:    data,
	}
}

// Reject returns a business-rejection envelope (err=1, no data)
func Reject(message string) Body {
	return Body{
		Err:     1,
		Message: message,
	}
}

// OKList returns a success envelope wrapping paginated rows with their total count
func OKList(message string, rows interface{}, count int64, page, limit int) Body {
	return Body{
		Err:     0,
		Message: message,
		Data: ListData{
			Count: count,
			Rows:  rows,
			Page:  page,
			Limit: limit,
		},
	}
}
