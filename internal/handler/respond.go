package handler

import (
	"net/http"

	"workhive/internal/service"
	"workhive/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// reject writes the envelope for a failed service call. Business rejections
// map to a 4xx status keyed on their kind; anything else is a system fault
// and surfaces as a bare 500 without leaking internals.
func reject(c *gin.Context, err error) {
	if be, ok := service.AsBusiness(err); ok {
		status := http.StatusBadRequest
		switch be.Kind {
		case service.KindNotFound:
			status = http.StatusNotFound
		case service.KindConflict:
			status = http.StatusConflict
		case service.KindReferenceMissing:
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, response.Reject(be.Message))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, response.Reject("internal server error"))
}

// badRequest writes a 400 envelope for malformed input
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, response.Reject(message))
}

// pathID parses the named path parameter as a UUID, writing a 400 envelope
// on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, name+" must be a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the authenticated user's id set by the auth middleware
func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get("userID")
	if !ok {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func uuidFromString(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// queryUUID parses an optional UUID query parameter; absent means nil
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, name+" must be a valid uuid")
		return nil, false
	}
	return &id, true
}
