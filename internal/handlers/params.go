package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{Message: "id must be a valid UUID", Code: "validation"},
		})
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads page/page_size query params. The boundary supplies the
// defaults; the core rejects anything non-positive.
func parsePage(c *gin.Context) (page, pageSize int, ok bool) {
	page, ok = parseIntQuery(c, "page", 1)
	if !ok {
		return 0, 0, false
	}
	pageSize, ok = parseIntQuery(c, "page_size", 10)
	if !ok {
		return 0, 0, false
	}
	return page, pageSize, true
}

func parseIntQuery(c *gin.Context, name string, defaultVal int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultVal, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{Message: name + " must be an integer", Code: "validation"},
		})
		return 0, false
	}
	return val, true
}

func parseBirthDate(c *gin.Context, raw string) (*datatypes.Date, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{Message: "birth_date must be a valid date (YYYY-MM-DD)", Code: "validation"},
		})
		return nil, false
	}
	date := datatypes.Date(parsed)
	return &date, true
}
