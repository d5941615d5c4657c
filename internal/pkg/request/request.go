package request

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// BindJSON decodes the body into dst and runs its validate tags.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("invalid request body", err.Error())
	}
	if fields := validator.Validate(dst); fields != nil {
		return apperr.Validation("validation failed", validator.Messages(fields)...)
	}
	return nil
}

// BindMap decodes a JSON object body keeping numbers as json.Number.
func BindMap(c *gin.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.Validation("request body is required")
		}
		return nil, apperr.Validation("invalid request body", err.Error())
	}
	return out, nil
}

func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func QueryInt64(c *gin.Context, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.Validation("invalid " + key)
	}
	return &v, nil
}

func QueryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Validation("invalid " + key)
	}
	return &v, nil
}

// QueryTime accepts RFC 3339 timestamps or plain dates.
func QueryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return nil, apperr.Validation("invalid " + key + ": use RFC 3339 or YYYY-MM-DD")
	}
	return &t, nil
}

func ParseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
