package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Authentication("missing token"), http.StatusUnauthorized},
		{Authorization("role not allowed"), http.StatusForbidden},
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("fitting"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{SchemaNotReady("reminders"), http.StatusNotImplemented},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("outer: %w", NotFound("order")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	root := errors.New("connection reset")
	wrapped := Wrap(root, "database error")
	assert.Equal(t, KindUnexpected, wrapped.Kind)
	assert.ErrorIs(t, wrapped, root)
	assert.Equal(t, "database error: connection reset", wrapped.Error())

	typed := NotFound("customer")
	assert.Same(t, typed, Wrap(typed, "ignored"))
}

func TestIs(t *testing.T) {
	assert.True(t, Is(SchemaNotReady("tasks"), KindSchemaNotReady))
	assert.False(t, Is(nil, KindUnexpected))
	assert.Equal(t, "customer not found", NotFound("customer").Error())
}
