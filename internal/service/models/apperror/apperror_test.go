package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindTransaction, http.StatusBadRequest},
		{KindAuthMissing, http.StatusUnauthorized},
		{KindAuthInvalid, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		e := &Error{Kind: tt.kind, Message: "x"}
		assert.Equal(t, tt.want, e.HTTPStatus())
	}
}

func TestAsError_PassesThroughClassifiedErrors(t *testing.T) {
	notFound := NotFound("order not found")

	got := AsError(fmt.Errorf("lookup: %w", notFound))
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "order not found", got.Message)
}

func TestAsError_WrapsUnclassifiedAsInternal(t *testing.T) {
	got := AsError(errors.New("connection refused"))
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus())
}

func TestTransactionErrorUnwraps(t *testing.T) {
	cause := errors.New("constraint violation")
	err := Transaction("order creation failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "order creation failed")
	assert.Contains(t, err.Error(), "constraint violation")
}
