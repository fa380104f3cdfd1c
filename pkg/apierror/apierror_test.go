package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NOT_FOUND: item not found (abc)", NotFound("item not found", "abc").Error())
	assert.Equal(t, "BAD_REQUEST: name is required", BadRequest("name is required", "").Error())

	var nilErr *APIError
	assert.Equal(t, "", nilErr.Error())
}

func TestWrap_KeepsCause(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("claim is not pending")
	wrapped := fmt.Errorf("approve: %w", Wrap(sentinel, "CLAIM_NOT_PENDING", "claim already reviewed", http.StatusConflict))

	assert.ErrorIs(t, wrapped, sentinel)

	apiErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	assert.Equal(t, "CLAIM_NOT_PENDING", apiErr.Code)
}
