package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "whisperd/internal/app/errors"
)

func TestAPIError_JSONShape(t *testing.T) {
	body, err := json.Marshal(NewMissingFileError())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"no file"}`, string(body))

	apiErr := NewInternalError("model exploded")
	apiErr.RequestID = "abc"
	body, err = json.Marshal(apiErr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"model exploded"}`, string(body))
}

func TestAPIError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("x").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x").HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, NewServiceUnavailableError("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, (&APIError{Message: "x"}).HTTPStatus())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	missing := FromError(apperrors.ErrMissingFile)
	assert.Equal(t, KindBadRequest, missing.Kind)
	assert.Equal(t, "no file", missing.Message)

	staged := FromError(apperrors.WithKind(fmt.Errorf("disk full"), apperrors.KindStaging))
	assert.Equal(t, KindInternal, staged.Kind)
	assert.Equal(t, "disk full", staged.Message)

	same := NewServiceUnavailableError("busy")
	assert.Same(t, same, FromError(same))
}
