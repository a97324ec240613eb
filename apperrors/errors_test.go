package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"bill-o/apperrors"

	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	require.True(t, apperrors.IsNotFound(apperrors.NotFoundf("tab %s not found", "t1")))
	require.True(t, apperrors.IsValidation(apperrors.Validationf("empty items")))
	require.True(t, apperrors.IsState(apperrors.Statef("tab is completed")))
	require.True(t, apperrors.IsTransient(apperrors.Transient("store failure", errors.New("boom"))))

	require.False(t, apperrors.IsNotFound(apperrors.Validationf("empty items")))
	require.False(t, apperrors.IsState(errors.New("plain error")))
	require.Equal(t, apperrors.Kind(0), apperrors.KindOf(nil))
}

func TestTransientKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.Transient("append order", cause)

	require.Equal(t, "append order: connection reset", err.Error())
	require.True(t, errors.Is(err, cause))
}

func TestKindOfSeesWrappedError(t *testing.T) {
	err := fmt.Errorf("handling request: %w", apperrors.NotFoundf("restaurant r1 not found"))
	require.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	require.True(t, apperrors.IsNotFound(err))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "not_found", apperrors.KindNotFound.String())
	require.Equal(t, "transient", apperrors.KindTransient.String())
	require.Equal(t, "unknown", apperrors.Kind(99).String())
}
