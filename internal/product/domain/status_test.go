package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanInstall(t *testing.T) {
	assert.NoError(t, CanInstall(StatusInStock))

	err := CanInstall(StatusManufactured)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPreconditionFailed))

	var pErr *PreconditionError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, StatusManufactured, pErr.Current)
	assert.Equal(t, "depot receipt", pErr.Required)

	for _, s := range []Status{StatusInstalled, StatusInCondition, StatusFailure, StatusNeedsReplacement} {
		assert.True(t, errors.Is(CanInstall(s), ErrPreconditionFailed), "status %s", s)
	}
}

func TestCanInspect(t *testing.T) {
	for _, s := range []Status{StatusInstalled, StatusInCondition, StatusFailure, StatusNeedsReplacement} {
		assert.NoError(t, CanInspect(s), "status %s", s)
	}
	for _, s := range []Status{StatusManufactured, StatusInStock} {
		err := CanInspect(s)
		require.Error(t, err, "status %s", s)
		assert.True(t, errors.Is(err, ErrPreconditionFailed))
	}
}

func TestNextAfterInspection(t *testing.T) {
	assert.Equal(t, StatusFailure, NextAfterInspection(StatusInstalled, true))
	assert.Equal(t, StatusInCondition, NextAfterInspection(StatusInstalled, false))

	// Reclassification both ways.
	assert.Equal(t, StatusInCondition, NextAfterInspection(StatusFailure, false))
	assert.Equal(t, StatusFailure, NextAfterInspection(StatusInCondition, true))

	// Terminal state never transitions.
	assert.Equal(t, StatusNeedsReplacement, NextAfterInspection(StatusNeedsReplacement, true))
	assert.Equal(t, StatusNeedsReplacement, NextAfterInspection(StatusNeedsReplacement, false))
}

func TestCanEscalate(t *testing.T) {
	assert.NoError(t, CanEscalate(StatusFailure))
	for _, s := range []Status{StatusManufactured, StatusInStock, StatusInstalled, StatusInCondition, StatusNeedsReplacement} {
		assert.True(t, errors.Is(CanEscalate(s), ErrPreconditionFailed), "status %s", s)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusManufactured, StatusInStock, StatusInstalled, StatusInCondition, StatusFailure, StatusNeedsReplacement} {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, Status("retired").Valid())
	assert.False(t, Status("").Valid())
}
