package service

import (
	"context"
	"testing"

	"gympoint/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLifecycle(t *testing.T) {
	svc := NewPlanService(newRepos(setupTestDB(t)).plans, quietLogger())
	ctx := context.Background()

	gold, err := svc.Create(ctx, validation.Plan{Title: "Gold", Duration: ptr(3), Price: ptr(109)})
	require.NoError(t, err)
	assert.Equal(t, 3, gold.Duration)

	_, err = svc.Create(ctx, validation.Plan{Title: "Gold", Duration: ptr(6), Price: ptr(99)})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, validation.Plan{Title: "Half", Duration: ptr(1.5), Price: ptr(99)})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(ctx, gold.ID, validation.Plan{Title: "Gold", Duration: ptr(6), Price: ptr(99)})
	require.NoError(t, err)
	assert.Equal(t, 594.0, updated.TotalPrice())

	_, err = svc.Update(ctx, 9, validation.Plan{Title: "Any", Duration: ptr(1), Price: ptr(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, gold.ID))
	plan, err := svc.Get(ctx, gold.ID)
	require.NoError(t, err)
	assert.Nil(t, plan)

	assert.ErrorIs(t, svc.Delete(ctx, gold.ID), ErrNotFound)
}
