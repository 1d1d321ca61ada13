package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc := NewService(NewMemoryStore()).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestServiceSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	id, state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, NewState(), state)

	loaded, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	require.NoError(t, svc.EndSession(ctx, id))
	_, err = svc.GetSession(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceApplyPersistsState(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	id, _, err := svc.StartSession(ctx)
	require.NoError(t, err)

	next, err := svc.Apply(ctx, id, SubmitAddress{Address: testAddress()})
	require.NoError(t, err)
	assert.Equal(t, StepWaste, next.Step)

	loaded, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, next, loaded)
}

func TestServiceApplyRejectedActionLeavesStateUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	id, _, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, id, SubmitAddress{Address: testAddress()})
	require.NoError(t, err)

	prev, err := svc.GetSession(ctx, id)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, id, SubmitWasteTypes{})
	assert.ErrorIs(t, err, ErrNoWasteSelected)

	loaded, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, prev, loaded)
}

func TestServiceApplyUnknownSession(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Apply(t.Context(), "no-such-session", Back{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	a, _, err := svc.StartSession(ctx)
	require.NoError(t, err)
	b, _, err := svc.StartSession(ctx)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	_, err = svc.Apply(ctx, a, SubmitAddress{Address: testAddress()})
	require.NoError(t, err)

	stateB, err := svc.GetSession(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, StepAddress, stateB.Step)
	assert.Nil(t, stateB.Draft.Address)
}
