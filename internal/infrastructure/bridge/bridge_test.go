package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffline_AllCallsDegrade(t *testing.T) {
	var b Offline

	assert.ErrorIs(t, b.Resolve(), ErrOffline)
	assert.ErrorIs(t, b.Install(func(bool) {}), ErrOffline)
	assert.ErrorIs(t, b.Inject(true, false), ErrOffline)
	assert.False(t, b.Online())
}

func TestRecording_InjectsAfterResolve(t *testing.T) {
	rec := &Recording{}

	// Before resolve everything is offline.
	assert.ErrorIs(t, rec.Inject(true, false), ErrOffline)

	require.NoError(t, rec.Resolve())
	assert.True(t, rec.Online())

	require.NoError(t, rec.Inject(true, false))
	require.NoError(t, rec.Inject(false, true))
	assert.Equal(t, []Injection{
		{Down: true, Alt: false},
		{Down: false, Alt: true},
	}, rec.Injections)
}

func TestRecording_ForcedResolveFailure(t *testing.T) {
	boom := errors.New("symbol not found")
	rec := &Recording{ResolveErr: boom}

	assert.ErrorIs(t, rec.Resolve(), boom)
	assert.False(t, rec.Online())
	assert.ErrorIs(t, rec.Inject(true, false), ErrOffline)
	assert.Empty(t, rec.Injections)
}

func TestRecording_DeliverDrivesObserver(t *testing.T) {
	rec := &Recording{}
	require.NoError(t, rec.Resolve())

	var observed []bool
	require.NoError(t, rec.Install(func(down bool) {
		observed = append(observed, down)
	}))

	rec.Deliver(true)
	rec.Deliver(false)
	assert.Equal(t, []bool{true, false}, observed)
}

func TestLookupLayout(t *testing.T) {
	l, err := LookupLayout("2024.1")
	require.NoError(t, err)
	assert.Equal(t, "gi_input_manager", l.ManagerSym)
	assert.NotZero(t, l.Magic)

	_, err = LookupLayout("nightly-9999")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestSupportedBuilds(t *testing.T) {
	builds := SupportedBuilds()
	assert.Contains(t, builds, "2024.1")
	assert.Contains(t, builds, "2024.2")
}
