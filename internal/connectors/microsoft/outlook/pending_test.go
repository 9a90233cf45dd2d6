package outlook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_Resolves(t *testing.T) {
	p := Start(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})

	v, err := p.Await()

	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// Settled operations keep their outcome.
	v, err = p.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestPending_Rejects(t *testing.T) {
	boom := errors.New("boom")
	p := Start(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})

	_, err := p.Await()

	assert.ErrorIs(t, err, boom)
}

func TestPending_PanicBecomesError(t *testing.T) {
	p := Start(context.Background(), func(context.Context) (int, error) {
		panic("bad")
	})

	_, err := p.Await()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestPending_Done(t *testing.T) {
	release := make(chan struct{})
	p := Start(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	select {
	case <-p.Done():
		t.Fatal("settled before release")
	case <-time.After(10 * time.Millisecond):
	}

	close(release)
	<-p.Done()
	v, _ := p.Await()
	assert.Equal(t, 1, v)
}

func TestThen(t *testing.T) {
	ctx := context.Background()
	first := Resolved(2, nil)

	second := Then(ctx, first, func(_ context.Context, v int) (string, error) {
		return "value", nil
	})
	v, err := second.Await()
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	called := false
	failed := Then(ctx, Resolved(0, errors.New("first failed")), func(_ context.Context, v int) (int, error) {
		called = true
		return v, nil
	})
	_, err = failed.Await()
	assert.EqualError(t, err, "first failed")
	assert.False(t, called)
}

func TestAwaitAll(t *testing.T) {
	second := errors.New("second")
	values, err := AwaitAll(
		Resolved(1, nil),
		Resolved(0, second),
		Resolved(3, errors.New("third")),
	)

	assert.ErrorIs(t, err, second)
	assert.Equal(t, []int{1, 0, 3}, values)
}
