package memstore

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/internal/testutil/fixtures"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return strconv.Itoa(n)
	})
}

func TestStore_CreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := New(zap.NewNop(), sequentialIDs())

	result, err := s.Create(ctx, fixtures.NewDraft().WithID("ignored").Build())
	require.NoError(t, err)
	assert.True(t, result.Success)

	_, err = s.Create(ctx, fixtures.NewDraft().Mastercard().Build())
	require.NoError(t, err)

	methods, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "1", methods[0].ID)
	assert.Equal(t, "2", methods[1].ID)
	assert.Equal(t, "Mastercard", methods[1].Issuer)
}

func TestStore_DefaultIDsAreUUIDs(t *testing.T) {
	s := New(nil, WithSeed(DemoSeed()...))

	methods, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Len(t, methods[0].ID, 36)
	assert.NotEqual(t, methods[0].ID, methods[1].ID)
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := New(nil, sequentialIDs(), WithSeed(fixtures.NewDraft().Build()))

	methods, _ := s.List(context.Background())
	methods[0].Issuer = "mutated"

	again, _ := s.List(context.Background())
	assert.Equal(t, "Visa", again[0].Issuer)
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	s := New(nil, sequentialIDs(), WithSeed(fixtures.NewDraft().Build()))

	_, err := s.Update(ctx, "1", fixtures.NewPaymentMethod().WithID("other").Active().Build())
	require.NoError(t, err)

	methods, _ := s.List(ctx)
	assert.Equal(t, "1", methods[0].ID)
	assert.True(t, methods[0].Active)

	_, err = s.Update(ctx, "9", fixtures.NewPaymentMethod().Build())
	assert.True(t, errors.Is(err, domain.ErrPMNotFound))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := New(nil, sequentialIDs(), WithSeed(fixtures.NewDraft().Build(), fixtures.NewDraft().Build()))

	_, err := s.Delete(ctx, "1")
	require.NoError(t, err)

	methods, _ := s.List(ctx)
	require.Len(t, methods, 1)
	assert.Equal(t, "2", methods[0].ID)

	_, err = s.Delete(ctx, "1")
	assert.True(t, errors.Is(err, domain.ErrPMNotFound))
}

func TestStore_SetActive(t *testing.T) {
	ctx := context.Background()
	s := New(nil, sequentialIDs(), WithSeed(
		fixtures.NewDraft().Active().Build(),
		fixtures.NewDraft().Build(),
		fixtures.NewDraft().Build(),
	))

	_, err := s.SetActive(ctx, "3")
	require.NoError(t, err)

	methods, _ := s.List(ctx)
	assert.Equal(t, 1, domain.CountActive(methods))
	assert.True(t, methods[2].Active)

	_, err = s.SetActive(ctx, "9")
	assert.True(t, errors.Is(err, domain.ErrPMNotFound))
	methods, _ = s.List(ctx)
	assert.True(t, methods[2].Active, "failed activation leaves the store unchanged")
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(nil)

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Create(ctx, fixtures.NewDraft().Build())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(context.Background(), fixtures.NewDraft().Build())
		}()
	}
	wg.Wait()

	methods, _ := s.List(context.Background())
	assert.Len(t, methods, 20)
}
