package domain_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/core/domain"
)

type processor struct{ id int }

func TestNodeCache_GetOrCreate(t *testing.T) {
	cache := domain.NewNodeCache()
	calls := 0
	factory := func() (any, error) {
		calls++
		return &processor{id: calls}, nil
	}

	first, err := cache.GetOrCreate(domain.SlotStylesheetProcessor, factory)
	require.NoError(t, err)
	second, err := cache.GetOrCreate(domain.SlotStylesheetProcessor, factory)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, cache.Has(domain.SlotStylesheetProcessor))
	assert.False(t, cache.Has(domain.SlotModuleResolution))
}

func TestNodeCache_FailingFactoryStoresNothing(t *testing.T) {
	cache := domain.NewNodeCache()
	errBoom := errors.New("boom")

	_, err := cache.GetOrCreate(domain.SlotStylesheetProcessor, func() (any, error) {
		return nil, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.False(t, cache.Has(domain.SlotStylesheetProcessor))

	value, err := cache.GetOrCreate(domain.SlotStylesheetProcessor, func() (any, error) {
		return &processor{id: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, value.(*processor).id)
}

func TestNodeCache_ConcurrentFactoryRunsOnce(t *testing.T) {
	cache := domain.NewNodeCache()
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]*processor, 8)
	for i := range results {
		wg.Go(func() {
			p, err := domain.Memo(cache, domain.SlotModuleResolution, func() (*processor, error) {
				calls.Add(1)
				<-release
				return &processor{}, nil
			})
			assert.NoError(t, err)
			results[i] = p
		})
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, p := range results {
		assert.Same(t, results[0], p)
	}
}

func TestMemo_SlotType(t *testing.T) {
	cache := domain.NewNodeCache()
	_, err := domain.Memo(cache, domain.SlotStylesheetProcessor, func() (*processor, error) {
		return &processor{}, nil
	})
	require.NoError(t, err)

	_, err = domain.Memo(cache, domain.SlotStylesheetProcessor, func() (*domain.ModuleResolutionCache, error) {
		t.Fatal("factory must not run for a filled slot")
		return nil, nil
	})
	assert.ErrorIs(t, err, domain.ErrCacheSlotType)
}

func TestMemo_NilInterface(t *testing.T) {
	type styler interface{ Process(path string) (string, error) }

	cache := domain.NewNodeCache()
	calls := 0
	factory := func() (styler, error) {
		calls++
		return nil, nil
	}

	got, err := domain.Memo(cache, domain.SlotStylesheetProcessor, factory)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = domain.Memo(cache, domain.SlotStylesheetProcessor, factory)
	require.NoError(t, err, "a stored nil is not a type mismatch")
	assert.Nil(t, got)
	assert.Equal(t, 1, calls)
	assert.True(t, cache.Has(domain.SlotStylesheetProcessor))
}

func TestNodeCache_ResetAndDelete(t *testing.T) {
	cache := domain.NewNodeCache()
	for _, slot := range []domain.CacheSlot{domain.SlotModuleResolution, domain.SlotStylesheetProcessor} {
		_, err := cache.GetOrCreate(slot, func() (any, error) { return &processor{}, nil })
		require.NoError(t, err)
	}

	cache.Delete(domain.SlotModuleResolution)
	assert.False(t, cache.Has(domain.SlotModuleResolution))
	assert.True(t, cache.Has(domain.SlotStylesheetProcessor))

	cache.Reset()
	assert.False(t, cache.Has(domain.SlotStylesheetProcessor))
}
