package banking

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/models"
	redisRepository "telehealth-service/internal/app/services/shared/redis"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBankListProvider struct {
	banks []models.Bank
	err   error
	calls int32
}

func (p *stubBankListProvider) ListBanks(ctx context.Context, currency string) ([]models.Bank, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return nil, p.err
	}
	return p.banks, nil
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func newTestBankingService(t *testing.T, mr *miniredis.Miniredis, provider *stubBankListProvider) *bankingService {
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cfg := &config.InternalConfig{}
	cfg.Banking.CacheTTLInHours = 1
	return NewBankingService(redisRepository.NewRedisRepository(client), provider, zap.NewNop(), cfg).(*bankingService)
}

func TestBankingService_GetBanks(t *testing.T) {
	ctx := context.Background()
	banks := []models.Bank{
		{Name: "Access Bank", Code: "044", Currency: "NGN"},
		{Name: "Guaranty Trust Bank", Code: "058", Currency: "NGN"},
	}

	t.Run("Second read is served from cache", func(t *testing.T) {
		provider := &stubBankListProvider{banks: banks}
		mr := setupMiniredis(t)
		service := newTestBankingService(t, mr, provider)

		first, err := service.GetBanks(ctx, "ngn")
		require.NoError(t, err)
		second, err := service.GetBanks(ctx, "NGN")
		require.NoError(t, err)

		assert.Equal(t, banks, first)
		assert.Equal(t, banks, second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
		assert.True(t, mr.Exists("banks:NGN"))
	})

	t.Run("Expired cache is refetched", func(t *testing.T) {
		provider := &stubBankListProvider{banks: banks}
		mr := setupMiniredis(t)
		service := newTestBankingService(t, mr, provider)
		_, err := service.GetBanks(ctx, "NGN")
		require.NoError(t, err)

		mr.FastForward(2 * time.Hour)
		_, err = service.GetBanks(ctx, "NGN")

		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
	})

	t.Run("Unreadable cache entry is replaced", func(t *testing.T) {
		provider := &stubBankListProvider{banks: banks}
		mr := setupMiniredis(t)
		require.NoError(t, mr.Set("banks:NGN", "not-json"))
		service := newTestBankingService(t, mr, provider)

		got, err := service.GetBanks(ctx, "NGN")

		require.NoError(t, err)
		assert.Equal(t, banks, got)
	})

	t.Run("Provider error is returned", func(t *testing.T) {
		providerErr := errors.New("paystack unavailable")
		provider := &stubBankListProvider{err: providerErr}
		service := newTestBankingService(t, setupMiniredis(t), provider)

		_, err := service.GetBanks(ctx, "NGN")

		assert.ErrorIs(t, err, providerErr)
	})
}

func TestBankingService_FindBankName(t *testing.T) {
	ctx := context.Background()
	provider := &stubBankListProvider{banks: []models.Bank{{Name: "Guaranty Trust Bank", Code: "058", Currency: "NGN"}}}
	service := newTestBankingService(t, setupMiniredis(t), provider)

	name, err := service.FindBankName(ctx, "NGN", "058")
	require.NoError(t, err)
	assert.Equal(t, "Guaranty Trust Bank", name)

	_, err = service.FindBankName(ctx, "NGN", "999")
	assert.Equal(t, http.StatusNotFound, exceptions.StatusCodeOf(err))
}
