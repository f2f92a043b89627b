package banking

import (
	"context"
	"strings"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultBankListTTL = 12 * time.Hour

type bankingService struct {
	RedisRepository contracts.RedisRepository
	Provider        contracts.BankListProvider
	Log             *zap.Logger
	TTL             time.Duration
}

func NewBankingService(
	redisRepository contracts.RedisRepository,
	provider contracts.BankListProvider,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.BankingService {
	ttl := time.Duration(internalConfig.Banking.CacheTTLInHours) * time.Hour
	if ttl <= 0 {
		ttl = defaultBankListTTL
	}
	return &bankingService{
		RedisRepository: redisRepository,
		Provider:        provider,
		Log:             logger,
		TTL:             ttl,
	}
}

// GetBanks serves the bank list from cache. An expired or missing entry is
// refetched from the provider and cached again.
func (s *bankingService) GetBanks(ctx context.Context, currency string) ([]models.Bank, error) {
	requestID := utils.GetRequestID(ctx)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	key := constvars.RedisBankListKeyPrefix + currency

	cached, err := s.RedisRepository.Get(ctx, key)
	if err != nil {
		s.Log.Warn("bankingService.GetBanks error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	if cached != "" {
		var banks []models.Bank
		if err := json.Unmarshal([]byte(cached), &banks); err == nil {
			return banks, nil
		}
		s.Log.Warn("bankingService.GetBanks discarding unreadable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
	}

	banks, err := s.Provider.ListBanks(ctx, currency)
	if err != nil {
		return nil, err
	}

	if err := s.RedisRepository.Set(ctx, key, banks, s.TTL); err != nil {
		s.Log.Warn("bankingService.GetBanks error caching bank list",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	return banks, nil
}

func (s *bankingService) FindBankName(ctx context.Context, currency, bankCode string) (string, error) {
	banks, err := s.GetBanks(ctx, currency)
	if err != nil {
		return "", err
	}
	for _, bank := range banks {
		if bank.Code == bankCode {
			return bank.Name, nil
		}
	}
	return "", exceptions.ErrBankNotFound(bankCode, currency)
}
