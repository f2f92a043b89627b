package unitofwork

import (
	"context"
	"database/sql"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/services/core/earnings"
	healthSessions "telehealth-service/internal/app/services/core/health_sessions"
	"telehealth-service/internal/app/services/core/members"
	"telehealth-service/internal/app/services/core/transactions"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type postgresUnitOfWork struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewPostgresUnitOfWork(db *sqlx.DB, logger *zap.Logger) contracts.UnitOfWork {
	return &postgresUnitOfWork{
		DB:  db,
		Log: logger,
	}
}

// Do runs fn in a read-committed transaction. Repositories handed out by the
// scope share that transaction, so SELECT ... FOR UPDATE locks taken through
// them are held until commit or rollback.
func (u *postgresUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, scope contracts.TransactionScope) error) error {
	tx, err := u.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return exceptions.ErrPostgresDBBeginTx(err)
	}

	scope := &postgresTransactionScope{tx: tx}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, scope); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			u.Log.Error("postgresUnitOfWork.Do rollback failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(rbErr),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTx(err)
	}

	hookCtx := utils.DetachedContext(ctx)
	for _, hook := range scope.hooks {
		hook(hookCtx)
	}
	return nil
}

type postgresTransactionScope struct {
	tx    *sqlx.Tx
	hooks []func(ctx context.Context)
}

func (s *postgresTransactionScope) SessionTransactions() contracts.SessionTransactionRepository {
	return transactions.NewSessionTransactionPostgresRepository(s.tx)
}

func (s *postgresTransactionScope) WithdrawalTransactions() contracts.WithdrawalTransactionRepository {
	return transactions.NewWithdrawalTransactionPostgresRepository(s.tx)
}

func (s *postgresTransactionScope) HealthSessions() contracts.HealthSessionRepository {
	return healthSessions.NewHealthSessionPostgresRepository(s.tx)
}

func (s *postgresTransactionScope) Members() contracts.MemberRepository {
	return members.NewMemberPostgresRepository(s.tx)
}

func (s *postgresTransactionScope) Earnings() contracts.EarningsRepository {
	return earnings.NewEarningsPostgresRepository(s.tx)
}

func (s *postgresTransactionScope) AfterCommit(hook func(ctx context.Context)) {
	s.hooks = append(s.hooks, hook)
}
