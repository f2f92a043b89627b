package contracts

import "context"

// UnitOfWork runs fn inside one database transaction. Hooks registered on the
// scope through AfterCommit run only once the transaction has committed.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, scope TransactionScope) error) error
}

type TransactionScope interface {
	SessionTransactions() SessionTransactionRepository
	WithdrawalTransactions() WithdrawalTransactionRepository
	HealthSessions() HealthSessionRepository
	Members() MemberRepository
	Earnings() EarningsRepository
	AfterCommit(hook func(ctx context.Context))
}
