package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
)

// Store is an in-memory stand-in for the postgres tables. Repositories hand
// out copies, so a row only changes through an explicit update, and a failed
// UnitOfWork.Do restores the state it started from.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	sessions     map[string]models.HealthSession
	transactions []models.SessionTransaction
	withdrawals  map[string]models.WithdrawalTransaction
	members      map[string]models.Member
	reversals    []string
	nextID       int64

	// Fault injection. A non-nil error is returned by the matching call.
	ReverseEarningsErr   error
	UpdateTransactionErr error
	UpdateSessionErr     error
	FindMemberErr        error

	// Now stamps created_at and updated_at; time.Now when nil.
	Now func() time.Time

	Commits   int
	Rollbacks int
}

func NewStore() *Store {
	return &Store{
		sessions:    make(map[string]models.HealthSession),
		withdrawals: make(map[string]models.WithdrawalTransaction),
		members:     make(map[string]models.Member),
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) AddMember(member models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = member
}

func (s *Store) AddSession(session models.HealthSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	session.ID = s.nextID
	s.sessions[session.Reference] = session
}

func (s *Store) AddTransaction(transaction models.SessionTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	transaction.ID = s.nextID
	transaction.Kind = models.TransactionKindSession
	s.transactions = append(s.transactions, transaction)
}

func (s *Store) AddWithdrawal(withdrawal models.WithdrawalTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	withdrawal.ID = s.nextID
	withdrawal.Kind = models.TransactionKindWithdrawal
	s.withdrawals[withdrawal.Reference] = withdrawal
}

func (s *Store) hasPendingPaymentLocked(sessionReference string) bool {
	for _, transaction := range s.transactions {
		if transaction.SessionReference == sessionReference && transaction.Status == models.TransactionStatusPending {
			return true
		}
	}
	return false
}

// Session returns a copy of the stored session or nil.
func (s *Store) Session(reference string) *models.HealthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[reference]
	if !ok {
		return nil
	}
	return &session
}

// Transaction returns a copy of the stored session transaction or nil.
func (s *Store) Transaction(reference string) *models.SessionTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, transaction := range s.transactions {
		if transaction.Reference == reference {
			copied := transaction
			return &copied
		}
	}
	return nil
}

func (s *Store) Transactions() []models.SessionTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SessionTransaction(nil), s.transactions...)
}

func (s *Store) Sessions() []models.HealthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]models.HealthSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

func (s *Store) Withdrawal(reference string) *models.WithdrawalTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	withdrawal, ok := s.withdrawals[reference]
	if !ok {
		return nil
	}
	return &withdrawal
}

// Reversals lists the withdrawal references whose earnings were reversed.
func (s *Store) Reversals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.reversals...)
}

func (s *Store) SessionRepository() contracts.HealthSessionRepository {
	return &healthSessionRepository{store: s}
}

func (s *Store) SessionTransactionRepository() contracts.SessionTransactionRepository {
	return &sessionTransactionRepository{store: s}
}

type storeSnapshot struct {
	sessions     map[string]models.HealthSession
	transactions []models.SessionTransaction
	withdrawals  map[string]models.WithdrawalTransaction
	reversals    []string
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		sessions:     make(map[string]models.HealthSession, len(s.sessions)),
		transactions: append([]models.SessionTransaction(nil), s.transactions...),
		withdrawals:  make(map[string]models.WithdrawalTransaction, len(s.withdrawals)),
		reversals:    append([]string(nil), s.reversals...),
	}
	for key, value := range s.sessions {
		snap.sessions[key] = value
	}
	for key, value := range s.withdrawals {
		snap.withdrawals[key] = value
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = snap.sessions
	s.transactions = snap.transactions
	s.withdrawals = snap.withdrawals
	s.reversals = snap.reversals
}

// UnitOfWork serialises transactions, which is enough to stand in for the
// row locks taken by the postgres implementation.
type UnitOfWork struct {
	Store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{Store: store}
}

var _ contracts.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, scope contracts.TransactionScope) error) error {
	u.Store.txMu.Lock()
	snap := u.Store.snapshot()
	scope := &transactionScope{store: u.Store}

	if err := fn(ctx, scope); err != nil {
		u.Store.restore(snap)
		u.Store.Rollbacks++
		u.Store.txMu.Unlock()
		return err
	}
	u.Store.Commits++
	u.Store.txMu.Unlock()

	for _, hook := range scope.hooks {
		hook(ctx)
	}
	return nil
}

type transactionScope struct {
	store *Store
	hooks []func(ctx context.Context)
}

func (s *transactionScope) SessionTransactions() contracts.SessionTransactionRepository {
	return &sessionTransactionRepository{store: s.store}
}

func (s *transactionScope) WithdrawalTransactions() contracts.WithdrawalTransactionRepository {
	return &withdrawalTransactionRepository{store: s.store}
}

func (s *transactionScope) HealthSessions() contracts.HealthSessionRepository {
	return &healthSessionRepository{store: s.store}
}

func (s *transactionScope) Members() contracts.MemberRepository {
	return &memberRepository{store: s.store}
}

func (s *transactionScope) Earnings() contracts.EarningsRepository {
	return &earningsRepository{store: s.store}
}

func (s *transactionScope) AfterCommit(hook func(ctx context.Context)) {
	s.hooks = append(s.hooks, hook)
}

type healthSessionRepository struct {
	store *Store
}

func (r *healthSessionRepository) FindByReference(ctx context.Context, reference string) (*models.HealthSession, error) {
	return r.store.Session(reference), nil
}

func (r *healthSessionRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*models.HealthSession, error) {
	return r.store.Session(reference), nil
}

func (r *healthSessionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	return r.store.Session(reference) != nil, nil
}

func (r *healthSessionRepository) LockSlot(ctx context.Context, professionalID, date, slotTime string) error {
	return nil
}

func (r *healthSessionRepository) ExistsActiveAtSlot(ctx context.Context, professionalID, date, slotTime string, heldSince time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, session := range r.store.sessions {
		if session.ProfessionalID != professionalID || session.Date != date || session.Time != slotTime {
			continue
		}
		switch session.Status {
		case models.SessionStatusScheduled, models.SessionStatusRescheduled:
			return true, nil
		case models.SessionStatusPending:
			if session.CreatedAt.After(heldSince) && r.store.hasPendingPaymentLocked(session.Reference) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *healthSessionRepository) ExistsScheduledAtSlot(ctx context.Context, professionalID, date, slotTime string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, session := range r.store.sessions {
		if session.ProfessionalID == professionalID && session.Date == date && session.Time == slotTime &&
			(session.Status == models.SessionStatusScheduled || session.Status == models.SessionStatusRescheduled) {
			return true, nil
		}
	}
	return false, nil
}

func (r *healthSessionRepository) FindAwaitingMeeting(ctx context.Context, updatedBefore time.Time, limit int) ([]models.HealthSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var sessions []models.HealthSession
	for _, session := range r.store.sessions {
		if session.Status != models.SessionStatusScheduled && session.Status != models.SessionStatusRescheduled {
			continue
		}
		if session.HasExternalMeeting() || !session.UpdatedAt.Before(updatedBefore) {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].UpdatedAt.Before(sessions[j].UpdatedAt) })
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (r *healthSessionRepository) Create(ctx context.Context, session *models.HealthSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[session.Reference]; ok {
		return fmt.Errorf("duplicate session reference %s", session.Reference)
	}
	r.store.nextID++
	session.ID = r.store.nextID
	session.CreatedAt = r.store.now()
	session.UpdatedAt = session.CreatedAt
	r.store.sessions[session.Reference] = *session
	return nil
}

func (r *healthSessionRepository) UpdateStatus(ctx context.Context, session *models.HealthSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.UpdateSessionErr != nil {
		return r.store.UpdateSessionErr
	}
	stored, ok := r.store.sessions[session.Reference]
	if !ok {
		return errors.New("session not found")
	}
	stored.Status = session.Status
	stored.UpdatedAt = r.store.now()
	session.UpdatedAt = stored.UpdatedAt
	r.store.sessions[session.Reference] = stored
	return nil
}

func (r *healthSessionRepository) UpdateMeetingLinkage(ctx context.Context, session *models.HealthSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.UpdateSessionErr != nil {
		return r.store.UpdateSessionErr
	}
	stored, ok := r.store.sessions[session.Reference]
	if !ok {
		return errors.New("session not found")
	}
	stored.ExternalEventID = session.ExternalEventID
	stored.OtherEventReference = session.OtherEventReference
	stored.MeetingURL = session.MeetingURL
	stored.EventLink = session.EventLink
	stored.Status = session.Status
	stored.UpdatedAt = r.store.now()
	session.UpdatedAt = stored.UpdatedAt
	r.store.sessions[session.Reference] = stored
	return nil
}

type sessionTransactionRepository struct {
	store *Store
}

func (r *sessionTransactionRepository) FindByGroupReference(ctx context.Context, groupReference string) ([]models.SessionTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var group []models.SessionTransaction
	for _, transaction := range r.store.transactions {
		if transaction.GroupReference == groupReference || transaction.Reference == groupReference {
			group = append(group, transaction)
		}
	}
	return group, nil
}

func (r *sessionTransactionRepository) FindByGroupReferenceForUpdate(ctx context.Context, groupReference string) ([]models.SessionTransaction, error) {
	return r.FindByGroupReference(ctx, groupReference)
}

func (r *sessionTransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	return r.store.Transaction(reference) != nil, nil
}

func (r *sessionTransactionRepository) Create(ctx context.Context, transaction *models.SessionTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.transactions {
		if existing.Reference == transaction.Reference {
			return fmt.Errorf("duplicate transaction reference %s", transaction.Reference)
		}
	}
	r.store.nextID++
	transaction.ID = r.store.nextID
	transaction.Kind = models.TransactionKindSession
	r.store.transactions = append(r.store.transactions, *transaction)
	return nil
}

func (r *sessionTransactionRepository) UpdateOutcome(ctx context.Context, transaction *models.SessionTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.UpdateTransactionErr != nil {
		return r.store.UpdateTransactionErr
	}
	for i := range r.store.transactions {
		if r.store.transactions[i].Reference == transaction.Reference {
			r.store.transactions[i].Status = transaction.Status
			r.store.transactions[i].ExternalReference = transaction.ExternalReference
			r.store.transactions[i].Currency = transaction.Currency
			return nil
		}
	}
	return errors.New("transaction not found")
}

type withdrawalTransactionRepository struct {
	store *Store
}

func (r *withdrawalTransactionRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*models.WithdrawalTransaction, error) {
	return r.store.Withdrawal(reference), nil
}

func (r *withdrawalTransactionRepository) UpdateOutcome(ctx context.Context, withdrawal *models.WithdrawalTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.withdrawals[withdrawal.Reference]; !ok {
		return errors.New("withdrawal not found")
	}
	r.store.withdrawals[withdrawal.Reference] = *withdrawal
	return nil
}

type memberRepository struct {
	store *Store
}

func (r *memberRepository) FindByID(ctx context.Context, memberID string) (*models.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.FindMemberErr != nil {
		return nil, r.store.FindMemberErr
	}
	member, ok := r.store.members[memberID]
	if !ok {
		return nil, nil
	}
	return &member, nil
}

type earningsRepository struct {
	store *Store
}

func (r *earningsRepository) ReverseTransactionAndUpdateEarnings(ctx context.Context, withdrawal *models.WithdrawalTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.ReverseEarningsErr != nil {
		return r.store.ReverseEarningsErr
	}
	r.store.reversals = append(r.store.reversals, withdrawal.Reference)
	return nil
}
