package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/mock"
)

// StatusClient answers gateway status queries with a fixed status.
type StatusClient struct {
	GatewayName models.PaymentGateway
	Status      string
	Err         error
	calls       int32
}

var _ contracts.GatewayStatusClient = (*StatusClient)(nil)

func (c *StatusClient) Gateway() models.PaymentGateway {
	return c.GatewayName
}

func (c *StatusClient) GetTransactionStatusByReference(ctx context.Context, reference string) (string, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Status, nil
}

func (c *StatusClient) Calls() int {
	return int(atomic.LoadInt32(&c.calls))
}

// MeetingPublisher records every published meeting event.
type MeetingPublisher struct {
	mu       sync.Mutex
	created  []models.CreateSessionMeetingEvent
	canceled []models.CancelSessionMeetingEvent
	Err      error
}

var _ contracts.MeetingEventPublisher = (*MeetingPublisher)(nil)

func (p *MeetingPublisher) PublishCreateSession(ctx context.Context, events []models.CreateSessionMeetingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.created = append(p.created, events...)
	return nil
}

func (p *MeetingPublisher) PublishCancelSession(ctx context.Context, event models.CancelSessionMeetingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.canceled = append(p.canceled, event)
	return nil
}

func (p *MeetingPublisher) Created() []models.CreateSessionMeetingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.CreateSessionMeetingEvent(nil), p.created...)
}

func (p *MeetingPublisher) Canceled() []models.CancelSessionMeetingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.CancelSessionMeetingEvent(nil), p.canceled...)
}

// Calendar hands out sequential event ids.
type Calendar struct {
	mu        sync.Mutex
	created   []models.CreateSessionMeetingEvent
	canceled  []string
	counter   int
	CreateErr error
	CancelErr error
	// BeforeReturn runs after an event is created and before it is returned.
	BeforeReturn func()
}

var _ contracts.CalendarService = (*Calendar)(nil)

func (c *Calendar) CreateEvent(ctx context.Context, event *models.CreateSessionMeetingEvent) (*models.CalendarEvent, error) {
	c.mu.Lock()
	if c.CreateErr != nil {
		c.mu.Unlock()
		return nil, c.CreateErr
	}
	c.counter++
	c.created = append(c.created, *event)
	id := fmt.Sprintf("evt-%d", c.counter)
	hook := c.BeforeReturn
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	return &models.CalendarEvent{
		ID:         id,
		ICalUID:    id + "@google.com",
		MeetingURL: "https://meet.google.com/" + id,
		HTMLLink:   "https://calendar.google.com/event?eid=" + id,
	}, nil
}

func (c *Calendar) CancelEvent(ctx context.Context, eventIDOrReference string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CancelErr != nil {
		return c.CancelErr
	}
	c.canceled = append(c.canceled, eventIDOrReference)
	return nil
}

func (c *Calendar) Created() []models.CreateSessionMeetingEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CreateSessionMeetingEvent(nil), c.created...)
}

func (c *Calendar) Canceled() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.canceled...)
}

// MeetingQueue is an in-memory meeting queue with explicit acknowledgements.
type MeetingQueue struct {
	mu         sync.Mutex
	pending    []models.QueuedMeetingIntent
	nextTag    uint64
	Enqueued   []models.MeetingIntent
	Reenqueued []models.MeetingIntent
	Dead       []models.MeetingIntent
	Acked      []uint64
	EnqueueErr error
	FetchErr   error
}

var _ contracts.MeetingQueueService = (*MeetingQueue)(nil)

func (q *MeetingQueue) push(intent models.MeetingIntent) {
	q.nextTag++
	q.pending = append(q.pending, models.QueuedMeetingIntent{DeliveryTag: q.nextTag, Intent: intent})
}

func (q *MeetingQueue) Enqueue(ctx context.Context, intent *models.MeetingIntent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.Enqueued = append(q.Enqueued, *intent)
	q.push(*intent)
	return nil
}

func (q *MeetingQueue) Reenqueue(ctx context.Context, intent *models.MeetingIntent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Reenqueued = append(q.Reenqueued, *intent)
	q.push(*intent)
	return nil
}

func (q *MeetingQueue) EnqueueToDeadQueue(ctx context.Context, intent *models.MeetingIntent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Dead = append(q.Dead, *intent)
	return nil
}

func (q *MeetingQueue) FetchN(ctx context.Context, max int) ([]models.QueuedMeetingIntent, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.FetchErr != nil {
		return nil, q.FetchErr
	}
	if max > len(q.pending) {
		max = len(q.pending)
	}
	items := append([]models.QueuedMeetingIntent(nil), q.pending[:max]...)
	q.pending = q.pending[max:]
	return items, nil
}

func (q *MeetingQueue) AckMessage(ctx context.Context, deliveryTag uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Acked = append(q.Acked, deliveryTag)
	return nil
}

func (q *MeetingQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Locker grants or refuses every lock according to Acquire.
type Locker struct {
	Acquire  bool
	Err      error
	Unlocked int32
}

var _ contracts.LockerService = (*Locker)(nil)

func (l *Locker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if l.Err != nil {
		return false, "", l.Err
	}
	if !l.Acquire {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (l *Locker) Unlock(ctx context.Context, key, lockValue string) error {
	atomic.AddInt32(&l.Unlocked, 1)
	return nil
}

func (l *Locker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

// BankingService resolves bank names from a fixed code table.
type BankingService struct {
	Names map[string]string
	Err   error
	calls int32
}

var _ contracts.BankingService = (*BankingService)(nil)

func (b *BankingService) GetBanks(ctx context.Context, currency string) ([]models.Bank, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	banks := make([]models.Bank, 0, len(b.Names))
	for code, name := range b.Names {
		banks = append(banks, models.Bank{Name: name, Code: code, Currency: currency})
	}
	return banks, nil
}

func (b *BankingService) FindBankName(ctx context.Context, currency, bankCode string) (string, error) {
	atomic.AddInt32(&b.calls, 1)
	if b.Err != nil {
		return "", b.Err
	}
	return b.Names[bankCode], nil
}

func (b *BankingService) Calls() int {
	return int(atomic.LoadInt32(&b.calls))
}

type TransactionReconcilerMock struct {
	mock.Mock
}

func (m *TransactionReconcilerMock) ReconcileCharge(ctx context.Context, validation *models.PaymentValidation) error {
	args := m.Called(ctx, validation)
	return args.Error(0)
}

type WithdrawalReconcilerMock struct {
	mock.Mock
}

func (m *WithdrawalReconcilerMock) ReconcileTransfer(ctx context.Context, validation *models.TransferValidation) error {
	args := m.Called(ctx, validation)
	return args.Error(0)
}

type RetryQueueMock struct {
	mock.Mock
}

func (m *RetryQueueMock) ScheduleChargeRetry(ctx context.Context, validation *models.PaymentValidation) error {
	args := m.Called(ctx, validation)
	return args.Error(0)
}

func (m *RetryQueueMock) ScheduleTransferRetry(ctx context.Context, validation *models.TransferValidation) error {
	args := m.Called(ctx, validation)
	return args.Error(0)
}

type WebhookArchiveMock struct {
	mock.Mock
}

func (m *WebhookArchiveMock) Archive(ctx context.Context, gateway models.PaymentGateway, rawBody []byte) (string, error) {
	args := m.Called(ctx, gateway, rawBody)
	return args.String(0), args.Error(1)
}

type MeetingProvisionerMock struct {
	mock.Mock
}

func (m *MeetingProvisionerMock) Provision(ctx context.Context, intent *models.MeetingIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

type MeetingRecoveryMock struct {
	mock.Mock
}

func (m *MeetingRecoveryMock) RecoverMissingMeetings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type BookingUsecaseMock struct {
	mock.Mock
}

func (m *BookingUsecaseMock) BookSession(ctx context.Context, request *requests.BookSessionRequest, patientID string) (*models.SessionTransaction, error) {
	args := m.Called(ctx, request, patientID)
	transaction, _ := args.Get(0).(*models.SessionTransaction)
	return transaction, args.Error(1)
}

type HealthSessionUsecaseMock struct {
	mock.Mock
}

func (m *HealthSessionUsecaseMock) CancelSession(ctx context.Context, sessionReference, requesterID string) (*models.HealthSession, error) {
	args := m.Called(ctx, sessionReference, requesterID)
	session, _ := args.Get(0).(*models.HealthSession)
	return session, args.Error(1)
}

type WebhookUsecaseMock struct {
	mock.Mock
}

func (m *WebhookUsecaseMock) ValidateAndCompleteTransaction(ctx context.Context, rawBody []byte, gatewayHint string) {
	m.Called(ctx, rawBody, gatewayHint)
}
