package bookings

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/mocks"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/core/reconciliation"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBookingUsecase(store *mocks.Store, refs ...string) *bookingUsecase {
	next := 0
	return &bookingUsecase{
		UnitOfWork:  mocks.NewUnitOfWork(store),
		Log:         zap.NewNop(),
		MaxAttempts: 3,
		SlotHold:    30 * time.Minute,
		generateRef: func(prefix string) string {
			if next < len(refs) {
				next++
				return prefix + refs[next-1]
			}
			next++
			return fmt.Sprintf("%s%04d", prefix, next)
		},
		now: func() time.Time {
			return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		},
	}
}

func validBookingRequest() *requests.BookSessionRequest {
	return &requests.BookSessionRequest{
		ProfessionalID: "pro-1",
		Date:           "2026-01-12",
		Time:           "10:30",
		Timezone:       "Africa/Lagos",
		Gateway:        "PAYSTACK",
		Amount:         decimal.NewFromInt(15000),
		Currency:       "NGN",
	}
}

func storeWithProfessional() *mocks.Store {
	store := mocks.NewStore()
	store.AddMember(models.Member{ID: "pro-1", Email: "pro@example.com", FirstName: "Ada", LastName: "Obi", MemberType: models.MemberTypeProfessional})
	store.AddMember(models.Member{ID: "pat-1", Email: "pat@example.com", FirstName: "Tunde", LastName: "Bello", MemberType: models.MemberTypePatient})
	store.AddMember(models.Member{ID: "pat-2", Email: "kemi@example.com", FirstName: "Kemi", LastName: "Ade", MemberType: models.MemberTypePatient})
	return store
}

func TestBookSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates pending session and transaction", func(t *testing.T) {
		store := storeWithProfessional()
		uc := newTestBookingUsecase(store)

		transaction, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, transaction.Status)
		assert.Equal(t, models.GatewayPaystack, transaction.Gateway)
		assert.Equal(t, "pat-1", transaction.PayerID)
		assert.True(t, transaction.Amount.Equal(decimal.NewFromInt(15000)))
		assert.Regexp(t, `^TXN-`, transaction.Reference)
		assert.Regexp(t, `^GRP-`, transaction.GroupReference)

		session := store.Session(transaction.SessionReference)
		require.NotNil(t, session, "session should be persisted with the transaction")
		assert.Equal(t, models.SessionStatusPending, session.Status)
		assert.Equal(t, "pro-1", session.ProfessionalID)
		assert.Equal(t, "Africa/Lagos", session.Timezone)
		assert.Len(t, store.Transactions(), 1)
	})

	t.Run("Rejects invalid request", func(t *testing.T) {
		store := storeWithProfessional()
		uc := newTestBookingUsecase(store)
		request := validBookingRequest()
		request.Gateway = "STRIPE"

		_, err := uc.BookSession(ctx, request, "pat-1")

		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
		assert.Empty(t, store.Transactions())
	})

	t.Run("Rejects non positive amount", func(t *testing.T) {
		uc := newTestBookingUsecase(storeWithProfessional())
		request := validBookingRequest()
		request.Amount = decimal.Zero

		_, err := uc.BookSession(ctx, request, "pat-1")

		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("Rejects session in the past", func(t *testing.T) {
		uc := newTestBookingUsecase(storeWithProfessional())
		request := validBookingRequest()
		request.Date = "2026-01-09"

		_, err := uc.BookSession(ctx, request, "pat-1")

		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("Rejects unknown professional", func(t *testing.T) {
		uc := newTestBookingUsecase(storeWithProfessional())
		request := validBookingRequest()
		request.ProfessionalID = "pat-1"

		_, err := uc.BookSession(ctx, request, "pat-1")

		assert.Equal(t, http.StatusNotFound, exceptions.StatusCodeOf(err))
	})

	t.Run("Rejects taken slot", func(t *testing.T) {
		store := storeWithProfessional()
		store.AddSession(models.HealthSession{
			Reference:      "HS-EXISTING",
			ProfessionalID: "pro-1",
			Date:           "2026-01-12",
			Time:           "10:30",
			Timezone:       "Africa/Lagos",
			Status:         models.SessionStatusScheduled,
		})
		uc := newTestBookingUsecase(store)

		_, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")

		assert.Equal(t, http.StatusConflict, exceptions.StatusCodeOf(err))
		assert.Empty(t, store.Transactions())
	})

	t.Run("Canceled session frees the slot", func(t *testing.T) {
		store := storeWithProfessional()
		store.AddSession(models.HealthSession{
			Reference:      "HS-CANCELED",
			ProfessionalID: "pro-1",
			Date:           "2026-01-12",
			Time:           "10:30",
			Timezone:       "Africa/Lagos",
			Status:         models.SessionStatusCanceled,
		})
		uc := newTestBookingUsecase(store)

		_, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")

		assert.NoError(t, err)
	})

	t.Run("Regenerates colliding reference", func(t *testing.T) {
		store := storeWithProfessional()
		store.AddSession(models.HealthSession{Reference: "HS-TAKEN", ProfessionalID: "pro-9", Date: "2026-02-01", Time: "08:00", Timezone: "UTC"})
		uc := newTestBookingUsecase(store, "TAKEN", "FREE")

		transaction, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")

		require.NoError(t, err)
		assert.Equal(t, "HS-FREE", transaction.SessionReference)
	})

	t.Run("Fails when every reference collides", func(t *testing.T) {
		store := storeWithProfessional()
		store.AddSession(models.HealthSession{Reference: "HS-TAKEN", ProfessionalID: "pro-9", Date: "2026-02-01", Time: "08:00", Timezone: "UTC"})
		uc := newTestBookingUsecase(store, "TAKEN", "TAKEN", "TAKEN")

		_, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")

		assert.Equal(t, http.StatusInternalServerError, exceptions.StatusCodeOf(err))
		assert.Equal(t, 1, store.Rollbacks)
		assert.Len(t, store.Sessions(), 1, "no session should be created")
	})
}

func TestBookSession_SlotHold(t *testing.T) {
	ctx := context.Background()

	setup := func() (*mocks.Store, *bookingUsecase, func(time.Duration)) {
		store := storeWithProfessional()
		uc := newTestBookingUsecase(store)
		current := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		clock := func() time.Time { return current }
		store.Now = clock
		uc.now = clock
		return store, uc, func(d time.Duration) { current = current.Add(d) }
	}

	t.Run("Unpaid booking holds the slot", func(t *testing.T) {
		_, uc, advance := setup()
		_, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")
		require.NoError(t, err)
		advance(29 * time.Minute)

		_, err = uc.BookSession(ctx, validBookingRequest(), "pat-2")

		assert.Equal(t, http.StatusConflict, exceptions.StatusCodeOf(err))
	})

	t.Run("Abandoned booking releases the slot after the hold", func(t *testing.T) {
		store, uc, advance := setup()
		first, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")
		require.NoError(t, err)
		advance(31 * time.Minute)

		second, err := uc.BookSession(ctx, validBookingRequest(), "pat-2")

		require.NoError(t, err)
		assert.NotEqual(t, first.SessionReference, second.SessionReference)
		assert.Equal(t, models.SessionStatusPending, store.Session(first.SessionReference).Status)
	})

	t.Run("Failed charge releases the slot at once", func(t *testing.T) {
		store, uc, _ := setup()
		first, err := uc.BookSession(ctx, validBookingRequest(), "pat-1")
		require.NoError(t, err)

		reconciler := reconciliation.NewTransactionReconciler(
			mocks.NewUnitOfWork(store),
			store.SessionTransactionRepository(),
			[]contracts.GatewayStatusClient{&mocks.StatusClient{GatewayName: models.GatewayPaystack, Status: "failed"}},
			&mocks.MeetingPublisher{},
			zap.NewNop(),
			&config.InternalConfig{},
		)
		require.NoError(t, reconciler.ReconcileCharge(ctx, &models.PaymentValidation{
			Gateway:              models.GatewayPaystack,
			TransactionReference: first.GroupReference,
			Status:               "failed",
		}))
		require.Equal(t, models.TransactionStatusFailed, store.Transaction(first.Reference).Status)
		require.Equal(t, models.SessionStatusPending, store.Session(first.SessionReference).Status)

		second, err := uc.BookSession(ctx, validBookingRequest(), "pat-2")

		require.NoError(t, err)
		assert.Equal(t, "pat-2", second.PayerID)
	})

	t.Run("Scheduled session keeps the slot past the hold", func(t *testing.T) {
		store, uc, advance := setup()
		store.AddSession(models.HealthSession{
			Reference:      "HS-PAID",
			PatientID:      "pat-1",
			ProfessionalID: "pro-1",
			Date:           "2026-01-12",
			Time:           "10:30",
			Timezone:       "Africa/Lagos",
			Status:         models.SessionStatusScheduled,
		})
		advance(24 * time.Hour)

		_, err := uc.BookSession(ctx, validBookingRequest(), "pat-2")

		assert.Equal(t, http.StatusConflict, exceptions.StatusCodeOf(err))
	})
}
