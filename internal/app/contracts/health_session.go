package contracts

import (
	"context"
	"time"

	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
)

type HealthSessionRepository interface {
	FindByReference(ctx context.Context, reference string) (*models.HealthSession, error)
	FindByReferenceForUpdate(ctx context.Context, reference string) (*models.HealthSession, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	// LockSlot serialises bookings of one professional slot until the
	// enclosing transaction ends.
	LockSlot(ctx context.Context, professionalID, date, slotTime string) error
	ExistsActiveAtSlot(ctx context.Context, professionalID, date, slotTime string, heldSince time.Time) (bool, error)
	ExistsScheduledAtSlot(ctx context.Context, professionalID, date, slotTime string) (bool, error)
	FindAwaitingMeeting(ctx context.Context, updatedBefore time.Time, limit int) ([]models.HealthSession, error)
	Create(ctx context.Context, session *models.HealthSession) error
	UpdateStatus(ctx context.Context, session *models.HealthSession) error
	UpdateMeetingLinkage(ctx context.Context, session *models.HealthSession) error
}

type MemberRepository interface {
	FindByID(ctx context.Context, memberID string) (*models.Member, error)
}

type HealthSessionUsecase interface {
	CancelSession(ctx context.Context, sessionReference, requesterID string) (*models.HealthSession, error)
}

type BookingUsecase interface {
	BookSession(ctx context.Context, request *requests.BookSessionRequest, patientID string) (*models.SessionTransaction, error)
}
