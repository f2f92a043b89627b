package healthSessions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"telehealth-service/internal/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type healthSessionPostgresRepository struct {
	DB sqlx.ExtContext
}

func NewHealthSessionPostgresRepository(db sqlx.ExtContext) contracts.HealthSessionRepository {
	return &healthSessionPostgresRepository{
		DB: db,
	}
}

func (repo *healthSessionPostgresRepository) FindByReference(ctx context.Context, reference string) (*models.HealthSession, error) {
	return repo.findOne(ctx, queries.GetHealthSessionByReference, reference)
}

func (repo *healthSessionPostgresRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*models.HealthSession, error) {
	return repo.findOne(ctx, queries.GetHealthSessionByReferenceForUpdate, reference)
}

func (repo *healthSessionPostgresRepository) findOne(ctx context.Context, query, reference string) (*models.HealthSession, error) {
	var session models.HealthSession
	err := sqlx.GetContext(ctx, repo.DB, &session, query, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &session, nil
}

func (repo *healthSessionPostgresRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, repo.DB, &exists, queries.ExistsHealthSessionByReference, reference); err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (repo *healthSessionPostgresRepository) LockSlot(ctx context.Context, professionalID, date, slotTime string) error {
	if _, err := repo.DB.ExecContext(ctx, queries.LockHealthSessionSlot, professionalID, date, slotTime); err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}
	return nil
}

// ExistsActiveAtSlot reports whether the slot is booked or still held by an
// unpaid session created after heldSince.
func (repo *healthSessionPostgresRepository) ExistsActiveAtSlot(ctx context.Context, professionalID, date, slotTime string, heldSince time.Time) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, repo.DB, &exists, queries.ExistsActiveHealthSessionAtSlot, professionalID, date, slotTime, heldSince); err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (repo *healthSessionPostgresRepository) ExistsScheduledAtSlot(ctx context.Context, professionalID, date, slotTime string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, repo.DB, &exists, queries.ExistsScheduledHealthSessionAtSlot, professionalID, date, slotTime); err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

// FindAwaitingMeeting lists confirmed sessions that still have no calendar
// event and were last touched before updatedBefore, oldest first.
func (repo *healthSessionPostgresRepository) FindAwaitingMeeting(ctx context.Context, updatedBefore time.Time, limit int) ([]models.HealthSession, error) {
	var sessions []models.HealthSession
	if err := sqlx.SelectContext(ctx, repo.DB, &sessions, queries.GetHealthSessionsAwaitingMeeting, updatedBefore, limit); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return sessions, nil
}

func (repo *healthSessionPostgresRepository) Create(ctx context.Context, session *models.HealthSession) error {
	row := repo.DB.QueryRowxContext(ctx, queries.CreateHealthSession,
		session.Reference,
		session.PatientID,
		session.ProfessionalID,
		session.Date,
		session.Time,
		session.Timezone,
		session.Status,
	)
	if err := row.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		if utils.IsUniqueViolation(err) {
			return exceptions.ErrSlotUnavailable(session.ProfessionalID, session.Date, session.Time)
		}
		return exceptions.ErrPostgresDBCreateData(err)
	}
	return nil
}

func (repo *healthSessionPostgresRepository) UpdateStatus(ctx context.Context, session *models.HealthSession) error {
	row := repo.DB.QueryRowxContext(ctx, queries.UpdateHealthSessionStatus, session.Reference, session.Status)
	if err := row.Scan(&session.UpdatedAt); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *healthSessionPostgresRepository) UpdateMeetingLinkage(ctx context.Context, session *models.HealthSession) error {
	row := repo.DB.QueryRowxContext(ctx, queries.UpdateHealthSessionMeetingLinkage,
		session.Reference,
		session.ExternalEventID,
		session.OtherEventReference,
		session.MeetingURL,
		session.EventLink,
		session.Status,
	)
	if err := row.Scan(&session.UpdatedAt); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
