package reconciliation

import (
	"context"
	"time"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
)

func buildCreateMeetingEvent(
	ctx context.Context,
	members contracts.MemberRepository,
	session *models.HealthSession,
	duration time.Duration,
) (*models.CreateSessionMeetingEvent, error) {
	startsAt, err := session.StartsAt()
	if err != nil {
		return nil, exceptions.ErrInvalidSessionSchedule(err, session.Date, session.Time)
	}

	patient, err := members.FindByID(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}
	professional, err := members.FindByID(ctx, session.ProfessionalID)
	if err != nil {
		return nil, err
	}

	event := &models.CreateSessionMeetingEvent{
		SessionReference: session.Reference,
		StartsAt:         startsAt,
		EndsAt:           startsAt.Add(duration),
		Timezone:         session.Timezone,
		Metadata: map[string]string{
			"session_reference": session.Reference,
		},
	}
	if patient != nil {
		event.Attendees = append(event.Attendees, patient.Email)
		event.PatientName = patient.FullName()
		event.Metadata["patient_email"] = patient.Email
		event.Metadata["patient_name"] = event.PatientName
	}
	if professional != nil {
		event.Attendees = append(event.Attendees, professional.Email)
		event.ProfessionalName = professional.FullName()
		event.Metadata["professional_email"] = professional.Email
		event.Metadata["professional_name"] = event.ProfessionalName
	}
	return event, nil
}
