package contracts

import (
	"context"

	"telehealth-service/internal/app/models"
)

type CalendarService interface {
	CreateEvent(ctx context.Context, event *models.CreateSessionMeetingEvent) (*models.CalendarEvent, error)
	CancelEvent(ctx context.Context, eventIDOrReference string) error
}
