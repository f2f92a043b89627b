package calendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	defaultCalendarID     = "primary"
	conferenceSolutionKey = "hangoutsMeet"
	sendUpdatesAll        = "all"
)

type googleCalendarService struct {
	Service    *gcal.Service
	CalendarID string
	Log        *zap.Logger
}

func NewGoogleCalendarService(ctx context.Context, internalConfig *config.InternalConfig, logger *zap.Logger, opts ...option.ClientOption) (contracts.CalendarService, error) {
	if internalConfig.Calendar.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(internalConfig.Calendar.CredentialsFile))
	}
	service, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	calendarID := internalConfig.Calendar.CalendarID
	if calendarID == "" {
		calendarID = defaultCalendarID
	}
	return &googleCalendarService{
		Service:    service,
		CalendarID: calendarID,
		Log:        logger,
	}, nil
}

// CreateEvent creates the event with a Meet conference. The session
// reference is the conference request id, so a repeated request for the
// same session is recognised by the provider.
func (s *googleCalendarService) CreateEvent(ctx context.Context, event *models.CreateSessionMeetingEvent) (*models.CalendarEvent, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("googleCalendarService.CreateEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
	)

	attendees := make([]*gcal.EventAttendee, 0, len(event.Attendees))
	for _, email := range event.Attendees {
		if email == "" {
			continue
		}
		attendees = append(attendees, &gcal.EventAttendee{Email: email})
	}

	privateProperties := make(map[string]string, len(event.Metadata))
	for key, value := range event.Metadata {
		privateProperties[key] = value
	}

	request := &gcal.Event{
		Summary:     meetingSummary(event),
		Description: "Health session " + event.SessionReference,
		Start: &gcal.EventDateTime{
			DateTime: event.StartsAt.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.EndsAt.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		Attendees: attendees,
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: privateProperties,
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: event.SessionReference,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: conferenceSolutionKey,
				},
			},
		},
	}

	created, err := s.Service.Events.Insert(s.CalendarID, request).
		ConferenceDataVersion(1).
		SendUpdates(sendUpdatesAll).
		Context(ctx).
		Do()
	if err != nil {
		s.Log.Error("googleCalendarService.CreateEvent error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
			zap.Error(err),
		)
		return nil, exceptions.ErrCalendarCreateEvent(err, event.SessionReference)
	}

	return &models.CalendarEvent{
		ID:         created.Id,
		ICalUID:    created.ICalUID,
		MeetingURL: created.HangoutLink,
		HTMLLink:   created.HtmlLink,
	}, nil
}

// CancelEvent treats an event that no longer exists as cancelled.
func (s *googleCalendarService) CancelEvent(ctx context.Context, eventIDOrReference string) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("googleCalendarService.CancelEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingEventIDKey, eventIDOrReference),
	)

	err := s.Service.Events.Delete(s.CalendarID, eventIDOrReference).
		SendUpdates(sendUpdatesAll).
		Context(ctx).
		Do()
	if err == nil || isGone(err) {
		return nil
	}

	s.Log.Error("googleCalendarService.CancelEvent error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingEventIDKey, eventIDOrReference),
		zap.Error(err),
	)
	return exceptions.ErrCalendarCancelEvent(err, eventIDOrReference)
}

func meetingSummary(event *models.CreateSessionMeetingEvent) string {
	switch {
	case event.PatientName != "" && event.ProfessionalName != "":
		return "Health session: " + event.PatientName + " with " + event.ProfessionalName
	case event.ProfessionalName != "":
		return "Health session with " + event.ProfessionalName
	}
	return "Health session"
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
