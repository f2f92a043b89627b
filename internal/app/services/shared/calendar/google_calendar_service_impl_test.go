package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func newTestCalendar(t *testing.T, handler http.HandlerFunc) contracts.CalendarService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.InternalConfig{}
	cfg.Calendar.CalendarID = "sessions"
	service, err := NewGoogleCalendarService(context.Background(), cfg, zap.NewNop(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return service
}

func TestGoogleCalendarService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	startsAt := time.Date(2026, 1, 12, 10, 30, 0, 0, time.FixedZone("WAT", 3600))
	event := &models.CreateSessionMeetingEvent{
		SessionReference: "HS-ABC",
		StartsAt:         startsAt,
		EndsAt:           startsAt.Add(time.Hour),
		Timezone:         "Africa/Lagos",
		Attendees:        []string{"pat@example.com", "", "pro@example.com"},
		PatientName:      "Tunde Bello",
		ProfessionalName: "Ada Obi",
	}

	t.Run("Creates event with a Meet conference", func(t *testing.T) {
		var received gcal.Event
		service := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/calendars/sessions/events", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("conferenceDataVersion"))
			assert.Equal(t, "all", r.URL.Query().Get("sendUpdates"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"evt123","iCalUID":"evt123@google.com","hangoutLink":"https://meet.google.com/abc-defg-hij","htmlLink":"https://www.google.com/calendar/event?eid=evt123"}`))
		})

		created, err := service.CreateEvent(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, &models.CalendarEvent{
			ID:         "evt123",
			ICalUID:    "evt123@google.com",
			MeetingURL: "https://meet.google.com/abc-defg-hij",
			HTMLLink:   "https://www.google.com/calendar/event?eid=evt123",
		}, created)

		assert.Equal(t, "Health session: Tunde Bello with Ada Obi", received.Summary)
		assert.Equal(t, "2026-01-12T10:30:00+01:00", received.Start.DateTime)
		assert.Equal(t, "Africa/Lagos", received.End.TimeZone)
		require.Len(t, received.Attendees, 2, "blank attendee emails are skipped")
		require.NotNil(t, received.ConferenceData)
		assert.Equal(t, "HS-ABC", received.ConferenceData.CreateRequest.RequestId)
		assert.Equal(t, "hangoutsMeet", received.ConferenceData.CreateRequest.ConferenceSolutionKey.Type)
	})

	t.Run("Provider failure is retryable", func(t *testing.T) {
		service := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"rate limit exceeded"}}`))
		})

		_, err := service.CreateEvent(ctx, event)

		require.Error(t, err)
		assert.True(t, exceptions.IsRetryable(err))
	})
}

func TestGoogleCalendarService_CancelEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the event", func(t *testing.T) {
		var path string
		service := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			path = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, service.CancelEvent(ctx, "evt123"))
		assert.True(t, strings.HasSuffix(path, "/events/evt123"))
	})

	t.Run("Missing event counts as canceled", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusGone} {
			service := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
			})

			assert.NoError(t, service.CancelEvent(ctx, "evt123"))
		}
	})

	t.Run("Other failures are retryable", func(t *testing.T) {
		service := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
		})

		err := service.CancelEvent(ctx, "evt123")

		assert.True(t, exceptions.IsRetryable(err))
	})
}

func TestMeetingSummary(t *testing.T) {
	assert.Equal(t, "Health session with Ada Obi", meetingSummary(&models.CreateSessionMeetingEvent{ProfessionalName: "Ada Obi"}))
	assert.Equal(t, "Health session", meetingSummary(&models.CreateSessionMeetingEvent{PatientName: "Tunde Bello"}))
}
