package models

import (
	"fmt"
	"time"
)

type SessionStatus string

const (
	SessionStatusPending     SessionStatus = "PENDING"
	SessionStatusScheduled   SessionStatus = "SCHEDULED"
	SessionStatusRescheduled SessionStatus = "RESCHEDULED"
	SessionStatusCanceled    SessionStatus = "CANCELED"
)

type HealthSession struct {
	ID                  int64         `db:"id" json:"-"`
	Reference           string        `db:"reference" json:"reference"`
	PatientID           string        `db:"patient_id" json:"patient_id"`
	ProfessionalID      string        `db:"professional_id" json:"professional_id"`
	Date                string        `db:"session_date" json:"date"`
	Time                string        `db:"session_time" json:"time"`
	Timezone            string        `db:"timezone" json:"timezone"`
	Status              SessionStatus `db:"status" json:"status"`
	ExternalEventID     string        `db:"external_event_id" json:"external_event_id,omitempty"`
	OtherEventReference string        `db:"other_event_reference" json:"other_event_reference,omitempty"`
	MeetingURL          string        `db:"meeting_url" json:"meeting_url,omitempty"`
	EventLink           string        `db:"event_link" json:"event_link,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

// StartsAt resolves the stored date and time in the session's own timezone.
func (h *HealthSession) StartsAt() (time.Time, error) {
	location, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		startsAt, err := time.ParseInLocation(layout, h.Date+" "+h.Time, location)
		if err == nil {
			return startsAt, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable session schedule %q %q", h.Date, h.Time)
}

func (h *HealthSession) HasExternalMeeting() bool {
	return h.ExternalEventID != "" || h.OtherEventReference != ""
}
