package models

import "time"

type MeetingIntentKind string

const (
	MeetingIntentCreate MeetingIntentKind = "CREATE_SESSION_MEETING"
	MeetingIntentCancel MeetingIntentKind = "CANCEL_SESSION_MEETING"
)

type CreateSessionMeetingEvent struct {
	SessionReference string            `json:"session_reference"`
	StartsAt         time.Time         `json:"starts_at"`
	EndsAt           time.Time         `json:"ends_at"`
	Timezone         string            `json:"timezone"`
	Attendees        []string          `json:"attendees"`
	PatientName      string            `json:"patient_name"`
	ProfessionalName string            `json:"professional_name"`
	Metadata         map[string]string `json:"metadata"`
}

type CancelSessionMeetingEvent struct {
	SessionReference    string `json:"session_reference"`
	EventIDOrReference  string `json:"event_id_or_reference"`
	OtherEventReference string `json:"other_event_reference"`
}

// MeetingIntent is the envelope stored on the meeting queue.
type MeetingIntent struct {
	Kind        MeetingIntentKind          `json:"kind"`
	Create      *CreateSessionMeetingEvent `json:"create,omitempty"`
	Cancel      *CancelSessionMeetingEvent `json:"cancel,omitempty"`
	FailedCount int                        `json:"failed_count"`
}

type CalendarEvent struct {
	ID         string `json:"id"`
	ICalUID    string `json:"ical_uid"`
	MeetingURL string `json:"meeting_url"`
	HTMLLink   string `json:"html_link"`
}

type QueuedMeetingIntent struct {
	DeliveryTag uint64
	Intent      MeetingIntent
}
