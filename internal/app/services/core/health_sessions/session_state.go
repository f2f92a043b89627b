package healthSessions

import (
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
)

// CANCELED has no outgoing transitions.
var allowedTransitions = map[models.SessionStatus][]models.SessionStatus{
	models.SessionStatusPending:     {models.SessionStatusScheduled, models.SessionStatusCanceled},
	models.SessionStatusScheduled:   {models.SessionStatusRescheduled, models.SessionStatusCanceled},
	models.SessionStatusRescheduled: {models.SessionStatusCanceled},
}

func CanTransition(from, to models.SessionStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves session to next or returns ErrInvalidSessionTransition
// without touching it.
func Transition(session *models.HealthSession, next models.SessionStatus) error {
	if !CanTransition(session.Status, next) {
		return exceptions.ErrInvalidSessionTransition(string(session.Status), string(next))
	}
	session.Status = next
	return nil
}

// NeedsMeeting reports whether no remote meeting has been provisioned for the
// session yet.
func NeedsMeeting(session *models.HealthSession) bool {
	return session.Status != models.SessionStatusScheduled && session.Status != models.SessionStatusRescheduled
}
