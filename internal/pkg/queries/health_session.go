package queries

const (
	healthSessionColumns = `
		id,
		reference,
		patient_id,
		professional_id,
		to_char(session_date, 'YYYY-MM-DD') AS session_date,
		to_char(session_time, 'HH24:MI') AS session_time,
		timezone,
		status,
		external_event_id,
		other_event_reference,
		meeting_url,
		event_link,
		created_at,
		updated_at`

	GetHealthSessionByReference = `
		SELECT` + healthSessionColumns + `
		FROM health_sessions
		WHERE reference = $1
	`

	GetHealthSessionByReferenceForUpdate = `
		SELECT` + healthSessionColumns + `
		FROM health_sessions
		WHERE reference = $1
		FOR UPDATE
	`

	ExistsHealthSessionByReference = `
		SELECT EXISTS (SELECT 1 FROM health_sessions WHERE reference = $1)
	`

	LockHealthSessionSlot = `
		SELECT pg_advisory_xact_lock(hashtext($1::text || '|' || $2::text || '|' || $3::text))
	`

	// a PENDING session holds its slot only while it is younger than the
	// hold window and its payment is still outstanding
	ExistsActiveHealthSessionAtSlot = `
		SELECT EXISTS (
			SELECT 1
			FROM health_sessions hs
			WHERE hs.professional_id = $1
				AND hs.session_date = $2
				AND hs.session_time = $3
				AND (
					hs.status IN ('SCHEDULED', 'RESCHEDULED')
					OR (
						hs.status = 'PENDING'
						AND hs.created_at > $4
						AND EXISTS (
							SELECT 1
							FROM transactions t
							WHERE t.session_reference = hs.reference
								AND t.status = 'PENDING'
						)
					)
				)
		)
	`

	ExistsScheduledHealthSessionAtSlot = `
		SELECT EXISTS (
			SELECT 1
			FROM health_sessions
			WHERE professional_id = $1
				AND session_date = $2
				AND session_time = $3
				AND status IN ('SCHEDULED', 'RESCHEDULED')
		)
	`

	GetHealthSessionsAwaitingMeeting = `
		SELECT` + healthSessionColumns + `
		FROM health_sessions
		WHERE status IN ('SCHEDULED', 'RESCHEDULED')
			AND external_event_id = ''
			AND other_event_reference = ''
			AND updated_at < $1
		ORDER BY updated_at
		LIMIT $2
	`

	CreateHealthSession = `
		INSERT INTO health_sessions (
			reference,
			patient_id,
			professional_id,
			session_date,
			session_time,
			timezone,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	UpdateHealthSessionStatus = `
		UPDATE health_sessions
		SET status = $2, updated_at = NOW()
		WHERE reference = $1
		RETURNING updated_at
	`

	UpdateHealthSessionMeetingLinkage = `
		UPDATE health_sessions
		SET
			external_event_id = $2,
			other_event_reference = $3,
			meeting_url = $4,
			event_link = $5,
			status = $6,
			updated_at = NOW()
		WHERE reference = $1
		RETURNING updated_at
	`
)
