package queries

const (
	GetMemberByID = `
		SELECT
			id,
			email,
			first_name,
			last_name,
			member_type
		FROM members
		WHERE id = $1
	`
)
