package models

import "strings"

type MemberType string

const (
	MemberTypePatient      MemberType = "PATIENT"
	MemberTypeProfessional MemberType = "PROFESSIONAL"
)

type Member struct {
	ID         string     `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	MemberType MemberType `db:"member_type" json:"member_type"`
}

func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}
