package members

import (
	"context"
	"database/sql"
	"errors"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"github.com/jmoiron/sqlx"
)

type memberPostgresRepository struct {
	DB sqlx.ExtContext
}

func NewMemberPostgresRepository(db sqlx.ExtContext) contracts.MemberRepository {
	return &memberPostgresRepository{
		DB: db,
	}
}

func (repo *memberPostgresRepository) FindByID(ctx context.Context, memberID string) (*models.Member, error) {
	var member models.Member
	err := sqlx.GetContext(ctx, repo.DB, &member, queries.GetMemberByID, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &member, nil
}
