package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/repository"
)

type guardianRepository struct {
	db *sqlx.DB
}

func NewGuardianRepository(db *sqlx.DB) repository.GuardianRepository {
	return &guardianRepository{db: db}
}

func (r *guardianRepository) GetByID(ctx context.Context, id string) (*domain.Guardian, error) {
	var guardian domain.Guardian
	query := `SELECT * FROM guardians WHERE id = $1`
	err := r.db.GetContext(ctx, &guardian, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGuardianNotFound
		}
		return nil, err
	}
	return &guardian, nil
}

func (r *guardianRepository) GetByUserID(ctx context.Context, userID string) (*domain.Guardian, error) {
	var guardian domain.Guardian
	query := `SELECT * FROM guardians WHERE user_id = $1`
	err := r.db.GetContext(ctx, &guardian, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGuardianNotFound
		}
		return nil, err
	}
	return &guardian, nil
}
