package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	// Score is a frozen snapshot, stored as JSONB and never updated.
	score, err := json.Marshal(match.Score)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}

	user1ID, user2ID := domain.NormalizeMatchUsers(match.User1ID, match.User2ID)
	query := `
		INSERT INTO matches (id, user1_id, user2_id, initiated_by, score, status,
			guardian_approval_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		match.ID, user1ID, user2ID, match.InitiatedBy, score,
		match.Status, match.GuardianApprovalRequired,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return err
	}

	match.User1ID = user1ID
	match.User2ID = user2ID
	return nil
}

func (r *matchRepository) scanMatch(row *sql.Row) (*domain.Match, error) {
	var (
		match domain.Match
		score []byte
	)
	err := row.Scan(
		&match.ID, &match.User1ID, &match.User2ID, &match.InitiatedBy,
		&score, &match.Status, &match.GuardianApprovalRequired,
		&match.CreatedAt, &match.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(score, &match.Score); err != nil {
		return nil, fmt.Errorf("failed to decode score: %w", err)
	}
	return &match, nil
}

const matchColumns = `id, user1_id, user2_id, initiated_by, score, status,
	guardian_approval_required, created_at, updated_at`

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	user1ID, user2ID = domain.NormalizeMatchUsers(user1ID, user2ID)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user1_id = $1 AND user2_id = $2`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, user1ID, user2ID))
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectMatches(ctx, query, userID, limit, offset)
}

func (r *matchRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC
	`
	return r.selectMatches(ctx, query, domain.MatchPending, cutoff)
}

func (r *matchRepository) selectMatches(ctx context.Context, query string, args ...any) ([]*domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		var (
			match domain.Match
			score []byte
		)
		err := rows.Scan(
			&match.ID, &match.User1ID, &match.User2ID, &match.InitiatedBy,
			&score, &match.Status, &match.GuardianApprovalRequired,
			&match.CreatedAt, &match.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(score, &match.Score); err != nil {
			return nil, fmt.Errorf("failed to decode score: %w", err)
		}
		matches = append(matches, &match)
	}
	return matches, rows.Err()
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) error {
	query := `UPDATE matches SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) AppendApproval(ctx context.Context, approval *domain.GuardianApproval) error {
	if approval.ID == "" {
		approval.ID = uuid.NewString()
	}
	query := `
		INSERT INTO guardian_approvals (id, guardian_id, user_id, match_id, status, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		approval.ID, approval.GuardianID, approval.UserID, approval.MatchID,
		approval.Status, approval.Comment,
	).Scan(&approval.CreatedAt)
}

func (r *matchRepository) ListApprovals(ctx context.Context, matchID string) ([]domain.GuardianApproval, error) {
	var approvals []domain.GuardianApproval
	query := `
		SELECT * FROM guardian_approvals
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC
	`
	err := r.db.SelectContext(ctx, &approvals, query, matchID)
	return approvals, err
}
