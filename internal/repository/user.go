package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type UserRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewUserRepo(db *dbpg.DB) *UserRepository {
	return &UserRepository{db: db, strategy: defaultStrategy()}
}

const userColumns = `id, name, email, role, club_ids, is_banned, sport_preferences, telegram_chat_id, created_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	prefs, err := json.Marshal(user.SportPreferences)
	if err != nil {
		return fmt.Errorf("marshal sport preferences: %w", err)
	}

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecWithRetry(
		ctx, r.strategy, query,
		user.ID, user.Name, user.Email, user.Role, pq.Array(user.ClubIDs),
		user.IsBanned, prefs, user.TelegramChatID, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	return r.getUser(ctx, query, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	return r.getUser(ctx, query, email)
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY name`
	return r.listUsers(ctx, query)
}

func (r *UserRepository) ListAdminsByClub(ctx context.Context, clubID string) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = $1 AND $2 = ANY(club_ids)
			  ORDER BY name`
	return r.listUsers(ctx, query, domain.RoleAdmin, clubID)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, arg)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) listUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}

	return res, rows.Err()
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var u domain.User
	var prefs []byte
	if err := scan(
		&u.ID, &u.Name, &u.Email, &u.Role, pq.Array(&u.ClubIDs),
		&u.IsBanned, &prefs, &u.TelegramChatID, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.SportPreferences); err != nil {
			return nil, fmt.Errorf("unmarshal sport preferences: %w", err)
		}
	}
	return &u, nil
}
