package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("repo: not found")
	ErrDuplicate = errors.New("repo: already exists")
)

// Analysis is one stored calculation run. Input and Result hold the JSON
// documents exactly as the API received and returned them.
type Analysis struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	Safe      bool            `json:"safe"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	SaveAnalysis(ctx context.Context, a Analysis) (int, error)
	ListAnalyses(ctx context.Context, userID, limit int) ([]Analysis, error)
	GetAnalysis(ctx context.Context, userID, id int) (Analysis, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicate
	}
	return id, err
}

// GetByLogin returns the user id and password hash stored for login.
func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveAnalysis(ctx context.Context, a Analysis) (int, error) {
	var id int
	query := `INSERT INTO analyses (user_id, kind, input, result, safe)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.Kind, []byte(a.Input), []byte(a.Result), a.Safe).Scan(&id)
	return id, err
}

// ListAnalyses returns the newest runs of a user first.
func (r *PostgresRepository) ListAnalyses(ctx context.Context, userID, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, user_id, kind, input, result, safe, created_at
		FROM analyses WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAnalysis(ctx context.Context, userID, id int) (Analysis, error) {
	query := `SELECT id, user_id, kind, input, result, safe, created_at
		FROM analyses WHERE user_id=$1 AND id=$2`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (Analysis, error) {
	var a Analysis
	var input, result []byte
	if err := s.Scan(&a.ID, &a.UserID, &a.Kind, &input, &result, &a.Safe, &a.CreatedAt); err != nil {
		return Analysis{}, err
	}
	a.Input = json.RawMessage(input)
	a.Result = json.RawMessage(result)
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
