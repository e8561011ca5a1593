package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("profile not found")
	ErrAlreadyExist = errors.New("profile already exists")
	ErrNoSession    = errors.New("session not found or expired")
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	CreateSession(ctx context.Context, s *Session) error
	GetBySessionToken(ctx context.Context, token string) (*Profile, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, phone, role, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
	`, p.ID, p.Email, p.FullName, p.Phone, p.Role, p.PasswordHash)
	if err != nil {
		// simplified: email carries a UNIQUE constraint
		return ErrAlreadyExist
	}
	return nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanProfile(r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(full_name,''), COALESCE(phone,''), role,
		       password_hash, created_at, updated_at
		FROM profiles WHERE id=$1
	`, id))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanProfile(r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(full_name,''), COALESCE(phone,''), role,
		       password_hash, created_at, updated_at
		FROM profiles WHERE email=$1
	`, email))
}

func (r *PGRepo) CreateSession(ctx context.Context, s *Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (token, profile_id, created_at, expires_at)
		VALUES ($1,$2,NOW(),$3)
	`, s.Token, s.ProfileID, s.ExpiresAt)
	return err
}

func (r *PGRepo) GetBySessionToken(ctx context.Context, token string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProfile(r.db.QueryRow(ctx, `
		SELECT p.id, p.email, COALESCE(p.full_name,''), COALESCE(p.phone,''), p.role,
		       p.password_hash, p.created_at, p.updated_at
		FROM sessions s
		JOIN profiles p ON p.id = s.profile_id
		WHERE s.token=$1 AND s.expires_at > NOW()
	`, token))
	if err != nil {
		return nil, ErrNoSession
	}
	return p, nil
}
