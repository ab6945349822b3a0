package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/ticket-registry/internal/model"
	"github.com/iliyamo/ticket-registry/internal/utils"
)

// Account mirrors the 'accounts' table.  Principal is derived from the
// normalized email at registration and is the identity the ledger sees.
type Account struct {
	ID           uint64
	Email        string
	PasswordHash string
	Principal    model.Principal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// Create inserts an account and returns its ID.  The ledger principal is
// derived from the normalized email, so the same email always maps to the
// same on-ledger identity.
func (r *AccountRepo) Create(ctx context.Context, email, password string, cost int) (uint64, model.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, model.None, err
	}
	principal := utils.DerivePrincipal(email)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (email, password_hash, principal) VALUES (?,?,?)",
		email, hash, string(principal))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, model.None, ErrEmailExists
		}
		return 0, model.None, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, model.None, err
	}
	return uint64(id), principal, nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,principal,created_at,updated_at FROM accounts WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Principal, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (Account, error) {
	var a Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,principal,created_at,updated_at FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Principal, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

// GetByPrincipal fetches an account by its ledger principal.
func (r *AccountRepo) GetByPrincipal(ctx context.Context, p model.Principal) (Account, error) {
	var a Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,principal,created_at,updated_at FROM accounts WHERE principal=? LIMIT 1",
		string(p)).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Principal, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}
