package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trimarkity/auth-service/internal/domain"
)

const userColumns = `id, email, password_hash, full_name, first_name, last_name, phone, department,
role, is_active, is_verified, must_change_password, created_by,
reset_token, reset_token_expires_at, created_at, updated_at, password_changed_at, last_login_at`

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// ---------- helpers ----------

// Emails are normalized to lowercase at the store boundary so the unique key
// cannot fork on case.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.PasswordHash,
		&ur.FullName,
		&ur.FirstName,
		&ur.LastName,
		&ur.Phone,
		&ur.Department,
		&ur.Role,
		&ur.IsActive,
		&ur.IsVerified,
		&ur.MustChangePassword,
		&ur.CreatedBy,
		&ur.ResetToken,
		&ur.ResetTokenExpiresAt,
		&ur.CreatedAt,
		&ur.UpdatedAt,
		&ur.PasswordChangedAt,
		&ur.LastLoginAt,
	)
	return ur, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---------- auth.UserStore ----------

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUser(s.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUser(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (s *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}

	const q = `
INSERT INTO users (id, email, password_hash, full_name, first_name, last_name, phone, department,
                   role, is_active, is_verified, must_change_password, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NULLIF($13,''))
RETURNING ` + userColumns + `;
`
	ur, err := scanUser(s.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.FirstName, u.LastName, u.Phone, u.Department,
		u.Role, u.IsActive, u.IsVerified, u.MustChangePassword, u.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, userID, newHash string, clearMustChange bool) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    must_change_password = CASE WHEN $3 THEN FALSE ELSE must_change_password END,
    password_changed_at = NOW(),
    updated_at = NOW()
WHERE id = $1;
`
	res, err := s.db.ExecContext(ctx, q, userID, newHash, clearMustChange)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (s *UserStore) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if token == "" {
		return domain.ErrMissingField("reset_token")
	}

	const q = `
UPDATE users
SET reset_token = $2,
    reset_token_expires_at = $3,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := s.db.ExecContext(ctx, q, userID, token, expiresAt)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

// ConsumeResetToken is a single conditional UPDATE: the token match, expiry
// check, hash replacement and token clearing happen in one statement so that
// concurrent redemptions of the same token cannot both win.
func (s *UserStore) ConsumeResetToken(ctx context.Context, token, newHash string) (domain.User, error) {
	if token == "" || newHash == "" {
		return domain.User{}, domain.ErrResetTokenInvalid()
	}

	const q = `
UPDATE users
SET password_hash = $2,
    reset_token = NULL,
    reset_token_expires_at = NULL,
    updated_at = NOW()
WHERE reset_token = $1
  AND reset_token_expires_at > NOW()
RETURNING ` + userColumns + `;
`
	ur, err := scanUser(s.db.QueryRowContext(ctx, q, token, newHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Expired, consumed and never-issued tokens are indistinguishable.
			return domain.User{}, domain.ErrResetTokenInvalid()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (s *UserStore) TouchLastLogin(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	const q = `
UPDATE users
SET last_login_at = NOW()
WHERE id = $1;
`
	res, err := s.db.ExecContext(ctx, q, userID)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
