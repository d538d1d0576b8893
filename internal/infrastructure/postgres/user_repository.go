package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

const userColumns = `u.id, u.name, u.email, u.role, u.password, u.avatar,
	u.reset_password_token, u.reset_password_expire,
	u.confirm_email_token, u.confirm_email_expire,
	u.is_email_confirmed, u.created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		u              entity.User
		reset, confirm *string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password, &u.Avatar,
		&reset, &u.ResetPasswordExpire, &confirm, &u.ConfirmEmailExpire,
		&u.IsEmailConfirmed, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ResetPasswordToken = deref(reset)
	u.ConfirmEmailToken = deref(confirm)
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, d *query.Descriptor) ([]entity.User, error) {
	sql, args := listSQL(userColumns, "users u", "u", d)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "User", "")
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(err, "User", "")
		}
		out = append(out, *u)
	}
	return out, translate(rows.Err(), "User", "")
}

func (r *UserRepository) Count(ctx context.Context, d *query.Descriptor) (int, error) {
	sql, args := countSQL("users", "u", d)
	var n int
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&n)
	return n, translate(err, "User", "")
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, password, avatar,
			reset_password_token, reset_password_expire,
			confirm_email_token, confirm_email_expire, is_email_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Role, u.Password, u.Avatar,
		nullable(u.ResetPasswordToken), u.ResetPasswordExpire,
		nullable(u.ConfirmEmailToken), u.ConfirmEmailExpire, u.IsEmailConfirmed)
	return translate(row.Scan(&u.ID, &u.CreatedAt), "User", "")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		return nil, translate(err, "User", id)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email))
	if err != nil {
		return nil, translate(err, "User", "")
	}
	return u, nil
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hash string, now time.Time) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users u
		WHERE u.reset_password_token = $1 AND u.reset_password_expire > $2
	`, hash, now))
	if err != nil {
		return nil, translate(err, "User", "")
	}
	return u, nil
}

func (r *UserRepository) GetByConfirmToken(ctx context.Context, hash string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users u
		WHERE u.confirm_email_token = $1 AND u.is_email_confirmed = FALSE
	`, hash))
	if err != nil {
		return nil, translate(err, "User", "")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, password = $4, avatar = $5,
			reset_password_token = $6, reset_password_expire = $7,
			confirm_email_token = $8, confirm_email_expire = $9,
			is_email_confirmed = $10
		WHERE id = $11
	`, u.Name, u.Email, u.Role, u.Password, u.Avatar,
		nullable(u.ResetPasswordToken), u.ResetPasswordExpire,
		nullable(u.ConfirmEmailToken), u.ConfirmEmailExpire,
		u.IsEmailConfirmed, u.ID)
	if err != nil {
		return translate(err, "User", u.ID)
	}
	if res.RowsAffected() == 0 {
		return notFound("User", u.ID)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "User", id)
	}
	if res.RowsAffected() == 0 {
		return notFound("User", id)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
