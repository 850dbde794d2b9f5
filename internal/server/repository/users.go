package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет нового пользователя.
//
// ID генерируется на стороне приложения (uuid), чтобы не зависеть
// от серверных uuid-функций конкретного движка БД.
//
// Ошибки:
//   - ErrAlreadyExists если username уже занят
//   - ErrInternal при других ошибках БД
func (r *UsersRepository) Create(ctx context.Context, username, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash)
		 VALUES ($1,$2,$3)`,
		id, username, passwordHash,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, serr.ErrAlreadyExists
		}
		return uuid.Nil, serr.ErrInternal
	}

	return id, nil
}

// GetByUsername возвращает id пользователя и хэш пароля.
//
// Ошибки:
//   - ErrNotFound если пользователя с таким username нет
//   - ErrInternal при ошибке БД
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (uuid.UUID, string, error) {
	var (
		id   uuid.UUID
		hash string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE username=$1`,
		username,
	).Scan(&id, &hash)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, "", serr.ErrNotFound
		}
		return uuid.Nil, "", serr.ErrInternal
	}

	return id, hash, nil
}
