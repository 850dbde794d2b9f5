package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// SessionsRepository отвечает за хранение серверных сессий пользователя.
//
// Наличие строки в таблице sessions означает валидность сессии:
// logout удаляет строку, и предъявленный cookie-токен перестаёт работать.
// Состояние сессии читается из БД на каждый запрос, без кэшей.
type SessionsRepository struct {
	db *sql.DB
}

// NewSessionsRepository создает новый SessionsRepository.
func NewSessionsRepository(db *sql.DB) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// Create создаёт новую сессию пользователя.
//
// id генерируется на стороне приложения и попадает в jti cookie-токена.
//
// Ошибки:
//   - ErrConflict при нарушении уникальности
//   - ErrInternal при других ошибках БД
func (r *SessionsRepository) Create(ctx context.Context, id, userID uuid.UUID, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at)
		 VALUES ($1,$2,$3)`,
		id, userID, expiresAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return serr.ErrConflict
		}
		return serr.ErrInternal
	}
	return nil
}

// GetByID возвращает сессию по её id вместе с данными владельца.
//
// Используется middleware на каждый запрос: удалённая (logout) или
// несуществующая сессия означает, что пользователь не аутентифицирован.
//
// Возвращает:
//   - id пользователя
//   - username (нужен для /api/check_auth)
//   - срок действия сессии
//
// Ошибки:
//   - ErrUnauthorized если сессия не найдена
//   - ErrInternal при ошибке БД
func (r *SessionsRepository) GetByID(ctx context.Context, id uuid.UUID) (uuid.UUID, string, time.Time, error) {
	var (
		userID    uuid.UUID
		username  string
		expiresAt time.Time
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.username, s.expires_at
		   FROM sessions s
		   JOIN users u ON u.id = s.user_id
		  WHERE s.id=$1`,
		id,
	).Scan(&userID, &username, &expiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, "", time.Time{}, serr.ErrUnauthorized
		}
		return uuid.Nil, "", time.Time{}, serr.ErrInternal
	}

	return userID, username, expiresAt, nil
}

// Delete удаляет сессию (logout).
//
// Повторное удаление уже отсутствующей сессии ошибкой не считается:
// результат одинаковый — сессии нет.
func (r *SessionsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id=$1`,
		id,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// DeleteExpired удаляет все истёкшие сессии.
//
// Используется командой financectl gc-sessions.
func (r *SessionsRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, serr.ErrInternal
	}
	return n, nil
}
