// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
// SQL написан так, чтобы работать и на PostgreSQL (pgx), и на SQLite
// (modernc): плейсхолдеры $1..$n и RETURNING поддерживают оба движка.
package repository

import (
	"errors"

	"github.com/jackc/pgconn"
	sqlite "modernc.org/sqlite"
)

// sqliteConstraint — первичный код SQLITE_CONSTRAINT.
// Расширенные коды (2067 UNIQUE, 1555 PRIMARY KEY) содержат его в младшем байте.
const sqliteConstraint = 19

// isUniqueViolation распознаёт нарушение уникальности у обоих бэкендов.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqliteConstraint
	}

	return false
}
