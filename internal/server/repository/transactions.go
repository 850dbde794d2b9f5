package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// TransactionsRepository реализует доступ к операциям дохода/расхода.
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
//
// Каждая строка помечена владельцем (user_id); выборки и удаления
// всегда ограничены владельцем.
type TransactionsRepository struct {
	db *sql.DB
}

// NewTransactionsRepository создаёт новый экземпляр TransactionsRepository.
func NewTransactionsRepository(db *sql.DB) *TransactionsRepository {
	return &TransactionsRepository{db: db}
}

// Create сохраняет новую операцию пользователя в явной транзакции.
//
// Возвращает id созданной записи.
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *TransactionsRepository) Create(ctx context.Context, t models.Transaction) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, serr.ErrInternal
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, amount, description, type, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		t.UserID,
		t.Amount,
		t.Description,
		t.Type,
		t.Category,
		t.Date,
	).Scan(&id)

	if err != nil {
		return 0, serr.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		return 0, serr.ErrInternal
	}

	return id, nil
}

// ListByUser возвращает все операции пользователя,
// упорядоченные по дате по убыванию (свежие первыми).
//
// Пустой список — это пустой слайс, а не nil: API отдаёт его как [].
func (r *TransactionsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, description, type, category, date, user_id
		  FROM transactions
		 WHERE user_id=$1
		 ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	list := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Description, &t.Type, &t.Category, &t.Date, &t.UserID); err != nil {
			return nil, serr.ErrInternal
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return list, nil
}

// Delete удаляет операцию пользователя по id в явной транзакции.
//
// Удаление сразу ограничено владельцем; если ничего не удалилось,
// дополнительная проверка EXISTS различает два случая:
//   - запись есть, но чужая → ErrForbidden
//   - записи нет вовсе → ErrNotFound
//
// Гонка двух одновременных удалений решается на уровне БД:
// проигравший получает ErrNotFound.
func (r *TransactionsRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return serr.ErrInternal
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE id=$1 AND user_id=$2`,
		id, userID,
	)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}

	if n == 0 {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM transactions WHERE id=$1)`,
			id,
		).Scan(&exists)
		if err != nil {
			return serr.ErrInternal
		}
		if exists {
			return serr.ErrForbidden
		}
		return serr.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return serr.ErrInternal
	}

	return nil
}
