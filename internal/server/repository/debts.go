package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// DebtsRepository реализует доступ к долгам (lent/borrowed).
// Контракт идентичен TransactionsRepository: create/list/delete,
// всегда в пределах одного владельца.
type DebtsRepository struct {
	db *sql.DB
}

// NewDebtsRepository создаёт новый экземпляр DebtsRepository.
func NewDebtsRepository(db *sql.DB) *DebtsRepository {
	return &DebtsRepository{db: db}
}

// Create сохраняет новый долг пользователя в явной транзакции.
func (r *DebtsRepository) Create(ctx context.Context, d models.Debt) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, serr.ErrInternal
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO debts (user_id, amount, name, type, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		d.UserID,
		d.Amount,
		d.Name,
		d.Type,
		d.Description,
		d.Date,
	).Scan(&id)

	if err != nil {
		return 0, serr.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		return 0, serr.ErrInternal
	}

	return id, nil
}

// ListByUser возвращает все долги пользователя, свежие первыми.
func (r *DebtsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, name, type, description, date, user_id
		  FROM debts
		 WHERE user_id=$1
		 ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	list := make([]models.Debt, 0)
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.Amount, &d.Name, &d.Type, &d.Description, &d.Date, &d.UserID); err != nil {
			return nil, serr.ErrInternal
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return list, nil
}

// Delete удаляет долг пользователя по id.
//
// Семантика та же, что у TransactionsRepository.Delete:
// чужая запись → ErrForbidden, отсутствующая → ErrNotFound.
func (r *DebtsRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return serr.ErrInternal
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM debts WHERE id=$1 AND user_id=$2`,
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
			`SELECT EXISTS(SELECT 1 FROM debts WHERE id=$1)`,
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
