// Package models содержит доменные модели сервера.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction — операция дохода или расхода пользователя.
//
// Владелец фиксируется при создании и не меняется.
// Записи не обновляются: только создание и удаление.
type Transaction struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Type        string    `json:"type"` // income | expense
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	UserID      uuid.UUID `json:"-"`
}

// Debt — долг: деньги, которые пользователь дал или взял в долг.
type Debt struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Name        string    `json:"name"`
	Type        string    `json:"type"` // lent | borrowed
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	UserID      uuid.UUID `json:"-"`
}
