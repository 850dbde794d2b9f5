// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users        UsersRepo
	Sessions     SessionsRepo
	Transactions TransactionsRepo
	Debts        DebtsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth         *AuthService
	Transactions *TransactionsService
	Debts        *DebtsService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля и сессионного токена).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.Users, repos.Sessions, cfg),
		Transactions: NewTransactionsService(repos.Transactions),
		Debts:        NewDebtsService(repos.Debts),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Create(ctx context.Context, username, passwordHash string) (uuid.UUID, error)
	GetByUsername(ctx context.Context, username string) (uuid.UUID, string, error)
}

// SessionsRepo — репозиторий серверных сессий.
type SessionsRepo interface {
	Create(ctx context.Context, id, userID uuid.UUID, expiresAt time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (userID uuid.UUID, username string, expiresAt time.Time, err error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TransactionsRepo — репозиторий операций (create/list/delete в пределах владельца).
type TransactionsRepo interface {
	Create(ctx context.Context, t models.Transaction) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// DebtsRepo — репозиторий долгов, контракт тот же.
type DebtsRepo interface {
	Create(ctx context.Context, d models.Debt) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Debt, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}
