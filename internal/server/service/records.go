package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	dmodels "github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// Допустимые виды записей. Всё остальное отклоняется на входе,
// а не где-то в глубине слоя хранения.
var (
	transactionTypes = []string{"income", "expense"}
	debtTypes        = []string{"lent", "borrowed"}
)

// validateType проверяет, что вид записи входит в список допустимых.
func validateType(t string, allowed []string) error {
	for _, a := range allowed {
		if t == a {
			return nil
		}
	}
	return serr.ErrInvalidInput
}

// parseDate разбирает ISO-8601 дату записи.
//
// Пустая строка означает "сейчас". Завершающий Z трактуется как UTC.
// Время без зоны считается UTC (так его пишет фронтенд).
// Результат всегда нормализован к UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, serr.ErrInvalidInput
}

// TransactionsService реализует бизнес-логику операций дохода/расхода.
// Сервис:
//   - валидирует входные данные;
//   - не знает о HTTP и БД напрямую.
type TransactionsService struct {
	repo TransactionsRepo
}

// NewTransactionsService создаёт новый TransactionsService.
func NewTransactionsService(repo TransactionsRepo) *TransactionsService {
	return &TransactionsService{repo: repo}
}

// Create создаёт новую операцию пользователя.
//
// Валидации:
//   - amount присутствует;
//   - description и category не пустые;
//   - type ∈ {income, expense};
//   - date — корректная ISO-8601 строка либо отсутствует.
//
// Ошибки:
//   - ErrInvalidInput — невалидные данные;
//   - ErrInternal — ошибка хранилища.
func (s *TransactionsService) Create(ctx context.Context, userID uuid.UUID, req models.CreateTransactionRequest) (int64, error) {
	if req.Amount == nil || req.Description == "" || req.Category == "" {
		return 0, serr.ErrInvalidInput
	}
	if err := validateType(strings.TrimSpace(req.Type), transactionTypes); err != nil {
		return 0, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return 0, err
	}

	return s.repo.Create(ctx, dmodels.Transaction{
		Amount:      *req.Amount,
		Description: req.Description,
		Type:        strings.TrimSpace(req.Type),
		Category:    req.Category,
		Date:        date,
		UserID:      userID,
	})
}

// List возвращает все операции пользователя, свежие первыми.
func (s *TransactionsService) List(ctx context.Context, userID uuid.UUID) ([]dmodels.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete удаляет операцию пользователя по id.
//
// Ошибки репозитория (ErrForbidden/ErrNotFound) пробрасываются как есть —
// api слой маппит их на 403/404.
func (s *TransactionsService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// DebtsService реализует бизнес-логику долгов.
type DebtsService struct {
	repo DebtsRepo
}

// NewDebtsService создаёт новый DebtsService.
func NewDebtsService(repo DebtsRepo) *DebtsService {
	return &DebtsService{repo: repo}
}

// Create создаёт новый долг пользователя.
//
// Валидации те же, что у операций, но вместо description+category
// обязателен name, а description необязателен.
func (s *DebtsService) Create(ctx context.Context, userID uuid.UUID, req models.CreateDebtRequest) (int64, error) {
	if req.Amount == nil || req.Name == "" {
		return 0, serr.ErrInvalidInput
	}
	if err := validateType(strings.TrimSpace(req.Type), debtTypes); err != nil {
		return 0, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return 0, err
	}

	return s.repo.Create(ctx, dmodels.Debt{
		Amount:      *req.Amount,
		Name:        req.Name,
		Type:        strings.TrimSpace(req.Type),
		Description: req.Description,
		Date:        date,
		UserID:      userID,
	})
}

// List возвращает все долги пользователя, свежие первыми.
func (s *DebtsService) List(ctx context.Context, userID uuid.UUID) ([]dmodels.Debt, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete удаляет долг пользователя по id.
func (s *DebtsService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
