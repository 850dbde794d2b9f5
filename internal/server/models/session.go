// Серверная модель сессии пользователя.
//
// Сессия живёт в БД: наличие строки означает валидность сессии,
// logout удаляет строку. Токен в cookie ссылается на ID сессии.
package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}
