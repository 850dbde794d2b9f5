// Package models содержит DTO запросов, общие для api и service слоёв.
package models

// CreateTransactionRequest — тело запроса создания операции.
//
// Amount — указатель, чтобы отличать отсутствующее поле от нуля.
// Date — необязательная ISO-8601 строка; пустая означает "сейчас".
type CreateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // income | expense
	Category    string   `json:"category"`
	Date        string   `json:"date,omitempty"`
}

// CreateDebtRequest — тело запроса создания долга.
//
// Description необязателен (в отличие от операций).
type CreateDebtRequest struct {
	Amount      *float64 `json:"amount"`
	Name        string   `json:"name"`
	Type        string   `json:"type"` // lent | borrowed
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date,omitempty"`
}
