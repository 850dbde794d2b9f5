// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - проверку сессионной cookie на защищённых путях;
//   - CORS для SPA dev-сервера;
//   - раздачу собранного SPA-бандла с фолбэком на index.html.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/api"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования для всех запросов;
//   - swagger UI;
//   - публичные эндпоинты /api/register, /api/login, /api/check_auth;
//   - группу защищённых сессией эндпоинтов (logout, transactions, debts);
//   - JSON 404 для неизвестных путей под /api;
//   - SPA-фолбэк для всего остального.
func NewRouter(h *api.Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		// Публичные пути
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/check_auth", h.CheckAuth)

		// защищённые пути
		r.Group(func(r chi.Router) {
			// проверка сессионной cookie — до любых проверок владения
			r.Use(h.Verifier.AuthMiddleware())

			r.Post("/logout", h.Logout)

			// CRUD запросы для операций
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", h.CreateTransaction)         // Создание операции
				r.Get("/", h.ListTransactions)           // Получение всех операций
				r.Delete("/{id}", h.DeleteTransaction)   // Удаление операции по id
			})
			// CRUD запросы для долгов
			r.Route("/debts", func(r chi.Router) {
				r.Post("/", h.CreateDebt)
				r.Get("/", h.ListDebts)
				r.Delete("/{id}", h.DeleteDebt)
			})
		})

		// неизвестные /api пути не должны проваливаться в SPA-фолбэк
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			api.WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		})
	})

	// всё, что не API и не swagger — отдаём фронтенд
	r.NotFound(SPAHandler(cfg.Server.StaticDir))

	// CORS нужен только когда SPA живёт на отдельном dev-сервере;
	// cookie-сессии требуют AllowCredentials
	if len(cfg.CORS.AllowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		})
		return c.Handler(r)
	}

	return r
}
