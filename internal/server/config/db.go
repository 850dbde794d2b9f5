// Package config содержит инициализацию подключения к базе данных сервера
// и доступ к глобальному экземпляру *sql.DB.
//
// Пакет выполняет:
//   - выбор драйвера по схеме DSN (postgres → pgx, sqlite → modernc);
//   - открытие соединения и проверку доступности базы (Ping);
//   - настройку пула соединений;
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Примечание: пакет использует глобальную переменную DB. Инициализация должна
// выполняться один раз при запуске сервера.
package config

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratelite "github.com/golang-migrate/migrate/v4/database/sqlite"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"
)

// DB — глобальный экземпляр подключения к базе данных.
//
// Инициализируется функцией Init и используется другими пакетами через GetDB.
var DB *sql.DB

// DriverForDSN определяет драйвер database/sql по схеме DSN.
//
// Поддерживаются:
//   - postgres:// и postgresql:// → "pgx"
//   - sqlite://<путь к файлу>     → "sqlite"
//
// Любая другая схема — ошибка: бэкенд задаётся явно, без угадываний.
func DriverForDSN(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", nil
	default:
		return "", fmt.Errorf("неизвестная схема db.dsn: %q (ожидается postgres:// или sqlite://)", dsn)
	}
}

// Init открывает подключение к базе данных по DSN, проверяет его доступность,
// настраивает пул и применяет миграции.
//
// migrationsPath — источник миграций для golang-migrate,
// например "file://migrations/postgres". Пустая строка отключает миграции.
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func Init(cfg DBConfig, migrationsPath string) error {
	customLog := logger.NewHTTPLogger().Logger.Sugar()

	driver, err := DriverForDSN(cfg.DSN)
	if err != nil {
		return err
	}

	dsn := cfg.DSN
	if driver == "sqlite" {
		// sql.Open("sqlite", ...) ждёт путь к файлу без схемы
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}

	DB, err = sql.Open(driver, dsn)
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return err
	}

	if cfg.MaxOpenConns > 0 {
		DB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		DB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		DB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		DB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err = DB.Ping(); err != nil {
		customLog.Errorf("error check db connection: %v", err)
		return err
	}

	if migrationsPath == "" {
		return nil
	}

	// Запуск миграций: драйвер migrate выбираем тем же способом, что и sql
	var m *migrate.Migrate
	switch driver {
	case "pgx":
		d, err := migratepg.WithInstance(DB, &migratepg.Config{})
		if err != nil {
			customLog.Errorf("error creating migration driver: %v", err)
			return err
		}
		m, err = migrate.NewWithDatabaseInstance(migrationsPath, "postgres", d)
		if err != nil {
			customLog.Errorf("error creating migrations: %v", err)
			return err
		}
	case "sqlite":
		d, err := migratelite.WithInstance(DB, &migratelite.Config{})
		if err != nil {
			customLog.Errorf("error creating migration driver: %v", err)
			return err
		}
		m, err = migrate.NewWithDatabaseInstance(migrationsPath, "sqlite", d)
		if err != nil {
			customLog.Errorf("error creating migrations: %v", err)
			return err
		}
	}

	// запускаем применение миграций
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		customLog.Errorf("error applying migrations: %v", err)
		return err
	}

	customLog.Info("migrations applied successfully")
	return nil
}

// GetDB возвращает текущий глобальный экземпляр *sql.DB.
//
// Возвращаемое значение может быть nil, если Init ещё не вызывался
// или завершился ошибкой.
func GetDB() *sql.DB {
	return DB
}
