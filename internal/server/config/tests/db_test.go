package tests

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
)

// Тест с мок-базой данных через DI
func TestDatabaseInjection(t *testing.T) {
	// Создаём мок DB
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Проверяем работу простого запроса через мок
	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	var x int
	err = db.QueryRow(`SELECT 1`).Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)

	// Проверяем, что все ожидания моков выполнены
	require.NoError(t, mock.ExpectationsWereMet())
}

// Init против настоящего файлового sqlite, без миграций
func TestInit_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	err := config.Init(config.DBConfig{DSN: "sqlite://" + path}, "")
	require.NoError(t, err)
	t.Cleanup(func() { config.GetDB().Close() })

	var x int
	err = config.GetDB().QueryRow("SELECT 1").Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)
}

// Неизвестная схема DSN — ошибка ещё до sql.Open
func TestInit_UnknownScheme(t *testing.T) {
	err := config.Init(config.DBConfig{DSN: "mysql://u:p@h/db"}, "")
	require.Error(t, err)
}

// Интеграционный тест с настоящей PostgreSQL через DI
func TestInit_WithPostgresDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { db.Close() })

	var x int
	err = db.QueryRow("SELECT 1").Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)
}
