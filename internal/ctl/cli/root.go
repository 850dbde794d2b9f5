// Package cli реализует административный командный интерфейс (CLI) financectl.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку серверного конфига и подключение к базе данных;
//   - выполнение административных операций (создание пользователя, чистка сессий).
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// В структуре хранятся путь к серверному конфигу и загруженная конфигурация.
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ConfigPath — путь к YAML-конфигу сервера (тот же, что у cmd/server).
	ConfigPath string
	// Cfg — загруженная конфигурация сервера.
	// Заполняется в PersistentPreRunE до выполнения любой подкоманды.
	Cfg *config.Config
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE выполняется загрузка серверного конфига — подкоманды
// работают с той же базой данных, что и сервер.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ConfigPath: "./configs/server.yaml",
	}

	cmd := &cobra.Command{
		Use:   "financectl",
		Short: "financectl — административная утилита Finance Tracker",
		Long: `financectl.

Команды:
  adduser      Создать пользователя напрямую в базе
  gc-sessions  Удалить истёкшие сессии
  version      Версия и дата сборки

Примеры:

Создание пользователя (пароль спрашивается интерактивно):
  financectl adduser --username alice

Чистка истёкших сессий:
  financectl gc-sessions
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnvOverrides()
			app.Cfg = cfg
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "path to server config")

	cmd.AddCommand(NewAddUserCmd(app))
	cmd.AddCommand(NewGCSessionsCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
