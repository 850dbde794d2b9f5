package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/repository"
)

// NewGCSessionsCmd создаёт CLI-команду чистки истёкших сессий.
//
// Отозванные logout-ом сессии удаляются сразу, а вот истёкшие по TTL
// копятся в таблице — команда предназначена для периодического запуска
// из cron.
//
// Пример использования:
//
//	financectl gc-sessions
func NewGCSessionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gc-sessions",
		Short: "Удалить истёкшие сессии",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(app.Cfg.DB, ""); err != nil {
				return err
			}
			db := config.GetDB()
			defer db.Close()

			sessions := repository.NewSessionsRepository(db)
			n, err := sessions.DeleteExpired(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired sessions\n", n)
			return nil
		},
	}
}
