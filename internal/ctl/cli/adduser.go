package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/repository"
)

// NewAddUserCmd создаёт CLI-команду для заведения пользователя напрямую в базе.
//
// Команда подключается к той же БД, что и сервер, хэширует пароль
// параметрами из конфига и вставляет строку users. Пароль запрашивается
// интерактивно без эха; флаг --password оставлен для скриптов.
//
// Пример использования:
//
//	financectl adduser --username alice
func NewAddUserCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Создать пользователя напрямую в базе",
		Long: `Создание пользователя в обход HTTP API.

Пример:
  financectl adduser --username alice
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return fmt.Errorf("username обязателен")
			}

			if password == "" {
				p, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}
			if password == "" {
				return fmt.Errorf("пароль обязателен")
			}

			// миграции не гоняем: база уже должна быть поднята сервером
			if err := config.Init(app.Cfg.DB, ""); err != nil {
				return err
			}
			db := config.GetDB()
			defer db.Close()

			hash, err := crypto.HashPassword(password, passwordParams(app.Cfg))
			if err != nil {
				return err
			}

			users := repository.NewUsersRepository(db)
			id, err := users.Create(cmd.Context(), username, hash)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %s created, id=%s\n", username, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for the new user")
	cmd.Flags().StringVar(&password, "password", "", "password (omit to be prompted)")
	cmd.MarkFlagRequired("username")

	return cmd
}

// promptPassword запрашивает пароль у пользователя.
// В терминале ввод идёт без эха; иначе читаем строку из stdin.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		r := bufio.NewReader(cmd.InOrStdin())
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

// passwordParams переводит конфиг в параметры хэширования crypto-пакета.
func passwordParams(cfg *config.Config) crypto.PasswordParams {
	return crypto.PasswordParams{
		Hasher: cfg.Password.Hasher,
		Argon2: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
		BcryptCost: cfg.Password.Bcrypt.Cost,
	}
}
