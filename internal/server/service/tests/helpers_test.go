package tests

import (
	"time"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
)

// testConfig — конфиг для unit-тестов сервисного слоя.
// Параметры argon2 минимальные, чтобы тесты не тормозили.
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "finance-tracker-test",
			Audience:   "finance-tracker-web",
			SessionTTL: time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "test-signing-key-0123456789abcdef",
			},
		},
		Password: config.PasswordConfig{
			Hasher: "argon2id",
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
	}
}
