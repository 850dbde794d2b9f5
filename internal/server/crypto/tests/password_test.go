package tests

import (
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
)

func argon2Params() crypto.PasswordParams {
	return crypto.PasswordParams{
		Hasher: "argon2id",
		Argon2: crypto.Argon2Params{
			Time:      1,
			MemoryKiB: 8 * 1024,
			Threads:   1,
			KeyLen:    32,
			SaltLen:   16,
		},
	}
}

// Корректный пароль проходит, неверный — нет
func TestHashPassword_Argon2id_RoundTrip(t *testing.T) {
	hash, err := crypto.HashPassword("StrongPass123", argon2Params())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := crypto.VerifyPassword("StrongPass123", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = crypto.VerifyPassword("WrongPass", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

// Одинаковые пароли дают разные хэши (случайная соль)
func TestHashPassword_Argon2id_RandomSalt(t *testing.T) {
	h1, err := crypto.HashPassword("StrongPass123", argon2Params())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := crypto.HashPassword("StrongPass123", argon2Params())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different salts to produce different hashes")
	}
}

// bcrypt тоже поддерживается, алгоритм определяется по формату хэша
func TestHashPassword_Bcrypt_RoundTrip(t *testing.T) {
	p := crypto.PasswordParams{Hasher: "bcrypt", BcryptCost: 4}

	hash, err := crypto.HashPassword("StrongPass123", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := crypto.VerifyPassword("StrongPass123", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = crypto.VerifyPassword("WrongPass", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	if _, err := crypto.HashPassword("", argon2Params()); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestHashPassword_UnknownHasher(t *testing.T) {
	if _, err := crypto.HashPassword("x", crypto.PasswordParams{Hasher: "md5"}); err == nil {
		t.Fatalf("expected error for unknown hasher")
	}
}

func TestVerifyPassword_BadFormat(t *testing.T) {
	if _, err := crypto.VerifyPassword("x", "garbage"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
