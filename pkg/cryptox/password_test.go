package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, VerifyPassword(tt.password, hash))
			require.ErrorIs(t, VerifyPassword(tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	} {
		require.ErrorIs(t, VerifyPassword("password", bad), ErrInvalidHash, bad)
	}
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("long-enough-1"))
	require.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	require.ErrorIs(t, ValidatePassword(strings.Repeat(" ", 12)), ErrWeakPassword)
	require.ErrorIs(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength+1)), ErrWeakPassword)
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		p, err := GeneratePassword()
		require.NoError(t, err)
		require.NoError(t, ValidatePassword(p))
		_, dup := seen[p]
		require.False(t, dup)
		seen[p] = struct{}{}
	}
}

func TestPepperPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")
	SetPepperPath(path)
	t.Cleanup(func() { SetPepperPath(filepath.Join(os.TempDir(), "cryptox-test-pepper")) })

	require.NoError(t, LoadPepper())
	first := GetPepper()

	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	SetPepperPath(path)
	require.NoError(t, LoadPepper())
	require.Equal(t, first, GetPepper())
	require.NoError(t, VerifyPassword("correct horse battery", hash))
}
