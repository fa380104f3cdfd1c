package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lost-and-found/pkg/apierror"
)

func TestCleanKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		want     string
		wantCode string
	}{
		{name: "plain key", key: "items/wallet-1.jpg", want: "items/wallet-1.jpg"},
		{name: "leading slash trimmed", key: "/claims/proof.jpg", want: "claims/proof.jpg"},
		{name: "backslashes normalized", key: `items\keys.jpg`, want: "items/keys.jpg"},
		{name: "empty", key: "  ", wantCode: "INVALID_KEY"},
		{name: "traversal", key: "items/../../etc/passwd", wantCode: "PATH_TRAVERSAL"},
		{name: "double slash", key: "items//a.jpg", wantCode: "INVALID_KEY"},
		{name: "hidden", key: "items/.env", wantCode: "INVALID_KEY"},
		{name: "control character", key: "items/a\nb.jpg", wantCode: "INVALID_KEY"},
		{name: "null byte", key: "items/a\x00.jpg", wantCode: "INVALID_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanKey(tt.key)
			if tt.wantCode == "" {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
				return
			}

			apiErr, ok := apierror.As(err)
			require.True(t, ok)
			require.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestKeyValidatorResolve(t *testing.T) {
	t.Parallel()

	validator, err := NewKeyValidator(t.TempDir())
	require.NoError(t, err)

	t.Run("resolves inside root", func(t *testing.T) {
		resolved, resolveErr := validator.Resolve("items/wallet.jpg")
		require.NoError(t, resolveErr)
		require.Equal(t, filepath.Join(validator.RootAbs(), "items", "wallet.jpg"), resolved)
	})

	t.Run("root itself is not a key", func(t *testing.T) {
		_, resolveErr := validator.Resolve("/")
		require.Error(t, resolveErr)
	})

	t.Run("within root check is prefix safe", func(t *testing.T) {
		require.False(t, isWithinRoot("/tmp/up", "/tmp/uploads/a.jpg"))
		require.True(t, isWithinRoot("/tmp/up", "/tmp/up/a.jpg"))
	})
}

func TestNewKeyValidator_EmptyRoot(t *testing.T) {
	_, err := NewKeyValidator(" ")
	require.Error(t, err)
}
