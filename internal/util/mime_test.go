package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsImageMIME(t *testing.T) {
	t.Parallel()

	require.True(t, IsImageMIME("image/png"))
	require.True(t, IsImageMIME(" IMAGE/JPEG "))
	require.True(t, IsImageMIME("image/webp; q=0.9"))
	require.False(t, IsImageMIME("application/pdf"))
	require.False(t, IsImageMIME("text/plain"))
	require.False(t, IsImageMIME(""))
}

func TestIsImageExtension(t *testing.T) {
	t.Parallel()

	require.True(t, IsImageExtension(".png"))
	require.True(t, IsImageExtension(".jfif"))
	require.True(t, IsImageExtension(" .JPEG "))
	require.False(t, IsImageExtension(".pdf"))
	require.False(t, IsImageExtension(""))
}

func TestDeclaredImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		filename    string
		want        bool
	}{
		{"declared image", "image/jpeg", "wallet.jpg", true},
		{"declared pdf", "application/pdf", "wallet.jpg", false},
		{"missing type uses extension", "", "wallet.PNG", true},
		{"octet stream uses extension", "application/octet-stream", "notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeclaredImage(tt.contentType, tt.filename))
		})
	}
}
