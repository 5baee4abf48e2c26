package storage

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardrtc/internal/pkg/errs"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestValidateFileSize(t *testing.T) {
	const maxBytes = 2 << 20

	tests := []struct {
		name     string
		size     int64
		wantCode int
	}{
		{"empty", 0, errs.ErrInvalidParams},
		{"negative", -1, errs.ErrInvalidParams},
		{"small", 1024, 0},
		{"exactly the limit", maxBytes, 0},
		{"one byte over", maxBytes + 1, errs.ErrFileSizeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFileSize(tt.size, maxBytes)
			if tt.wantCode == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}

	t.Run("message names the limit", func(t *testing.T) {
		got := ValidateFileSize(maxBytes+1, maxBytes)
		require.NotNil(t, got)
		assert.Contains(t, got.Message, "max 2 MB")
	})
}

func TestDetectFileType(t *testing.T) {
	t.Run("png is sniffed and reader rewound", func(t *testing.T) {
		r := bytes.NewReader(pngHeader)

		detected, customErr := DetectFileType(r)
		require.Nil(t, customErr)
		assert.True(t, detected.Is("image/png"))

		rest, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, rest)
	})

	t.Run("json passes through its text parent", func(t *testing.T) {
		detected, customErr := DetectFileType(strings.NewReader(`{"a": 1}`))
		require.Nil(t, customErr)
		assert.True(t, detected.Is("application/json"))
	})

	t.Run("executable is rejected", func(t *testing.T) {
		elf := append([]byte("\x7fELF\x02\x01\x01\x00"), make([]byte, 64)...)

		_, customErr := DetectFileType(bytes.NewReader(elf))
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrFileTypeInvalid, customErr.Code)
	})
}

func TestObjectKey(t *testing.T) {
	pattern := regexp.MustCompile(`^posts/42/[0-9a-f-]{36}\.png$`)

	assert.Regexp(t, pattern, ObjectKey(42, "Photo.PNG", nil))
	assert.Regexp(t, pattern, ObjectKey(42, "no-extension", mimetype.Lookup("image/png")))
	assert.NotEqual(t, ObjectKey(42, "a.png", nil), ObjectKey(42, "a.png", nil))
	assert.Regexp(t, `^posts/7/[0-9a-f-]{36}$`, ObjectKey(7, "README", nil))
}
