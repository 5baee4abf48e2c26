package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"boardrtc/internal/pkg/errs"
)

// PresignedURLDuration is how long a download link stays valid.
const PresignedURLDuration = 5 * time.Minute

// allowedMIMETypes lists the accepted upload formats. A sniffed type is
// accepted when it or one of its parents is listed, so JSON and CSV pass as
// text/plain.
var allowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"application/zip",
	"text/plain",
	"audio/mpeg",
	"video/mp4",
}

// Attachment describes an uploaded file before its metadata row is written.
type Attachment struct {
	Key      string `json:"fileKey"`
	Name     string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"fileSize"`
}

// ValidateFileSize rejects empty files and files over maxBytes.
func ValidateFileSize(fileSize, maxBytes int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > maxBytes {
		return errs.NewError(errs.ErrFileSizeTooLarge, maxBytes>>20)
	}

	return nil
}

// DetectFileType sniffs the content of r and rewinds it. The client supplied
// Content-Type is never trusted.
func DetectFileType(r io.ReadSeeker) (*mimetype.MIME, *errs.CustomError) {
	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, errs.NewError(errs.ErrFormParseFailed)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errs.NewError(errs.ErrFormParseFailed)
	}

	for m := detected; m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), allowedMIMETypes...) {
			return detected, nil
		}
	}

	return nil, errs.NewError(errs.ErrFileTypeInvalid)
}

// ObjectKey returns a fresh bucket key for a file attached to postID:
// posts/{postID}/{uuid}{ext}. The extension comes from the original name, or
// from the sniffed type when the name has none.
func ObjectKey(postID int64, fileName string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" && detected != nil {
		ext = detected.Extension()
	}

	return fmt.Sprintf("posts/%d/%s%s", postID, uuid.NewString(), ext)
}
