package handler

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/app/storage"
	"boardrtc/internal/app/user"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/logx"
	"boardrtc/internal/pkg/req"
	"boardrtc/internal/pkg/resp"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the file itself.
const multipartOverhead int64 = 1 << 20

type FileOut struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

func newFileOut(f dbc.File) FileOut {
	return FileOut{
		ID:          f.ID,
		PostID:      f.PostID,
		Filename:    f.Filename,
		URL:         fileDownloadURL(f.ID),
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt.Time,
	}
}

// requireStorage answers ErrFileStorageFailed when no bucket is configured.
func requireStorage(deps *AppDeps, w http.ResponseWriter, r *http.Request) bool {
	if deps.Storage == nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
		return false
	}
	return true
}

// HandleUploadFile attaches the multipart field "file" to a post. The content
// type is sniffed from the bytes, the object is written to the bucket and then
// its metadata row is recorded.
func HandleUploadFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		if !requireStorage(deps, w, r) {
			return
		}

		postID, customErr := req.PathInt64(chi.URLParam(r, "postID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		maxBytes := deps.Config.MaxUploadBytes()
		if customErr := req.SetupMultipart(w, r, maxBytes+multipartOverhead); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("file")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		defer file.Close()

		if customErr := storage.ValidateFileSize(header.Size, maxBytes); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.DB.GetPost(r.Context(), postID); err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrPostNotFound))
			return
		}

		detected, customErr := storage.DetectFileType(file)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		filename := filepath.Base(header.Filename)
		key := storage.ObjectKey(postID, filename, detected)

		if err := deps.Storage.Upload(r.Context(), key, file, detected.String()); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		meta, err := deps.DB.CreateFile(r.Context(), dbc.CreateFileParams{
			Filename:    filename,
			ObjectKey:   key,
			ContentType: detected.String(),
			Size:        header.Size,
			PostID:      postID,
			UploaderID:  pgtype.Int8{Int64: identity.UserID, Valid: true},
		})
		if err != nil {
			if delErr := deps.Storage.Delete(context.WithoutCancel(r.Context()), key); delErr != nil {
				logx.Warn("Orphaned attachment object after failed insert", "key", key, "error", delErr)
			}
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		logx.Info("Attachment uploaded", "post_id", postID, "file_id", meta.ID, "size", meta.Size)
		resp.RespondCreated(w, r, newFileOut(meta))
	}
}

// HandleDownloadFile redirects to a short lived presigned URL for the object.
func HandleDownloadFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireStorage(deps, w, r) {
			return
		}

		fileID, customErr := req.PathInt64(chi.URLParam(r, "fileID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		meta, err := deps.DB.GetFile(r.Context(), fileID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrFileNotFound))
			return
		}

		url, err := deps.Storage.PresignDownload(r.Context(), meta.ObjectKey, storage.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}

// HandleDeleteFile removes an attachment. Only the uploader or an admin may
// delete it; a file whose uploader account is gone is admin only.
func HandleDeleteFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		if !requireStorage(deps, w, r) {
			return
		}

		fileID, customErr := req.PathInt64(chi.URLParam(r, "fileID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		meta, err := deps.DB.GetFile(r.Context(), fileID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrFileNotFound))
			return
		}

		owner := int64(0)
		if meta.UploaderID.Valid {
			owner = meta.UploaderID.Int64
		}
		if !user.CanModify(identity.UserID, identity.IsAdmin, owner) {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.Storage.Delete(r.Context(), meta.ObjectKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		if err := deps.DB.DeleteFile(r.Context(), meta.ID); err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondNoContent(w)
	}
}
