package handler

import (
	"net/http"

	"boardrtc/internal/app/db"
	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/app/realtime"
	"boardrtc/internal/app/storage"
	"boardrtc/internal/configs"
	"boardrtc/internal/pkg/auth/jwt"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/resp"
)

// AppDeps carries everything the handlers need. Storage is nil when no bucket
// is configured.
type AppDeps struct {
	Config  *configs.AppConfig
	DB      dbc.Querier
	Storage storage.StorageService
	Chat    *realtime.ChatRelay
	Signal  *realtime.SignalRelay
}

// requireAuth returns the caller's token payload, or answers ErrUnauthorized
// and returns nil.
func requireAuth(w http.ResponseWriter, r *http.Request) *jwt.Payload {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
		return nil
	}
	return payload
}

// lookupError maps a failed :one query to notFoundCode, or to ErrUnknown for
// anything other than a missing row.
func lookupError(err error, notFoundCode int) *errs.CustomError {
	if db.IsNotFound(err) {
		return errs.NewError(notFoundCode)
	}
	return errs.Internal(err)
}
