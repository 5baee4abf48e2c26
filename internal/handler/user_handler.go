package handler

import (
	"net/http"

	"boardrtc/internal/app/user"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/resp"
)

// HandleGetMe returns the signed in user's profile. A token whose account has
// been removed is treated as unauthenticated.
func HandleGetMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		dbUser, err := deps.DB.GetUserByID(r.Context(), identity.UserID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrUnauthorized))
			return
		}

		resp.RespondSuccess(w, r, user.NewProfile(dbUser))
	}
}
