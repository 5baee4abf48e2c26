package handler

import (
	"net/http"
	"regexp"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"

	"boardrtc/internal/app/db"
	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/pkg/auth/jwt"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/logx"
	"boardrtc/internal/pkg/req"
	"boardrtc/internal/pkg/resp"
)

// TokenType is reported next to every issued access token.
const TokenType = "bearer"

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)
)

type SignupInput struct {
	Username  string  `json:"username" validate:"required"`
	Firstname string  `json:"firstname" validate:"required,max=128"`
	Lastname  *string `json:"lastname" validate:"omitempty,max=128"`
	Email     string  `json:"email" validate:"required,email,max=128"`
	// bcrypt ignores input past 72 bytes.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// HandleSignup creates an account. Usernames and emails are unique.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SignupInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !usernameRegex.MatchString(input.Username) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		params := dbc.CreateUserParams{
			Username:       input.Username,
			Firstname:      input.Firstname,
			Email:          input.Email,
			HashedPassword: string(hashedPassword),
		}
		if input.Lastname != nil {
			params.Lastname = pgtype.Text{String: *input.Lastname, Valid: true}
		}

		user, err := deps.DB.CreateUser(r.Context(), params)
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("signup conflict: username or email already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondCreated(w, r, map[string]any{
			"userId":   user.ID,
			"username": user.Username,
		})
	}
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies user credentials and issues a JWT access token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		dbUser, err := deps.DB.GetUserByUsername(r.Context(), input.Username)
		if err != nil {
			if !db.IsNotFound(err) {
				logx.Error(err, "login: user fetch failed", "username", input.Username)
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(dbUser.HashedPassword), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "username", input.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if !dbUser.IsActive {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserInactive))
			return
		}

		payload := &jwt.Payload{
			UserID:   dbUser.ID,
			Username: dbUser.Username,
			IsAdmin:  dbUser.IsAdmin,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, deps.Config.AccessTokenLifetime)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"access_token": token,
			"token_type":   TokenType,
		})
	}
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// HandleChangePassword replaces the caller's password and returns a fresh token.
func HandleChangePassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		var input ChangePasswordInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.DB.GetUserByID(r.Context(), identity.UserID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrUserNotFound))
			return
		}

		err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.OldPassword))
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrOldPasswordInvalid))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		err = deps.DB.UpdateUserPassword(r.Context(), dbc.UpdateUserPasswordParams{
			ID:             user.ID,
			HashedPassword: string(hashedPassword),
		})
		if err != nil {
			logx.Error(err, "failed to update user password in database", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		payload := &jwt.Payload{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}
		newToken, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, deps.Config.AccessTokenLifetime)
		if err != nil {
			logx.Error(err, "failed to generate token after password change", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"access_token": newToken,
			"token_type":   TokenType,
		})
	}
}
