package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"

	"boardrtc/internal/app/db"
	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/logx"
	"boardrtc/internal/pkg/req"
	"boardrtc/internal/pkg/resp"
)

// BoardRoomName is the chat room attached to a board.
func BoardRoomName(boardID int64) string {
	return fmt.Sprintf("board_id_%d", boardID)
}

type BoardOut struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	RoomName    string    `json:"roomName"`
}

func newBoardOut(b dbc.Board) BoardOut {
	out := BoardOut{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt.Time,
		RoomName:  BoardRoomName(b.ID),
	}
	if b.Description.Valid {
		out.Description = &b.Description.String
	}
	return out
}

// HandleListBoards returns every board.
func HandleListBoards(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards, err := deps.DB.ListBoards(r.Context())
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondSuccess(w, r, lo.Map(boards, func(b dbc.Board, _ int) BoardOut {
			return newBoardOut(b)
		}))
	}
}

// HandleGetBoard returns one board.
func HandleGetBoard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardID, customErr := req.PathInt64(chi.URLParam(r, "boardID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		board, err := deps.DB.GetBoard(r.Context(), boardID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrBoardNotFound))
			return
		}

		resp.RespondSuccess(w, r, newBoardOut(board))
	}
}

type CreateBoardInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

// HandleCreateBoard creates a board. Board names are unique.
func HandleCreateBoard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		var input CreateBoardInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		params := dbc.CreateBoardParams{Name: input.Name}
		if input.Description != nil {
			params.Description = pgtype.Text{String: *input.Description, Valid: true}
		}

		board, err := deps.DB.CreateBoard(r.Context(), params)
		if err != nil {
			if db.IsUniqueViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrBoardNameExists))
				return
			}
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		logx.Info("Board created", "board_id", board.ID, "user_id", identity.UserID)
		resp.RespondCreated(w, r, newBoardOut(board))
	}
}
