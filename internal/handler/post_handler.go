package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"

	"boardrtc/internal/app/db"
	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/app/user"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/logx"
	"boardrtc/internal/pkg/req"
	"boardrtc/internal/pkg/resp"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// FileMeta is an attachment reference inside a post.
type FileMeta struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type PostOut struct {
	ID        int64      `json:"id"`
	BoardID   int64      `json:"board_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    user.Brief `json:"author"`
	Files     []FileMeta `json:"files"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type PostListOut struct {
	ID        int64      `json:"id"`
	BoardID   int64      `json:"board_id"`
	Title     string     `json:"title"`
	Author    user.Brief `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

func fileDownloadURL(fileID int64) string {
	return fmt.Sprintf("/api/v1/files/%d/download", fileID)
}

func newPostOut(p dbc.GetPostRow, files []dbc.File) PostOut {
	return PostOut{
		ID:      p.ID,
		BoardID: p.BoardID,
		Title:   p.Title,
		Content: p.Content,
		Author:  user.Brief{ID: p.AuthorID, Username: p.AuthorUsername},
		Files: lo.Map(files, func(f dbc.File, _ int) FileMeta {
			return FileMeta{ID: f.ID, Filename: f.Filename, URL: fileDownloadURL(f.ID)}
		}),
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

// loadPost fetches a post with its attachments.
func loadPost(ctx context.Context, q dbc.Querier, postID int64) (PostOut, *errs.CustomError) {
	post, err := q.GetPost(ctx, postID)
	if err != nil {
		return PostOut{}, lookupError(err, errs.ErrPostNotFound)
	}

	files, err := q.ListFilesByPost(ctx, postID)
	if err != nil {
		return PostOut{}, errs.Internal(err)
	}

	return newPostOut(post, files), nil
}

// HandleListPosts lists posts of every board, newest first.
func HandleListPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, customErr := req.QueryPagination(r, DefaultPageSize, MaxPageSize)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		rows, err := deps.DB.ListPosts(r.Context(), dbc.ListPostsParams{
			Limit:  int32(page.Size),
			Offset: int32(page.Offset()),
		})
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondSuccess(w, r, lo.Map(rows, func(p dbc.ListPostsRow, _ int) PostListOut {
			return PostListOut{
				ID:        p.ID,
				BoardID:   p.BoardID,
				Title:     p.Title,
				Author:    user.Brief{ID: p.AuthorID, Username: p.AuthorUsername},
				CreatedAt: p.CreatedAt.Time,
			}
		}))
	}
}

// HandleListBoardPosts lists one board's posts, newest first.
func HandleListBoardPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardID, customErr := req.PathInt64(chi.URLParam(r, "boardID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		page, customErr := req.QueryPagination(r, DefaultPageSize, MaxPageSize)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.DB.GetBoard(r.Context(), boardID); err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrBoardNotFound))
			return
		}

		rows, err := deps.DB.ListPostsByBoard(r.Context(), dbc.ListPostsByBoardParams{
			BoardID: boardID,
			Limit:   int32(page.Size),
			Offset:  int32(page.Offset()),
		})
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondSuccess(w, r, lo.Map(rows, func(p dbc.ListPostsByBoardRow, _ int) PostListOut {
			return PostListOut{
				ID:        p.ID,
				BoardID:   p.BoardID,
				Title:     p.Title,
				Author:    user.Brief{ID: p.AuthorID, Username: p.AuthorUsername},
				CreatedAt: p.CreatedAt.Time,
			}
		}))
	}
}

// HandleGetPost returns a post with its author and attachments.
func HandleGetPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, customErr := req.PathInt64(chi.URLParam(r, "postID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, customErr := loadPost(r.Context(), deps.DB, postID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, post)
	}
}

type CreatePostInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// HandleCreatePost adds a post to a board.
func HandleCreatePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		boardID, customErr := req.PathInt64(chi.URLParam(r, "boardID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreatePostInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.DB.CreatePost(r.Context(), dbc.CreatePostParams{
			BoardID:  boardID,
			Title:    input.Title,
			Content:  input.Content,
			AuthorID: identity.UserID,
		})
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrBoardNotFound))
				return
			}
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondCreated(w, r, newPostOut(dbc.GetPostRow{
			ID:             post.ID,
			BoardID:        post.BoardID,
			Title:          post.Title,
			Content:        post.Content,
			AuthorID:       post.AuthorID,
			CreatedAt:      post.CreatedAt,
			UpdatedAt:      post.UpdatedAt,
			AuthorUsername: identity.Username,
		}, nil))
	}
}

type UpdatePostInput struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// HandleUpdatePost applies a partial update. Only the author or an admin may
// edit a post.
func HandleUpdatePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		postID, customErr := req.PathInt64(chi.URLParam(r, "postID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input UpdatePostInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.DB.GetPost(r.Context(), postID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrPostNotFound))
			return
		}

		if !user.CanModify(identity.UserID, identity.IsAdmin, post.AuthorID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		params := dbc.UpdatePostParams{ID: postID}
		if input.Title != nil {
			params.Title = pgtype.Text{String: *input.Title, Valid: true}
		}
		if input.Content != nil {
			params.Content = pgtype.Text{String: *input.Content, Valid: true}
		}

		if _, err := deps.DB.UpdatePost(r.Context(), params); err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrPostNotFound))
			return
		}

		updated, customErr := loadPost(r.Context(), deps.DB, postID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeletePost removes a post with its comments and attachments. Only the
// author or an admin may delete it.
func HandleDeletePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		postID, customErr := req.PathInt64(chi.URLParam(r, "postID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.DB.GetPost(r.Context(), postID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrPostNotFound))
			return
		}

		if !user.CanModify(identity.UserID, identity.IsAdmin, post.AuthorID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		files, err := deps.DB.ListFilesByPost(r.Context(), postID)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		if err := deps.DB.DeletePost(r.Context(), postID); err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		// Rows are gone with the post; objects are removed best effort.
		if deps.Storage != nil {
			for _, f := range files {
				if err := deps.Storage.Delete(r.Context(), f.ObjectKey); err != nil {
					logx.Warn("Orphaned attachment object after post delete", "post_id", postID, "key", f.ObjectKey, "error", err)
				}
			}
		}

		resp.RespondNoContent(w)
	}
}
