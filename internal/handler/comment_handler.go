package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"

	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/app/user"
	"boardrtc/internal/pkg/auth/jwt"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/req"
	"boardrtc/internal/pkg/resp"
)

type CommentOut struct {
	ID        int64        `json:"id"`
	PostID    int64        `json:"post_id"`
	Content   string       `json:"content"`
	Depth     int32        `json:"depth"`
	ParentID  *int64       `json:"parent_id"`
	Author    user.Brief   `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Replies   []CommentOut `json:"replies"`
}

func newCommentOut(c dbc.GetCommentRow) CommentOut {
	out := CommentOut{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Depth:     c.Depth,
		Author:    user.Brief{ID: c.AuthorID, Username: c.AuthorUsername},
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
		Replies:   []CommentOut{},
	}
	if c.ParentID.Valid {
		out.ParentID = &c.ParentID.Int64
	}
	return out
}

// withAuthor joins a freshly written comment row with its author's name.
func withAuthor(c dbc.Comment, username string) dbc.GetCommentRow {
	return dbc.GetCommentRow{
		ID:             c.ID,
		Content:        c.Content,
		ParentID:       c.ParentID,
		Depth:          c.Depth,
		PostID:         c.PostID,
		AuthorID:       c.AuthorID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		AuthorUsername: username,
	}
}

// buildCommentTree nests a post's comments under their parents. rows must be
// ordered oldest first; siblings keep that order.
func buildCommentTree(rows []dbc.ListCommentsByPostRow) []CommentOut {
	children := lo.GroupBy(rows, func(c dbc.ListCommentsByPostRow) int64 {
		if !c.ParentID.Valid {
			return 0
		}
		return c.ParentID.Int64
	})

	var build func(parentID int64) []CommentOut
	build = func(parentID int64) []CommentOut {
		return lo.Map(children[parentID], func(c dbc.ListCommentsByPostRow, _ int) CommentOut {
			out := newCommentOut(dbc.GetCommentRow(c))
			out.Replies = build(c.ID)
			return out
		})
	}

	return build(0)
}

// HandleListComments returns a post's comments as a tree.
func HandleListComments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, customErr := req.PathInt64(chi.URLParam(r, "postID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.DB.GetPost(r.Context(), postID); err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrPostNotFound))
			return
		}

		rows, err := deps.DB.ListCommentsByPost(r.Context(), postID)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondSuccess(w, r, buildCommentTree(rows))
	}
}

type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// HandleCreateComment adds a top level comment to a post.
func HandleCreateComment(deps *AppDeps) http.HandlerFunc {
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

		var input CommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.DB.GetPost(r.Context(), postID); err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrPostNotFound))
			return
		}

		comment, err := deps.DB.CreateComment(r.Context(), dbc.CreateCommentParams{
			Content:  input.Content,
			PostID:   postID,
			AuthorID: identity.UserID,
		})
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondCreated(w, r, newCommentOut(withAuthor(comment, identity.Username)))
	}
}

// HandleListReplies returns the direct replies of a comment, oldest first.
func HandleListReplies(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, customErr := req.PathInt64(chi.URLParam(r, "commentID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.DB.GetComment(r.Context(), commentID); err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrCommentNotFound))
			return
		}

		rows, err := deps.DB.ListReplies(r.Context(), pgtype.Int8{Int64: commentID, Valid: true})
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondSuccess(w, r, lo.Map(rows, func(c dbc.ListRepliesRow, _ int) CommentOut {
			return newCommentOut(dbc.GetCommentRow(c))
		}))
	}
}

// HandleCreateReply answers a comment. The reply sits one level deeper and
// belongs to the parent's post.
func HandleCreateReply(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		parentID, customErr := req.PathInt64(chi.URLParam(r, "commentID"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		parent, err := deps.DB.GetComment(r.Context(), parentID)
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrCommentNotFound))
			return
		}

		reply, err := deps.DB.CreateComment(r.Context(), dbc.CreateCommentParams{
			Content:  input.Content,
			ParentID: pgtype.Int8{Int64: parent.ID, Valid: true},
			Depth:    parent.Depth + 1,
			PostID:   parent.PostID,
			AuthorID: identity.UserID,
		})
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondCreated(w, r, newCommentOut(withAuthor(reply, identity.Username)))
	}
}

type UpdateCommentInput struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=10000"`
}

// ownedComment loads a comment and checks the caller may change it. It
// answers the request itself on failure.
func ownedComment(deps *AppDeps, w http.ResponseWriter, r *http.Request, identity *jwt.Payload) (dbc.GetCommentRow, bool) {
	commentID, customErr := req.PathInt64(chi.URLParam(r, "commentID"))
	if customErr != nil {
		resp.RespondError(w, r, customErr)
		return dbc.GetCommentRow{}, false
	}

	comment, err := deps.DB.GetComment(r.Context(), commentID)
	if err != nil {
		resp.RespondError(w, r, lookupError(err, errs.ErrCommentNotFound))
		return dbc.GetCommentRow{}, false
	}

	if !user.CanModify(identity.UserID, identity.IsAdmin, comment.AuthorID) {
		resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
		return dbc.GetCommentRow{}, false
	}

	return comment, true
}

// HandleUpdateComment edits a comment's content. Only the author or an admin
// may edit it; an empty body leaves the comment unchanged.
func HandleUpdateComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		var input UpdateCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		comment, ok := ownedComment(deps, w, r, identity)
		if !ok {
			return
		}

		if input.Content == nil {
			resp.RespondSuccess(w, r, newCommentOut(comment))
			return
		}

		updated, err := deps.DB.UpdateComment(r.Context(), dbc.UpdateCommentParams{
			ID:      comment.ID,
			Content: *input.Content,
		})
		if err != nil {
			resp.RespondError(w, r, lookupError(err, errs.ErrCommentNotFound))
			return
		}

		resp.RespondSuccess(w, r, newCommentOut(withAuthor(updated, comment.AuthorUsername)))
	}
}

// HandleDeleteComment removes a comment and, through the foreign key, its
// replies.
func HandleDeleteComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := requireAuth(w, r)
		if identity == nil {
			return
		}

		comment, ok := ownedComment(deps, w, r, identity)
		if !ok {
			return
		}

		if err := deps.DB.DeleteComment(r.Context(), comment.ID); err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondNoContent(w)
	}
}
