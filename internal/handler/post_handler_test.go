package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardrtc/internal/pkg/errs"
)

func (a *testApp) createPost(t *testing.T, token string, boardID int64, title string) PostOut {
	t.Helper()

	status, env := a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/boards/%d/posts", boardID), token, map[string]any{
		"title":   title,
		"content": "body of " + title,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	return decode[PostOut](t, env)
}

func TestPosts_CreateListGet(t *testing.T) {
	app := newTestApp(t, false)
	authorID, token := app.signup(t, "author")
	board := app.createBoard(t, token, "news")
	other := app.createBoard(t, token, "other")

	first := app.createPost(t, token, board.ID, "first")
	second := app.createPost(t, token, board.ID, "second")
	app.createPost(t, token, other.ID, "elsewhere")

	assert.Equal(t, board.ID, first.BoardID)
	assert.Equal(t, authorID, first.Author.ID)
	assert.Equal(t, "author", first.Author.Username)
	assert.Empty(t, first.Files)

	status, env := app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/boards/%d/posts", board.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]PostListOut](t, env)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	status, env = app.do(t, http.MethodGet, "/api/v1/posts?page=2&size=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	page2 := decode[[]PostListOut](t, env)
	require.Len(t, page2, 1)
	assert.Equal(t, first.ID, page2[0].ID)

	status, env = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", second.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[PostOut](t, env)
	assert.Equal(t, "body of second", got.Content)

	status, env = app.do(t, http.MethodGet, "/api/v1/posts?size=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, errs.ErrInvalidParams, env.Code)
}

func TestPosts_UnknownBoard(t *testing.T) {
	app := newTestApp(t, false)
	_, token := app.signup(t, "author")

	status, env := app.do(t, http.MethodPost, "/api/v1/boards/404/posts", token, map[string]any{
		"title":   "lost",
		"content": "nowhere",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errs.ErrBoardNotFound, env.Code)

	status, env = app.do(t, http.MethodGet, "/api/v1/boards/404/posts", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errs.ErrBoardNotFound, env.Code)
}

func TestPosts_OnlyAuthorOrAdminModifies(t *testing.T) {
	app := newTestApp(t, false)
	_, authorToken := app.signup(t, "author")
	_, strangerToken := app.signup(t, "stranger")
	adminID, _ := app.signup(t, "admin")
	adminToken := app.adminToken(t, adminID, "admin")

	board := app.createBoard(t, authorToken, "b")
	post := app.createPost(t, authorToken, board.ID, "mine")
	postPath := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	status, env := app.do(t, http.MethodPut, postPath, strangerToken, map[string]any{"title": "hijacked"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, errs.ErrForbidden, env.Code)

	status, env = app.do(t, http.MethodPut, postPath, authorToken, map[string]any{"title": "renamed"})
	require.Equal(t, http.StatusOK, status, env.Message)
	updated := decode[PostOut](t, env)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "body of mine", updated.Content, "omitted fields are kept")

	status, _ = app.do(t, http.MethodDelete, postPath, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = app.do(t, http.MethodDelete, postPath, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = app.do(t, http.MethodGet, postPath, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errs.ErrPostNotFound, env.Code)
}
