package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/app/history"
	"boardrtc/internal/app/realtime"
	"boardrtc/internal/configs"
	"boardrtc/internal/pkg/auth/jwt"
)

const testSecret = "handler-test-secret"

// memQuerier is an in-memory dbc.Querier with the constraint behaviour the
// handlers rely on: unique names, foreign keys and cascading deletes.
type memQuerier struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]dbc.User
	boards   map[int64]dbc.Board
	posts    map[int64]dbc.Post
	comments map[int64]dbc.Comment
	files    map[int64]dbc.File
}

var _ dbc.Querier = (*memQuerier)(nil)

func newMemQuerier() *memQuerier {
	return &memQuerier{
		users:    make(map[int64]dbc.User),
		boards:   make(map[int64]dbc.Board),
		posts:    make(map[int64]dbc.Post),
		comments: make(map[int64]dbc.Comment),
		files:    make(map[int64]dbc.File),
	}
}

var (
	errUnique = &pgconn.PgError{Code: "23505"}
	errFK     = &pgconn.PgError{Code: "23503"}
)

func (m *memQuerier) id() int64 {
	m.nextID++
	return m.nextID
}

// now hands out strictly increasing timestamps so ordering is deterministic.
func (m *memQuerier) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Unix(1_700_000_000+m.nextID, 0).UTC(), Valid: true}
}

func (m *memQuerier) CreateUser(_ context.Context, arg dbc.CreateUserParams) (dbc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == arg.Username || u.Email == arg.Email {
			return dbc.User{}, errUnique
		}
	}
	u := dbc.User{
		ID:             m.id(),
		Username:       arg.Username,
		Firstname:      arg.Firstname,
		Lastname:       arg.Lastname,
		Email:          arg.Email,
		HashedPassword: arg.HashedPassword,
		IsActive:       true,
	}
	u.CreatedAt = m.now()
	m.users[u.ID] = u
	return u, nil
}

func (m *memQuerier) GetUserByID(_ context.Context, id int64) (dbc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return dbc.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memQuerier) GetUserByUsername(_ context.Context, username string) (dbc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dbc.User{}, pgx.ErrNoRows
}

func (m *memQuerier) UpdateUserPassword(_ context.Context, arg dbc.UpdateUserPasswordParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[arg.ID]
	if ok {
		u.HashedPassword = arg.HashedPassword
		m.users[arg.ID] = u
	}
	return nil
}

func (m *memQuerier) setAdmin(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[id]
	u.IsAdmin = true
	m.users[id] = u
}

func (m *memQuerier) CreateBoard(_ context.Context, arg dbc.CreateBoardParams) (dbc.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.boards {
		if b.Name == arg.Name {
			return dbc.Board{}, errUnique
		}
	}
	b := dbc.Board{ID: m.id(), Name: arg.Name, Description: arg.Description}
	b.CreatedAt = m.now()
	m.boards[b.ID] = b
	return b, nil
}

func (m *memQuerier) GetBoard(_ context.Context, id int64) (dbc.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.boards[id]
	if !ok {
		return dbc.Board{}, pgx.ErrNoRows
	}
	return b, nil
}

func (m *memQuerier) ListBoards(context.Context) ([]dbc.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []dbc.Board
	for _, b := range m.boards {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b dbc.Board) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memQuerier) CreatePost(_ context.Context, arg dbc.CreatePostParams) (dbc.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.boards[arg.BoardID]; !ok {
		return dbc.Post{}, errFK
	}
	p := dbc.Post{ID: m.id(), BoardID: arg.BoardID, Title: arg.Title, Content: arg.Content, AuthorID: arg.AuthorID}
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	m.posts[p.ID] = p
	return p, nil
}

func (m *memQuerier) GetPost(_ context.Context, id int64) (dbc.GetPostRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return dbc.GetPostRow{}, pgx.ErrNoRows
	}
	return dbc.GetPostRow{
		ID: p.ID, BoardID: p.BoardID, Title: p.Title, Content: p.Content, AuthorID: p.AuthorID,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt, AuthorUsername: m.users[p.AuthorID].Username,
	}, nil
}

// sortedPosts returns posts matching keep, newest first.
func (m *memQuerier) sortedPosts(keep func(dbc.Post) bool) []dbc.Post {
	var out []dbc.Post
	for _, p := range m.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b dbc.Post) int { return int(b.ID - a.ID) })
	return out
}

func paginate[T any](items []T, limit, offset int32) []T {
	if int(offset) >= len(items) {
		return nil
	}
	end := min(int(offset+limit), len(items))
	return items[offset:end]
}

func (m *memQuerier) ListPosts(_ context.Context, arg dbc.ListPostsParams) ([]dbc.ListPostsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []dbc.ListPostsRow
	for _, p := range paginate(m.sortedPosts(func(dbc.Post) bool { return true }), arg.Limit, arg.Offset) {
		out = append(out, dbc.ListPostsRow{
			ID: p.ID, BoardID: p.BoardID, Title: p.Title, AuthorID: p.AuthorID,
			CreatedAt: p.CreatedAt, AuthorUsername: m.users[p.AuthorID].Username,
		})
	}
	return out, nil
}

func (m *memQuerier) ListPostsByBoard(_ context.Context, arg dbc.ListPostsByBoardParams) ([]dbc.ListPostsByBoardRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := m.sortedPosts(func(p dbc.Post) bool { return p.BoardID == arg.BoardID })
	var out []dbc.ListPostsByBoardRow
	for _, p := range paginate(posts, arg.Limit, arg.Offset) {
		out = append(out, dbc.ListPostsByBoardRow{
			ID: p.ID, BoardID: p.BoardID, Title: p.Title, AuthorID: p.AuthorID,
			CreatedAt: p.CreatedAt, AuthorUsername: m.users[p.AuthorID].Username,
		})
	}
	return out, nil
}

func (m *memQuerier) UpdatePost(_ context.Context, arg dbc.UpdatePostParams) (dbc.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[arg.ID]
	if !ok {
		return dbc.Post{}, pgx.ErrNoRows
	}
	if arg.Title.Valid {
		p.Title = arg.Title.String
	}
	if arg.Content.Valid {
		p.Content = arg.Content.String
	}
	p.UpdatedAt = m.now()
	m.posts[p.ID] = p
	return p, nil
}

func (m *memQuerier) DeletePost(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.posts, id)
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	for fid, f := range m.files {
		if f.PostID == id {
			delete(m.files, fid)
		}
	}
	return nil
}

func (m *memQuerier) CreateComment(_ context.Context, arg dbc.CreateCommentParams) (dbc.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[arg.PostID]; !ok {
		return dbc.Comment{}, errFK
	}
	c := dbc.Comment{
		ID: m.id(), Content: arg.Content, ParentID: arg.ParentID, Depth: arg.Depth,
		PostID: arg.PostID, AuthorID: arg.AuthorID,
	}
	c.CreatedAt = m.now()
	c.UpdatedAt = c.CreatedAt
	m.comments[c.ID] = c
	return c, nil
}

func (m *memQuerier) commentRow(c dbc.Comment) dbc.GetCommentRow {
	return dbc.GetCommentRow{
		ID: c.ID, Content: c.Content, ParentID: c.ParentID, Depth: c.Depth, PostID: c.PostID,
		AuthorID: c.AuthorID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
		AuthorUsername: m.users[c.AuthorID].Username,
	}
}

func (m *memQuerier) sortedComments(keep func(dbc.Comment) bool) []dbc.GetCommentRow {
	var out []dbc.GetCommentRow
	for _, c := range m.comments {
		if keep(c) {
			out = append(out, m.commentRow(c))
		}
	}
	slices.SortFunc(out, func(a, b dbc.GetCommentRow) int { return int(a.ID - b.ID) })
	return out
}

func (m *memQuerier) GetComment(_ context.Context, id int64) (dbc.GetCommentRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[id]
	if !ok {
		return dbc.GetCommentRow{}, pgx.ErrNoRows
	}
	return m.commentRow(c), nil
}

func (m *memQuerier) ListCommentsByPost(_ context.Context, postID int64) ([]dbc.ListCommentsByPostRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []dbc.ListCommentsByPostRow
	for _, c := range m.sortedComments(func(c dbc.Comment) bool { return c.PostID == postID }) {
		out = append(out, dbc.ListCommentsByPostRow(c))
	}
	return out, nil
}

func (m *memQuerier) ListReplies(_ context.Context, parentID pgtype.Int8) ([]dbc.ListRepliesRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []dbc.ListRepliesRow
	for _, c := range m.sortedComments(func(c dbc.Comment) bool { return c.ParentID == parentID }) {
		out = append(out, dbc.ListRepliesRow(c))
	}
	return out, nil
}

func (m *memQuerier) UpdateComment(_ context.Context, arg dbc.UpdateCommentParams) (dbc.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[arg.ID]
	if !ok {
		return dbc.Comment{}, pgx.ErrNoRows
	}
	c.Content = arg.Content
	c.UpdatedAt = m.now()
	m.comments[c.ID] = c
	return c, nil
}

func (m *memQuerier) DeleteComment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCommentLocked(id)
	return nil
}

func (m *memQuerier) deleteCommentLocked(id int64) {
	delete(m.comments, id)
	for cid, c := range m.comments {
		if c.ParentID.Valid && c.ParentID.Int64 == id {
			m.deleteCommentLocked(cid)
		}
	}
}

func (m *memQuerier) CreateFile(_ context.Context, arg dbc.CreateFileParams) (dbc.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[arg.PostID]; !ok {
		return dbc.File{}, errFK
	}
	f := dbc.File{
		ID: m.id(), Filename: arg.Filename, ObjectKey: arg.ObjectKey, ContentType: arg.ContentType,
		Size: arg.Size, PostID: arg.PostID, UploaderID: arg.UploaderID,
	}
	f.CreatedAt = m.now()
	m.files[f.ID] = f
	return f, nil
}

func (m *memQuerier) GetFile(_ context.Context, id int64) (dbc.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[id]
	if !ok {
		return dbc.File{}, pgx.ErrNoRows
	}
	return f, nil
}

func (m *memQuerier) ListFilesByPost(_ context.Context, postID int64) ([]dbc.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []dbc.File
	for _, f := range m.files {
		if f.PostID == postID {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b dbc.File) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memQuerier) DeleteFile(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, id)
	return nil
}

// memStorage is a StorageService keeping objects in a map.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *memStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memStorage) PresignDownload(_ context.Context, key string, duration time.Duration) (string, error) {
	return "https://bucket.test/" + key + "?expires=" + duration.String(), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for k := range s.objects {
		out = append(out, k)
	}
	return out
}

// testApp is a router backed by in-memory collaborators.
type testApp struct {
	db      *memQuerier
	storage *memStorage
	history *history.Memory
	peers   *realtime.Registry[string]
	server  *httptest.Server
}

func newTestApp(t *testing.T, withStorage bool) *testApp {
	t.Helper()

	app := &testApp{
		db:      newMemQuerier(),
		history: history.NewMemory(),
		peers:   realtime.NewRegistry[string](),
	}
	deps := &AppDeps{
		Config: &configs.AppConfig{
			Environment:         configs.EnvDevelopment,
			JWTSecret:           testSecret,
			AccessTokenLifetime: time.Hour,
			MaxUploadMB:         1,
		},
		DB:     app.db,
		Chat:   realtime.NewChatRelay(realtime.NewRegistry[realtime.Conn](), app.history),
		Signal: realtime.NewSignalRelay(app.peers),
	}
	if withStorage {
		app.storage = newMemStorage()
		deps.Storage = app.storage
	}

	app.server = httptest.NewServer(Router(deps))
	t.Cleanup(app.server.Close)
	return app
}

// envelope is the decoded resp.JSONResponse.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return a.send(t, req)
}

func (a *testApp) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 && res.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return res.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// signup registers username and returns a token for it.
func (a *testApp) signup(t *testing.T, username string) (int64, string) {
	t.Helper()

	status, env := a.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"username":  username,
		"firstname": "Test",
		"email":     username + "@example.com",
		"password":  "secret-pass",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	created := decode[struct {
		UserID int64 `json:"userId"`
	}](t, env)

	token, err := jwt.GenerateToken(&jwt.Payload{UserID: created.UserID, Username: username}, testSecret, time.Hour)
	require.NoError(t, err)
	return created.UserID, token
}

// adminToken promotes id and returns a token carrying the admin claim.
func (a *testApp) adminToken(t *testing.T, id int64, username string) string {
	t.Helper()

	a.db.setAdmin(id)
	token, err := jwt.GenerateToken(&jwt.Payload{UserID: id, Username: username, IsAdmin: true}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}
