/*
Package handler provides the HTTP handlers and routing setup for the board server.

This file defines the main Router, applying middleware like logging, CORS and
IP-based rate limiting before delegating to the REST handlers and the two
realtime WebSocket endpoints.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"boardrtc/internal/pkg/auth/jwt"
	"boardrtc/internal/pkg/limiter"
	"boardrtc/internal/pkg/logx"
	"boardrtc/internal/pkg/resp"
)

const (
	AuthRate  = 0.2
	AuthBurst = 5
	JoinRate  = 0.5
	JoinBurst = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "boardrtc",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Use(authLimiter.Middleware)
			auth.Post("/signup", HandleSignup(deps))
			auth.Post("/login", HandleLogin(deps))
			auth.Post("/change-password", HandleChangePassword(deps))
		})

		api.Get("/users/me", HandleGetMe(deps))

		api.Route("/boards", func(boards chi.Router) {
			boards.Get("/", HandleListBoards(deps))
			boards.Post("/", HandleCreateBoard(deps))
			boards.Get("/{boardID}", HandleGetBoard(deps))
			boards.Get("/{boardID}/posts", HandleListBoardPosts(deps))
			boards.Post("/{boardID}/posts", HandleCreatePost(deps))
		})

		api.Route("/posts", func(posts chi.Router) {
			posts.Get("/", HandleListPosts(deps))
			posts.Get("/{postID}", HandleGetPost(deps))
			posts.Put("/{postID}", HandleUpdatePost(deps))
			posts.Delete("/{postID}", HandleDeletePost(deps))

			posts.Get("/{postID}/comments", HandleListComments(deps))
			posts.Post("/{postID}/comments", HandleCreateComment(deps))

			posts.Post("/{postID}/files", HandleUploadFile(deps))
		})

		api.Route("/comments/{commentID}", func(comments chi.Router) {
			comments.Put("/", HandleUpdateComment(deps))
			comments.Delete("/", HandleDeleteComment(deps))
			comments.Get("/replies", HandleListReplies(deps))
			comments.Post("/replies", HandleCreateReply(deps))
		})

		api.Route("/files/{fileID}", func(files chi.Router) {
			files.Get("/download", HandleDownloadFile(deps))
			files.Delete("/", HandleDeleteFile(deps))
		})

		api.Route("/ws", func(wsr chi.Router) {
			wsr.Use(joinLimiter.Middleware)
			wsr.Get("/chat/{roomID}", HandleChatSocket(deps, wsUpgrader))
			wsr.Get("/webrtc/{roomID}", HandleSignalSocket(deps, wsUpgrader))
		})
	})

	return r
}
