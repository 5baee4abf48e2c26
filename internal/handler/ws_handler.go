package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"boardrtc/internal/app/realtime"
	"boardrtc/internal/app/ws"
	"boardrtc/internal/pkg/auth/jwt"
	"boardrtc/internal/pkg/errs"
	"boardrtc/internal/pkg/logx"
	"boardrtc/internal/pkg/resp"
)

// sessionFunc runs one realtime connection until it ends.
type sessionFunc func(ctx context.Context, conn realtime.Conn, roomID, identity string) error

// HandleChatSocket upgrades to the chat relay of {roomID}.
func HandleChatSocket(deps *AppDeps, upgrader *websocket.Upgrader) http.HandlerFunc {
	return handleRealtime("chat", deps.Chat.Serve, upgrader)
}

// HandleSignalSocket upgrades to the WebRTC signaling relay of {roomID}.
func HandleSignalSocket(deps *AppDeps, upgrader *websocket.Upgrader) http.HandlerFunc {
	return handleRealtime("webrtc", deps.Signal.Serve, upgrader)
}

// resolveIdentity prefers the username of a verified token over the
// ?username= query parameter.
func resolveIdentity(r *http.Request) string {
	if payload := jwt.GetPayloadFromContext(r); payload != nil && payload.Username != "" {
		return payload.Username
	}
	return strings.TrimSpace(r.URL.Query().Get("username"))
}

func handleRealtime(kind string, serve sessionFunc, upgrader *websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "roomID")
		if roomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		identity := resolveIdentity(r)
		if identity == "" {
			logx.Warn("WebSocket request rejected: no identity", "kind", kind, "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrIdentityRequired))
			return
		}

		client := ws.NewClient(w, r, upgrader, roomID, identity)
		defer client.Close()

		logx.Debug("WebSocket session starting", "kind", kind, "room_id", roomID, "identity", identity)

		// The upgrade has already answered the request if this fails.
		if err := serve(r.Context(), client, roomID, identity); err != nil {
			logx.Warn("WebSocket session ended with error", "kind", kind, "room_id", roomID, "identity", identity, "error", err)
		}
	}
}
