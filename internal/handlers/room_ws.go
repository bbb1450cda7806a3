package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/saiteja-29/V-Hire/internal/metrics"
	"github.com/saiteja-29/V-Hire/internal/models"
	"github.com/saiteja-29/V-Hire/internal/session"
	"github.com/saiteja-29/V-Hire/internal/utils"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// RoomWS is the shared-editor websocket. Connecting doubles as the
// transport's join event and a read error as its leave event, so the
// lifecycle manager sees every entry and exit exactly once.
func (h *Handlers) RoomWS(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")

	claims, err := utils.ValidateRoomToken(r.URL.Query().Get("token"), h.JWTSecret)
	if err != nil || claims.RoomID != roomID {
		http.Error(w, "invalid room token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := h.Manager.RoomJoin(r.Context(), roomID, claims.Email, claims.Role); err != nil {
		h.Log.Error("room join bookkeeping failed",
			zap.String("roomId", roomID), zap.Error(err))
	}

	client := session.NewClient(conn)
	room := h.Hub.Join(roomID, client)
	metrics.SetActiveRooms(h.Hub.RoomCount())

	defer func() {
		h.Hub.Leave(client)
		metrics.SetActiveRooms(h.Hub.RoomCount())
		dest, exitErr := h.Manager.RoomExit(r.Context(), roomID, claims.Email, claims.Role)
		if exitErr != nil {
			h.Log.Warn("room exit stamping failed",
				zap.String("roomId", roomID), zap.Error(exitErr))
			return
		}
		h.Log.Info("participant left room",
			zap.String("roomId", roomID),
			zap.String("role", string(claims.Role)),
			zap.String("routeTo", dest))
	}()

	// New joiner catches up on the current scratch pad, if any.
	if text, lang, ok := room.Snapshot(); ok {
		client.Send(models.WSFrame{Type: "init", Data: models.InitPayload{
			RoomID:   roomID,
			Text:     text,
			Language: lang,
		}})
	}

	for {
		var frame models.WSFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case "edit":
			var e models.EditPayload
			remarshal(frame.Data, &e)
			room.SetText(client, e.Text)

		case "language":
			var lc models.LanguagePayload
			remarshal(frame.Data, &lc)
			if !models.ValidLanguage(lc.Language) {
				client.Send(errFrame("unsupported_language"))
				continue
			}
			room.SetLanguage(client, lc.Language)

		default:
			client.Send(errFrame("unknown_type"))
		}
	}
}

func remarshal(in any, out any) { b, _ := json.Marshal(in); _ = json.Unmarshal(b, out) }

func errFrame(msg string) models.WSFrame { return models.WSFrame{Type: "error", Data: msg} }
