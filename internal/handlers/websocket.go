package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"church-api/internal/auth"
	"church-api/internal/models"
	"church-api/internal/store"
	"church-api/internal/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades admin dashboards onto the live feed of
// check-ins and announcements.
type WebSocketHandler struct {
	Store  store.Store
	Tokens *auth.TokenIssuer
	Hub    *ws.Hub
}

func NewWebSocketHandler(st store.Store, tokens *auth.TokenIssuer, hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{Store: st, Tokens: tokens, Hub: hub}
}

// ServeFeed authenticates via a token query parameter (browsers cannot
// set headers on websocket dials) and requires an active admin before
// upgrading.
func (h *WebSocketHandler) ServeFeed(c *gin.Context) {
	claims, err := h.Tokens.Verify(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	user, err := h.Store.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	if !user.IsActive || user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("failed to upgrade connection:", err)
		return
	}

	client := &ws.Client{
		Hub:  h.Hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	client.Hub.Register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) writePump(client *ws.Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error: %v", err)
			}
			break
		}
	}
}
