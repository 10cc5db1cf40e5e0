package realtime

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/resp"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Identify(token string) (userID string, err error)
}

// Handler handles WebSocket connections.
type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger *logger.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, auth Authenticator, logger *logger.Logger) *Handler {
	return &Handler{
		hub:    hub,
		auth:   auth,
		logger: logger,
	}
}

// tokenFromRequest extracts the bearer token from the query string or the
// Authorization header. Browsers cannot set headers on WebSocket upgrades,
// so the query parameter is the common path.
func tokenFromRequest(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// HandleConnection authenticates the caller, upgrades the connection and
// joins it to the room named by the token's user id. The room identity is
// never taken from a client-supplied value.
func (h *Handler) HandleConnection(c *gin.Context) {
	token := tokenFromRequest(c)
	if token == "" {
		resp.Fail(c.Writer, resp.UnAuthorized("missing token"))
		return
	}

	userID, err := h.auth.Identify(token)
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "websocket auth failed: %v", err)
		resp.Fail(c.Writer, resp.UnAuthorized("invalid token"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "failed to upgrade connection: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userID, h.logger)
	h.hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// HandleStats returns hub statistics.
func (h *Handler) HandleStats(c *gin.Context) {
	resp.Success(c.Writer, h.hub.Stats())
}
