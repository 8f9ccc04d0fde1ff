package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/roboarena/storefront-api/middleware"
	"github.com/roboarena/storefront-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// GET /orders/ws
//
// Fulfillment dashboards hold this open to hear about new orders as they
// are materialized. Orders carry customer contact details, so the admin API
// key is required before the upgrade; browser WebSocket clients cannot set
// custom headers, so the key is also accepted as an api_key query parameter.
func OrderWebSocketHandler(c *gin.Context) {
	key := c.GetHeader("X-API-KEY")
	if key == "" {
		key = c.Query("api_key")
	}
	if !middleware.APIKeyValid(key) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastNewOrder pushes a freshly committed order to every connected
// fulfillment client. Called after the checkout transaction commits.
// Clients whose write fails are dropped rather than left to linger until
// their read loop notices.
func BroadcastNewOrder(order *models.Order) {
	data, err := json.Marshal(toOrderResponse(order))
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
