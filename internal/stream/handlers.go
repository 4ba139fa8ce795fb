package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the live-update socket. Both middlewares run on the
// plain HTTP request before the upgrade, so an anonymous caller or one who
// does not own the hike never reaches the hub.
func RegisterRoutes(r fiber.Router, hub *Hub, authMiddleware, requireHike fiber.Handler) {
	r.Get("/ws/:hikeID", authMiddleware, requireHike, websocket.New(func(c *websocket.Conn) {
		hikeID := c.Params("hikeID")
		client := hub.Register(hikeID)
		defer hub.Unregister(client)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		<-done
	}))
}
