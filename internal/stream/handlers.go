package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:jobID", websocket.New(func(c *websocket.Conn) {
		jobID := c.Params("jobID")
		client := hub.Register(jobID)

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
		// unregister first: it closes Send, which lets the writer drain
		// and exit before we return
		hub.Unregister(client)
		<-done
	}))
}
