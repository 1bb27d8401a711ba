// Package ws expone el estado del mercado en tiempo real vía WebSocket.
// El Hub mantiene el registro de clientes conectados y retransmite cada
// tick del motor a todos ellos.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/kebabpro/kebabd/internal/market"
)

// Message es el sobre JSON de todos los mensajes del socket.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	Sender  string `json:"sender"`
}

const (
	typeTick   = "market_tick"
	senderCore = "engine"

	// Tamaño del buffer de salida por cliente. Si se llena, el cliente
	// se considera colgado y se desconecta.
	clientSendBuffer = 256
)

// Client representa una conexión de navegador.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub mantiene los clientes activos y el canal de difusión.
type Hub struct {
	log        *slog.Logger
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub crea un hub vacío. Hay que arrancar Run en una goroutine.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run es el bucle principal del hub. Bloquea hasta que se cancele el contexto.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("cliente websocket conectado", "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("cliente websocket desconectado", "total", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer lleno: asumimos cliente colgado.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// PublishTick implementa ports.Notifier difundiendo el informe a todos los
// clientes conectados.
func (h *Hub) PublishTick(ctx context.Context, report market.TickReport) error {
	payload, err := json.Marshal(Message{
		Type:    typeTick,
		Payload: report,
		Sender:  senderCore,
	})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// upgrader permite conexiones desde cualquier origen (uso local).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs promociona una petición GET a una conexión WebSocket persistente
// y la registra en el hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("fallo al promocionar a websocket", "error", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, clientSendBuffer)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump descarta los mensajes entrantes; solo nos interesa detectar la
// desconexión del cliente.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("error de lectura websocket", "error", err)
			}
			return
		}
	}
}

// writePump vuelca el canal de salida hacia la conexión. Termina cuando el
// hub cierra el canal.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
