package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lanpad/remotectl/pkg/logging"
	"lanpad/remotectl/pkg/proto"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// client is the per-connection state. It is owned by the connection's read
// goroutine and never shared across connections.
type client struct {
	id          int64
	ws          *websocket.Conn
	remoteAddr  string
	connectedAt time.Time
	cancel      context.CancelFunc
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &client{
		id:          s.nextID.Add(1),
		ws:          ws,
		remoteAddr:  r.RemoteAddr,
		connectedAt: time.Now(),
		cancel:      cancel,
	}
	total := s.addClient(c)
	log.Printf("client %d connected from %s (total: %d)", c.id, c.remoteAddr, total)

	defer func() {
		cancel()
		_ = ws.Close()
		total := s.removeClient(c)
		log.Printf("client %d disconnected (total: %d)", c.id, total)
	}()

	welcome := proto.Welcome{
		Type:       proto.MsgWelcome,
		ClientID:   c.id,
		ScreenInfo: s.inj.ScreenInfo(),
		ServerInfo: proto.ServerInfo{Name: Name, Version: Version},
	}
	if err := ws.WriteJSON(welcome); err != nil {
		log.Printf("client %d: welcome write failed: %v", c.id, err)
		return
	}

	// Commands dispatch synchronously in this goroutine: per-connection
	// FIFO, and one connection's pacing never blocks another's loop.
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(ctx, c, raw)
	}
}

// dispatch decodes one frame and routes it. Commands are fire-and-forget:
// only ping gets a success reply, failures get an error message.
func (s *Server) dispatch(ctx context.Context, c *client, raw []byte) {
	cmd, tag, err := proto.Decode(raw)
	if err != nil {
		switch {
		case errors.Is(err, proto.ErrInvalidJSON):
			log.Printf("client %d: invalid JSON", c.id)
			c.sendError("unknown", "Invalid JSON")
		case errors.Is(err, proto.ErrUnknownType):
			log.Printf("client %d: unknown command type %q", c.id, tag)
			c.sendError(tag, "Unknown command type")
		default:
			logging.Debugf("client %d: %s rejected: %v", c.id, tag, err)
			c.sendError(tag, err.Error())
		}
		return
	}

	switch v := cmd.(type) {
	case proto.Ping:
		if err := c.ws.WriteJSON(proto.Pong{Type: proto.MsgPong, Timestamp: v.Timestamp}); err != nil {
			log.Printf("client %d: pong write failed: %v", c.id, err)
		}
		return
	case proto.MouseMove:
		err = s.inj.Move(v)
	case proto.MouseClick:
		err = s.inj.Click(ctx, v)
	case proto.MouseScroll:
		err = s.inj.Scroll(v)
	case proto.KeyPress:
		err = s.inj.KeyPress(v)
	case proto.KeyType:
		err = s.inj.TypeText(ctx, v)
	case proto.MultipleKeys:
		err = s.inj.PressKeys(ctx, v)
	}
	if err != nil {
		if ctx.Err() != nil {
			// connection is gone, nothing to reply to
			return
		}
		log.Printf("client %d: %s failed: %v", c.id, tag, err)
		c.sendError(tag, err.Error())
	}
}

func (c *client) sendError(command, reason string) {
	reply := proto.ErrorReply{Type: proto.MsgError, Command: command, Error: reason}
	if err := c.ws.WriteJSON(reply); err != nil {
		log.Printf("client %d: error write failed: %v", c.id, err)
	}
}
