package roundtest

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bacbo-live-client/internal/display"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Page stands in for the browser page: it keeps the text of every element
// it has been told to show.
type Page struct {
	mu      sync.Mutex
	texts   map[string]string
	frames  []display.Message
	updated chan struct{}
}

func NewPage() *Page {
	return &Page{
		texts:   make(map[string]string),
		updated: make(chan struct{}, 1),
	}
}

func (p *Page) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg display.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
		p.handleMessage(msg)
	}
}

func (p *Page) handleMessage(msg display.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames = append(p.frames, msg)
	if msg.Type == "set_text" {
		p.texts[msg.ID] = msg.Text
	}

	select {
	case p.updated <- struct{}{}:
	default:
	}
}

func (p *Page) Text(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.texts[id]
}

func (p *Page) Frames() []display.Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]display.Message, len(p.frames))
	copy(out, p.frames)
	return out
}

// WaitFrames blocks until at least n frames arrived or timeout passes.
func (p *Page) WaitFrames(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		p.mu.Lock()
		got := len(p.frames)
		p.mu.Unlock()
		if got >= n {
			return true
		}

		select {
		case <-p.updated:
		case <-deadline:
			return false
		}
	}
}
