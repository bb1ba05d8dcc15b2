package display

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const relayWriteWait = 10 * time.Second

// Message is one element update sent to a remote page.
type Message struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Relay mirrors element updates to a page connected over a websocket.
type Relay struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func DialRelay(url string, header http.Header) (*Relay, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to dial display %s: %w", url, err)
	}
	log.Printf("Display relay connected to %s", url)
	return &Relay{conn: conn}, nil
}

// Target returns the Target for one element id.
func (r *Relay) Target(id string) Target {
	return relayTarget{relay: r, id: id}
}

// Targets returns one Target per element id.
func (r *Relay) Targets() map[string]Target {
	targets := make(map[string]Target, len(Elements))
	for _, id := range Elements {
		targets[id] = r.Target(id)
	}
	return targets
}

func (r *Relay) send(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conn.SetWriteDeadline(time.Now().Add(relayWriteWait))
	return r.conn.WriteJSON(msg)
}

func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return r.conn.Close()
}

type relayTarget struct {
	relay *Relay
	id    string
}

func (t relayTarget) SetText(text string) error {
	return t.relay.send(Message{Type: "set_text", ID: t.id, Text: text})
}
