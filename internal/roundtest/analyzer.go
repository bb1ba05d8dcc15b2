// Package roundtest runs a scripted analyzer for tests: a /round endpoint
// with canned replies and a /display websocket that records panel updates.
package roundtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"bacbo-live-client/internal/services"
)

type Request struct {
	Method    string
	Path      string
	RawQuery  string
	Query     url.Values
	RequestID string
	ClientID  string
	Body      []byte
}

type Reply struct {
	Status int
	Body   string
}

// Gate holds replies for one result until released.
type Gate struct {
	arrived  chan struct{}
	release  chan struct{}
	arriveMu sync.Once
	freeMu   sync.Once
}

func (g *Gate) Arrived() <-chan struct{} {
	return g.arrived
}

func (g *Gate) Release() {
	g.freeMu.Do(func() { close(g.release) })
}

type Analyzer struct {
	Server *httptest.Server
	Page   *Page

	mu       sync.Mutex
	requests []Request
	replies  map[string]Reply
	fallback Reply
	gates    map[string]*Gate
}

type Option func(*gin.Engine, *Analyzer)

// WithTokens requires a bearer token signed by tokens on /round.
func WithTokens(tokens *services.TokenService) Option {
	return func(router *gin.Engine, a *Analyzer) {
		router.Use(RequireToken(tokens))
	}
}

func NewAnalyzer(t testing.TB, opts ...Option) *Analyzer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &Analyzer{
		Page:     NewPage(),
		replies:  make(map[string]Reply),
		gates:    make(map[string]*Gate),
		fallback: Reply{Status: http.StatusOK, Body: `{"signal":"AGUARDAR","confidence":0,"greens":0,"reds":0}`},
	}

	router := gin.New()
	for _, opt := range opts {
		opt(router, a)
	}
	router.GET("/display", a.Page.HandleWebSocket)
	router.POST("/round", a.handleRound)

	a.Server = httptest.NewServer(router)
	t.Cleanup(func() {
		a.releaseAll()
		a.Server.Close()
	})
	return a
}

func (a *Analyzer) URL() string {
	return a.Server.URL
}

// DisplayURL is the websocket address of the recording page.
func (a *Analyzer) DisplayURL() string {
	return "ws" + strings.TrimPrefix(a.Server.URL, "http") + "/display"
}

func (a *Analyzer) Reply(result string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies[result] = Reply{Status: status, Body: body}
}

func (a *Analyzer) Default(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fallback = Reply{Status: status, Body: body}
}

// Hold makes requests for result wait until the returned gate is released.
func (a *Analyzer) Hold(result string) *Gate {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := &Gate{arrived: make(chan struct{}), release: make(chan struct{})}
	a.gates[result] = g
	return g
}

func (a *Analyzer) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Request, len(a.requests))
	copy(out, a.requests)
	return out
}

func (a *Analyzer) handleRound(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	result := c.Query("result")

	a.mu.Lock()
	a.requests = append(a.requests, Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RawQuery:  c.Request.URL.RawQuery,
		Query:     c.Request.URL.Query(),
		RequestID: c.GetHeader("X-Request-ID"),
		ClientID:  c.GetString("client_id"),
		Body:      body,
	})
	reply, ok := a.replies[result]
	if !ok {
		reply = a.fallback
	}
	gate := a.gates[result]
	a.mu.Unlock()

	if gate != nil {
		gate.arriveMu.Do(func() { close(gate.arrived) })
		select {
		case <-gate.release:
		case <-c.Request.Context().Done():
			return
		}
	}

	c.Data(reply.Status, "application/json", []byte(reply.Body))
}

func (a *Analyzer) releaseAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, g := range a.gates {
		g.Release()
	}
}
