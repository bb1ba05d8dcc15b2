package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"bacbo-live-client/internal/config"
	"bacbo-live-client/internal/models"
)

var (
	ErrTransport = errors.New("round request failed")
	ErrDecode    = errors.New("round response is not valid JSON")
)

// RoundClient posts round results to the analyzer.
type RoundClient struct {
	BaseURL  string
	Path     string
	RawQuery bool
	ClientID string
	Tokens   *TokenService
	Client   *http.Client
}

type RoundReply struct {
	RequestID  string
	URL        string
	StatusCode int
	Response   models.RoundResponse
}

func NewRoundClient(cfg *config.Config, tokens *TokenService) *RoundClient {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = models.GenerateClientID()
	}

	return &RoundClient{
		BaseURL:  cfg.BaseURL,
		Path:     cfg.RoundPath,
		RawQuery: cfg.RawQuery,
		ClientID: clientID,
		Tokens:   tokens,
		Client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// PostRound sends POST <path>?result=<result> with no body and decodes the
// reply. The status code is not checked: any JSON body is returned.
func (c *RoundClient) PostRound(ctx context.Context, result models.Result) (*RoundReply, error) {
	endpoint, err := c.RoundURL(result)
	if err != nil {
		return nil, err
	}

	requestID := models.GenerateRequestID()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := c.applyHeaders(req, requestID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode >= 300 {
		log.Printf("Round %s: analyzer answered %d, applying body anyway", requestID, resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: body is null", ErrDecode)
	}

	var out models.RoundResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &RoundReply{
		RequestID:  requestID,
		URL:        endpoint,
		StatusCode: resp.StatusCode,
		Response:   out,
	}, nil
}

// RoundURL builds the request URL. In raw mode the result is pasted into
// the query unescaped, so '&' and '#' break the query the same way the
// analyzer's own page does.
func (c *RoundClient) RoundURL(result models.Result) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %v", err)
	}
	rel, err := url.Parse(c.Path)
	if err != nil {
		return "", fmt.Errorf("invalid round path: %v", err)
	}
	u := base.ResolveReference(rel)

	if c.RawQuery {
		return u.String() + "?result=" + string(result), nil
	}

	q := u.Query()
	q.Set("result", string(result))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *RoundClient) applyHeaders(req *http.Request, requestID string) error {
	req.Header.Set("X-Request-ID", requestID)
	if c.Tokens == nil {
		return nil
	}
	token, err := c.Tokens.IssueToken(c.ClientID, requestID)
	if err != nil {
		return fmt.Errorf("failed to issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *RoundClient) httpClient() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}
