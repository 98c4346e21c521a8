package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/sirupsen/logrus"
)

// StreamClient values paths over the API websocket. Value calls are
// serialised; one request is in flight at a time.
type StreamClient struct {
	url    string
	auth   Authenticator
	conn   *websocket.Conn
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewStreamClient takes the API base URL (http or https) and derives the
// websocket endpoint from it.
func NewStreamClient(baseURL string, auth Authenticator, logger *logrus.Logger) *StreamClient {
	u := strings.TrimRight(baseURL, "/")
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return &StreamClient{
		url:    u + "/ws/valuations",
		auth:   auth,
		logger: logger,
	}
}

func (sc *StreamClient) Connect(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.conn != nil {
		return nil
	}

	header := http.Header{}
	if sc.auth != nil {
		req, _ := http.NewRequest(http.MethodGet, sc.url, nil)
		if err := sc.auth.AddAuthHeaders(req); err != nil {
			return err
		}
		header = req.Header
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, sc.url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}

	sc.conn = conn
	sc.logger.WithField("url", sc.url).Debug("Stream connected")
	return nil
}

// Value sends req and waits for its report.
func (sc *StreamClient) Value(ctx context.Context, req models.ValuationRequest) (*models.Report, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.conn == nil {
		return nil, errors.New("websocket not connected")
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = sc.conn.SetWriteDeadline(deadline)
		_ = sc.conn.SetReadDeadline(deadline)
	}

	if err := sc.conn.WriteJSON(req); err != nil {
		sc.handleDisconnect()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var raw json.RawMessage
	if err := sc.conn.ReadJSON(&raw); err != nil {
		sc.handleDisconnect()
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}

	var apiErr models.ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: apiErr.Error}
	}

	var report models.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

func (sc *StreamClient) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.conn == nil {
		return nil
	}
	_ = sc.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := sc.conn.Close()
	sc.conn = nil
	return err
}

// handleDisconnect must be called with mu held.
func (sc *StreamClient) handleDisconnect() {
	if sc.conn != nil {
		sc.conn.Close()
		sc.conn = nil
	}
}
