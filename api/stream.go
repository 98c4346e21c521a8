package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/sirupsen/logrus"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleStream answers every ValuationRequest message on the socket with a
// Report, or an ErrorResponse when the request cannot be evaluated.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Error("Failed to upgrade websocket")
		return
	}
	defer conn.Close()

	log := s.logger.WithFields(logrus.Fields{
		"conn_id": uuid.New().String(),
		"remote":  r.RemoteAddr,
	})
	log.Info("Stream connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(maxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go s.keepAlive(ctx, conn, log)

	for {
		var req models.ValuationRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("Stream closed unexpectedly")
			}
			log.Info("Stream disconnected")
			return
		}

		var reply interface{}
		report, err := s.evaluate(ctx, req)
		if err != nil {
			reply = models.ErrorResponse{Error: err.Error()}
		} else {
			reply = report
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.WithError(err).Error("Failed to write stream message")
			return
		}
	}
}

func (s *Server) keepAlive(ctx context.Context, conn *websocket.Conn, log *logrus.Entry) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("Failed to send ping")
				return
			}
		}
	}
}
