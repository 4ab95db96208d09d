package stream_availability

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/service/availability"
)

// heartbeatInterval период keep-alive комментариев, чтобы прокси
// не закрывали простаивающее SSE соединение
const heartbeatInterval = 25 * time.Second

type Handler struct {
	stream AvailabilityStream
	logger Logger
}

func NewHandler(stream AvailabilityStream, logger Logger) *Handler {
	return &Handler{
		stream: stream,
		logger: logger,
	}
}

// Handle GET /api/v1/availability/stream
//
// Server-Sent Events: первое событие уходит сразу с текущим состоянием,
// дальше события приходят только при смене состояния или остатка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /availability/stream - streaming unsupported by response writer")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	snapshots, unsubscribe := h.stream.Subscribe()
	defer unsubscribe()

	h.logger.Info("GET /availability/stream - client connected: %s", r.RemoteAddr)

	if err := writeEvent(w, h.stream.Current()); err != nil {
		h.logger.Warn("GET /availability/stream - initial write failed: %v", err)
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /availability/stream - client disconnected: %s", r.RemoteAddr)
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			if err := writeEvent(w, snapshot); err != nil {
				h.logger.Warn("GET /availability/stream - write failed: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, snapshot availability.Snapshot) error {
	payload, err := json.Marshal(FromSnapshot(snapshot))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: availability\ndata: %s\n\n", payload)
	return err
}
