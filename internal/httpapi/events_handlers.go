package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"draftboard-engine/internal/events"
)

const defaultHeartbeat = 25 * time.Second

type EventsHandler struct {
	Hub *events.Hub
	// Heartbeat is the idle interval between keepalive comments.
	Heartbeat time.Duration
}

func writeSSE(w io.Writer, f http.Flusher, data string) {
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
	f.Flush()
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok || h.Hub == nil {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	every := h.Heartbeat
	if every <= 0 {
		every = defaultHeartbeat
	}
	beat := time.NewTicker(every)
	defer beat.Stop()

	writeSSE(w, flusher, events.MakeEvent(RequestIDFrom(r.Context()), events.TypePing, nil))

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			writeSSE(w, flusher, msg)
		case <-beat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
