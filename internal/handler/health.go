package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"uptimeSec": int(time.Since(h.start) / time.Second),
		"sessions":  h.studio.Count(),
	})
}
