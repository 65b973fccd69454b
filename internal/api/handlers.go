package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// chat handles one conversational turn. Malformed requests (missing or
// non-string message) are rejected before any processing.
func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	started := time.Now()
	message, err := h.core.Chat(r.Context(), payload.Message)
	if err != nil {
		writeCoreError(w, err, started)
		return
	}

	recordToolCalls(message)
	writeSuccess(w, message, started)
}

// portfolio handles a direct analysis request for a wallet address.
func (h *handler) portfolio(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	started := time.Now()
	analysis, err := h.core.AnalyzePortfolio(r.Context(), wallet)
	if err != nil {
		writeCoreError(w, err, started)
		return
	}

	writeSuccess(w, analysis, started)
}
