package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/integrations/llm"
)

type chatRequest struct {
	Messages             []llm.Message      `json:"messages"`
	FinancialData        *analysis.Snapshot `json:"financialData"`
	IncludeFinancialData bool               `json:"includeFinancialData"`
}

func validRole(role string) bool {
	switch role {
	case llm.RoleUser, llm.RoleAssistant, llm.RoleSystem:
		return true
	}
	return false
}

// Chat relays the assistant's answer as server-sent events:
// one `data: {"content": ...}` event per token, then `data: [DONE]`.
// Upstream failures before the first token become JSON errors.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.chat == nil {
		writeError(w, http.StatusServiceUnavailable, "chat assistant is not configured")
		return
	}

	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Messages == nil {
		writeError(w, http.StatusBadRequest, "messages must be an array")
		return
	}
	for _, m := range req.Messages {
		if !validRole(m.Role) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid message role %q", m.Role))
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	var snap *analysis.Snapshot
	if req.IncludeFinancialData {
		snap = req.FinancialData
	}
	messages := llm.BuildConversation(req.Messages, snap, h.locale(r))

	started := false
	start := func() {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		started = true
	}

	err := h.chat.Stream(r.Context(), messages, func(token string) error {
		if !started {
			start()
		}
		data, err := json.Marshal(map[string]string{"content": token})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		if started {
			h.log.Errorf("Chat stream aborted: %v", err)
			return
		}
		switch {
		case llm.IsQuotaExceeded(err):
			writeError(w, http.StatusTooManyRequests, "chat quota exceeded, please try again later")
		case llm.IsInvalidKey(err):
			writeError(w, http.StatusUnauthorized, "chat API key is invalid")
		default:
			h.log.Errorf("Chat request failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to process chat request")
		}
		return
	}

	if !started {
		start()
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
