package httpapi

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/render"

	"draftboard-engine/internal/config"
	"draftboard-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setLLMKeyReq struct {
	APIKey string `json:"apiKey" validate:"required"`
}

func (h SecretsHandler) account() string {
	if h.CfgVal != nil {
		if cfg, ok := h.CfgVal.Load().(config.Config); ok {
			return cfg.Chat.KeyringAccount
		}
	}
	return config.Defaults().Chat.KeyringAccount
}

func (h SecretsHandler) SetLLMKey(w http.ResponseWriter, r *http.Request) {
	var req setLLMKeyReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := validateBody(req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := secrets.SetAPIKey(h.account(), req.APIKey); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteLLMKey(w http.ResponseWriter, r *http.Request) {
	err := secrets.DeleteAPIKey(h.account())
	if errors.Is(err, secrets.ErrNoKey) {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
