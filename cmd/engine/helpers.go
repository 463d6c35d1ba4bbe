package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"draftboard-engine/internal/httpapi"
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// shutdownToken uses DRAFT_SHUTDOWN_TOKEN when the parent process supplies
// one, otherwise a fresh token written to the data dir (0600).
func shutdownToken(dataDir string) (string, error) {
	if t := strings.TrimSpace(os.Getenv("DRAFT_SHUTDOWN_TOKEN")); t != "" {
		return t, nil
	}
	t, err := randomToken(16)
	if err != nil {
		return "", err
	}
	return t, os.WriteFile(filepath.Join(dataDir, tokenFile), []byte(t+"\n"), 0o600)
}

// shutdownHandler is mounted behind httpapi.LocalOnly.
func shutdownHandler(token string, stop func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			httpapi.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "bad shutdown token")
			return
		}

		// Respond immediately; the serve loop drains connections once stopped.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))
		go stop()
	}
}
