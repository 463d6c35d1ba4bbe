// Package secrets keeps the LLM API key in the OS keychain.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups the app's secrets in the OS keychain.
	KeyringService = "draftboard"
)

var (
	ErrNoAccount = errors.New("keyring account name is empty")
	ErrNoKey     = errors.New("API key not found (set it in the keychain or via DRAFT_CHAT_API_KEY)")
)

// GetAPIKey returns envOverride when set, otherwise the keychain entry.
func GetAPIKey(envOverride, account string) (string, error) {
	if k := strings.TrimSpace(envOverride); k != "" {
		return k, nil
	}
	if strings.TrimSpace(account) == "" {
		return "", ErrNoAccount
	}
	k, err := keyring.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoKey
	}
	if err != nil {
		return "", fmt.Errorf("keyring get: %w", err)
	}
	if strings.TrimSpace(k) == "" {
		return "", ErrNoKey
	}
	return k, nil
}

func SetAPIKey(account, key string) error {
	if strings.TrimSpace(account) == "" {
		return ErrNoAccount
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, account, strings.TrimSpace(key))
}

func DeleteAPIKey(account string) error {
	if strings.TrimSpace(account) == "" {
		return ErrNoAccount
	}
	err := keyring.Delete(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoKey
	}
	return err
}
