package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"draftboard-engine/internal/secrets"
)

// GenAIAnswerer calls a Gemini model. The API key is resolved on every call
// so a key stored after startup is picked up; the client is rebuilt only
// when the key changes.
type GenAIAnswerer struct {
	Model       string
	Temperature float32
	MaxTokens   int32
	APIKey      func() (string, error)

	mu     sync.Mutex
	client *genai.Client
	key    string
}

// KeyFromSecrets resolves the key from the environment override, then the
// keychain account.
func KeyFromSecrets(envOverride, account string) func() (string, error) {
	return func() (string, error) {
		k, err := secrets.GetAPIKey(envOverride, account)
		if errors.Is(err, secrets.ErrNoKey) || errors.Is(err, secrets.ErrNoAccount) {
			return "", ErrNoAPIKey
		}
		return k, err
	}
}

func (g *GenAIAnswerer) Answer(ctx context.Context, p Prompt) (string, error) {
	c, err := g.clientFor(ctx)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	model := g.Model
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(g.Temperature),
		MaxOutputTokens:   g.MaxTokens,
	}
	g.mu.Unlock()

	resp, err := c.Models.GenerateContent(ctx, model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	return resp.Text(), nil
}

// Configure swaps the generation settings used by later calls.
func (g *GenAIAnswerer) Configure(model string, temperature float32, maxTokens int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Model, g.Temperature, g.MaxTokens = model, temperature, maxTokens
}

func (g *GenAIAnswerer) clientFor(ctx context.Context) (*genai.Client, error) {
	if g.APIKey == nil {
		return nil, ErrNoAPIKey
	}
	key, err := g.APIKey()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil && g.key == key {
		return g.client, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	g.client, g.key = c, key
	return c, nil
}
