// Package chat answers free-text questions about the filtered rows with an
// LLM.
package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/store"
)

// Fallback is returned when the model produced no text.
const Fallback = "Sorry, I couldn't get an answer."

var (
	ErrDisabled      = errors.New("chat is disabled")
	ErrNoAPIKey      = errors.New("no LLM API key configured")
	ErrEmptyQuestion = errors.New("question is empty")
	ErrRateLimited   = errors.New("too many chat requests")
)

// Answerer sends a prompt to a model.
type Answerer interface {
	Answer(ctx context.Context, p Prompt) (string, error)
}

type Options struct {
	Enabled           bool
	MaxContextChars   int
	RequestsPerMinute int
}

// Reply is one answered question.
type Reply struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Rows      int    `json:"rows"`
	Truncated bool   `json:"truncated"`
	Fallback  bool   `json:"fallback"`
}

type Service struct {
	answerer Answerer
	db       *sql.DB
	log      *zap.Logger

	mu      sync.RWMutex
	opts    Options
	limiter *rate.Limiter

	// OnAnswer, when set, is called after every completed question.
	OnAnswer func(r Reply, dur time.Duration)
}

// NewService wires an Answerer. db may be nil to skip history.
func NewService(opts Options, a Answerer, db *sql.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		opts:     opts,
		answerer: a,
		limiter:  newLimiter(opts.RequestsPerMinute),
		db:       db,
		log:      log,
	}
}

func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		rpm = 20
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)
}

// Configure applies new options to a running service. The rate limiter is
// rebuilt only when the rate changes.
func (s *Service) Configure(opts Options) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts.RequestsPerMinute != s.opts.RequestsPerMinute {
		s.limiter = newLimiter(opts.RequestsPerMinute)
	}
	s.opts = opts
}

func (s *Service) current() (Options, *rate.Limiter) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts, s.limiter
}

func (s *Service) Enabled() bool {
	if s == nil || s.answerer == nil {
		return false
	}
	opts, _ := s.current()
	return opts.Enabled
}

// Ask answers question against picks, the rows currently shown.
func (s *Service) Ask(ctx context.Context, question string, picks []domain.Pick) (Reply, error) {
	if !s.Enabled() {
		return Reply{}, ErrDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, ErrEmptyQuestion
	}
	opts, limiter := s.current()
	if !limiter.Allow() {
		return Reply{}, ErrRateLimited
	}

	start := time.Now()
	p := BuildPrompt(question, picks, opts.MaxContextChars)
	answer, err := s.answerer.Answer(ctx, p)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			return Reply{}, err
		}
		return Reply{}, fmt.Errorf("ask model: %w", err)
	}

	r := Reply{
		Question:  question,
		Answer:    strings.TrimSpace(answer),
		Rows:      p.Rows,
		Truncated: p.Truncated,
	}
	if r.Answer == "" {
		r.Answer = Fallback
		r.Fallback = true
	}

	s.record(ctx, r)
	s.log.Info("chat answered",
		zap.Int("rows", r.Rows),
		zap.Bool("truncated", r.Truncated),
		zap.Bool("fallback", r.Fallback),
		zap.Duration("dur", time.Since(start)),
	)
	if s.OnAnswer != nil {
		s.OnAnswer(r, time.Since(start))
	}
	return r, nil
}

func (s *Service) record(ctx context.Context, r Reply) {
	if s.db == nil {
		return
	}
	if _, err := store.AppendMessage(ctx, s.db, store.RoleUser, r.Question); err != nil {
		s.log.Warn("chat history write failed", zap.Error(err))
		return
	}
	if _, err := store.AppendMessage(ctx, s.db, store.RoleAssistant, r.Answer); err != nil {
		s.log.Warn("chat history write failed", zap.Error(err))
	}
}

// History returns the latest limit messages, oldest first.
func (s *Service) History(ctx context.Context, limit int) ([]store.Message, error) {
	if s == nil || s.db == nil {
		return []store.Message{}, nil
	}
	return store.ListMessages(ctx, s.db, limit)
}
