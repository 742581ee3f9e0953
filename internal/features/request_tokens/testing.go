package request_tokens

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRequestTokenRepository struct {
	mu     sync.Mutex
	tokens []RequestToken
}

func NewInMemoryRequestTokenRepository() *InMemoryRequestTokenRepository {
	return &InMemoryRequestTokenRepository{}
}

func (r *InMemoryRequestTokenRepository) Create(token *RequestToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = append(r.tokens, *token)
	return nil
}

func (r *InMemoryRequestTokenRepository) FindByToken(token string, tokenType TokenType) (*RequestToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.tokens, func(t RequestToken) bool {
		return t.Token == token && t.TokenType == tokenType
	})
	if i < 0 {
		return nil, nil
	}

	found := r.tokens[i]
	return &found, nil
}

func (r *InMemoryRequestTokenRepository) Claim(token string, tokenType TokenType) (*RequestToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.tokens, func(t RequestToken) bool {
		return t.Token == token && t.TokenType == tokenType
	})
	if i < 0 {
		return nil, nil
	}

	claimed := r.tokens[i]
	r.tokens = slices.Delete(r.tokens, i, i+1)

	return &claimed, nil
}

func (r *InMemoryRequestTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.tokens)
	r.tokens = slices.DeleteFunc(r.tokens, func(t RequestToken) bool {
		return t.ExpiresAt.Before(now)
	})

	return int64(before - len(r.tokens)), nil
}

func (r *InMemoryRequestTokenRepository) DeleteByWorkspaceID(workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = slices.DeleteFunc(r.tokens, func(t RequestToken) bool {
		return t.WorkspaceID != nil && *t.WorkspaceID == workspaceID
	})
	return nil
}

// Tokens returns a snapshot of the stored tokens.
func (r *InMemoryRequestTokenRepository) Tokens() []RequestToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.tokens)
}
