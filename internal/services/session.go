package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"shopfront/internal/models"
	"shopfront/internal/store"
)

// How long a stored token (and the identity cached with it) survives.
const sessionTTL = 30 * 24 * time.Hour

const (
	tokenKeyPrefix    = "token:"
	identityKeyPrefix = "identity:"
)

// SessionService tracks the authenticated-or-not identity of each
// storefront session. Only the token and the identity cached beside it
// persist across restarts; everything else lives in memory.
type SessionService struct {
	gateway Gateway
	tokens  store.TokenStore

	mu    sync.RWMutex
	users map[string]*models.User
}

func NewSessionService(gateway Gateway, tokens store.TokenStore) *SessionService {
	return &SessionService{
		gateway: gateway,
		tokens:  tokens,
		users:   make(map[string]*models.User),
	}
}

// CurrentUser returns the session's user, or nil when anonymous. A
// session seen for the first time after a restart is restored
// optimistically from the stored token and cached identity, without
// re-validating against the backend.
func (ss *SessionService) CurrentUser(ctx context.Context, sessionID string) *models.User {
	ss.mu.RLock()
	user, ok := ss.users[sessionID]
	ss.mu.RUnlock()
	if ok {
		return user
	}

	token, err := ss.tokens.Get(ctx, tokenKeyPrefix+sessionID)
	if err != nil {
		log.Printf("SessionService.CurrentUser - token lookup failed: %v", err)
		return nil
	}
	if token == "" {
		return nil
	}

	raw, err := ss.tokens.Get(ctx, identityKeyPrefix+sessionID)
	if err != nil || raw == "" {
		return nil
	}
	var restored models.User
	if err := json.Unmarshal([]byte(raw), &restored); err != nil {
		log.Printf("SessionService.CurrentUser - cached identity corrupt for session %s: %v", sessionID, err)
		return nil
	}

	ss.mu.Lock()
	ss.users[sessionID] = &restored
	ss.mu.Unlock()
	log.Printf("SessionService.CurrentUser - restored session for %s", restored.Email)
	return &restored
}

// IsAuthenticated reports whether the session has a signed-in user.
func (ss *SessionService) IsAuthenticated(ctx context.Context, sessionID string) bool {
	return ss.CurrentUser(ctx, sessionID) != nil
}

// Token returns the bearer token for authenticated requests, or "".
func (ss *SessionService) Token(ctx context.Context, sessionID string) string {
	token, err := ss.tokens.Get(ctx, tokenKeyPrefix+sessionID)
	if err != nil {
		log.Printf("SessionService.Token - token lookup failed: %v", err)
		return ""
	}
	return token
}

// Login delegates to the gateway. On success the session enters the
// authenticated state; on failure it stays anonymous and the reason is
// returned.
func (ss *SessionService) Login(ctx context.Context, sessionID string, credentials models.LoginCredentials) (*models.User, error) {
	payload, err := ss.gateway.Login(ctx, credentials)
	if err != nil {
		log.Printf("SessionService.Login - login failed for %s: %v", credentials.Email, err)
		return nil, err
	}
	return ss.enter(ctx, sessionID, payload)
}

// Register has the same shape as Login.
func (ss *SessionService) Register(ctx context.Context, sessionID string, data models.RegisterData) (*models.User, error) {
	payload, err := ss.gateway.Register(ctx, data)
	if err != nil {
		log.Printf("SessionService.Register - registration failed for %s: %v", data.Email, err)
		return nil, err
	}
	return ss.enter(ctx, sessionID, payload)
}

// Logout is fire-and-forget: the session becomes anonymous no matter
// what the backend says.
func (ss *SessionService) Logout(ctx context.Context, sessionID string) {
	token := ss.Token(ctx, sessionID)
	if token != "" {
		if err := ss.gateway.Logout(ctx, token); err != nil {
			log.Printf("SessionService.Logout - backend logout failed (ignored): %v", err)
		}
	}

	if err := ss.tokens.Delete(ctx, tokenKeyPrefix+sessionID); err != nil {
		log.Printf("SessionService.Logout - token delete failed: %v", err)
	}
	if err := ss.tokens.Delete(ctx, identityKeyPrefix+sessionID); err != nil {
		log.Printf("SessionService.Logout - identity delete failed: %v", err)
	}

	ss.mu.Lock()
	delete(ss.users, sessionID)
	ss.mu.Unlock()
}

func (ss *SessionService) enter(ctx context.Context, sessionID string, payload *models.AuthPayload) (*models.User, error) {
	if payload.Token == "" {
		return nil, errors.New("backend returned no token")
	}

	user := payload.User
	if err := ss.tokens.Set(ctx, tokenKeyPrefix+sessionID, payload.Token, sessionTTL); err != nil {
		return nil, err
	}
	identity, err := json.Marshal(user)
	if err == nil {
		if err := ss.tokens.Set(ctx, identityKeyPrefix+sessionID, string(identity), sessionTTL); err != nil {
			log.Printf("SessionService.enter - identity cache write failed: %v", err)
		}
	}

	ss.mu.Lock()
	ss.users[sessionID] = &user
	ss.mu.Unlock()
	log.Printf("SessionService.enter - session %s authenticated as %s", sessionID, user.Email)
	return &user, nil
}
