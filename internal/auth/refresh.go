package auth

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

const refreshTokenFile = "refresh_tokens.json"

// refreshTokenTTL bounds how long a refresh token stays usable.
const refreshTokenTTL = 7 * 24 * time.Hour

type refreshEntry struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	refreshTokenStore = map[string]refreshEntry{}
	loaded            bool
	mu                sync.Mutex
)

// SetRefreshToken stores a refresh token for a user and persists the store.
func SetRefreshToken(token, username string) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	refreshTokenStore[token] = refreshEntry{
		Username:  username,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	saveRefreshTokens()
}

// ResolveRefreshToken returns the username a live refresh token belongs to.
func ResolveRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	entry, ok := refreshTokenStore[token]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Username, true
}

// RevokeRefreshToken drops a token, e.g. after rotation.
func RevokeRefreshToken(token string) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	delete(refreshTokenStore, token)
	saveRefreshTokens()
}

// StartRefreshTokenCleaner periodically removes expired tokens.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		mu.Lock()
		ensureLoaded()
		now := time.Now()
		changed := false
		for token, entry := range refreshTokenStore {
			if now.After(entry.ExpiresAt) {
				delete(refreshTokenStore, token)
				changed = true
			}
		}
		if changed {
			saveRefreshTokens()
		}
		mu.Unlock()
	}
}

func ensureLoaded() {
	if loaded {
		return
	}
	loaded = true
	if err := loadRefreshTokens(); err != nil {
		log.Printf("Error loading refresh token file: %v", err)
	}
}

func loadRefreshTokens() error {
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			refreshTokenStore = map[string]refreshEntry{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &refreshTokenStore)
}

func saveRefreshTokens() {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(refreshTokenFile, data, 0600); err != nil {
		log.Printf("Error saving refresh token file: %v", err)
	}
}
