// Package mojang talks to the Mojang session server to authenticate
// joining players and resolve their canonical account UUIDs.
package mojang

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionURL is the production session server.
const DefaultSessionURL = "https://sessionserver.mojang.com"

// ErrNotJoined is returned when the session server has no join record,
// meaning the client did not authenticate against Mojang for this server.
var ErrNotJoined = fmt.Errorf("mojang: player has not joined")

// Profile is the authenticated account identity.
type Profile struct {
	ID   uuid.UUID
	Name string
}

// SessionClient queries the hasJoined endpoint during the encryption
// handshake.
type SessionClient struct {
	baseURL string
	client  *http.Client
}

// NewSessionClient creates a session client. An empty baseURL selects
// the production endpoint.
func NewSessionClient(baseURL string) *SessionClient {
	if baseURL == "" {
		baseURL = DefaultSessionURL
	}
	return &SessionClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// HasJoined verifies that username authenticated against this server
// (identified by the auth digest) and returns the account profile.
func (c *SessionClient) HasJoined(ctx context.Context, username, digest string) (Profile, error) {
	endpoint := fmt.Sprintf(
		"%s/session/minecraft/hasJoined?username=%s&serverId=%s",
		c.baseURL, url.QueryEscape(username), url.QueryEscape(digest),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("building hasJoined request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("calling session server: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return Profile{}, ErrNotJoined
	default:
		return Profile{}, fmt.Errorf("session server returned status %d", resp.StatusCode)
	}

	var body struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("decoding session server response: %w", err)
	}

	// The session server returns the UUID without hyphens.
	id, err := uuid.Parse(body.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("parsing profile uuid %q: %w", body.ID, err)
	}

	return Profile{ID: id, Name: body.Name}, nil
}

// OfflineUUID derives the version-3 UUID vanilla servers assign in
// offline mode: md5("OfflinePlayer:" + username) with version/variant
// bits fixed up.
func OfflineUUID(username string) uuid.UUID {
	digest := md5.Sum([]byte("OfflinePlayer:" + username))
	digest[6] = digest[6]&0x0F | 0x30
	digest[8] = digest[8]&0x3F | 0x80
	return uuid.UUID(digest)
}
