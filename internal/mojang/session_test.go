package mojang

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasJoined_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/session/minecraft/hasJoined", r.URL.Path)
		require.Equal(t, "Notch", r.URL.Query().Get("username"))
		require.Equal(t, "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1", r.URL.Query().Get("serverId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`))
	}))
	defer srv.Close()

	c := NewSessionClient(srv.URL)
	profile, err := c.HasJoined(context.Background(), "Notch", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1")
	require.NoError(t, err)
	require.Equal(t, "Notch", profile.Name)
	require.Equal(t, "069a79f4-44e9-4726-a5be-fca90e38aaf5", profile.ID.String())
}

func TestHasJoined_NotJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewSessionClient(srv.URL)
	_, err := c.HasJoined(context.Background(), "Notch", "digest")
	require.ErrorIs(t, err, ErrNotJoined)
}

func TestHasJoined_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewSessionClient(srv.URL)
	_, err := c.HasJoined(context.Background(), "Notch", "digest")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotJoined)
}

func TestOfflineUUID(t *testing.T) {
	id := OfflineUUID("Notch")
	// Version 3, IETF variant.
	require.Equal(t, byte(0x30), id[6]&0xF0)
	require.Equal(t, byte(0x80), id[8]&0xC0)
	// Deterministic.
	require.Equal(t, id, OfflineUUID("Notch"))
	require.NotEqual(t, id, OfflineUUID("jeb_"))
}
