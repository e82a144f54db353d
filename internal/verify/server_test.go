package verify

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daidr/mcverify-go/internal/config"
	"github.com/daidr/mcverify-go/internal/mcdata"
	"github.com/daidr/mcverify-go/internal/mojang"
	"github.com/daidr/mcverify-go/internal/protocol"
)

func startTestServer(t *testing.T, oracle Oracle) *protocol.Conn {
	t.Helper()

	cfg := config.Default()
	cfg.OnlineMode = false
	cfg.CompressionThreshold = -1

	srv, err := NewServer(cfg, oracle)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Serve(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not shut down")
		}
	})

	netConn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	conn := protocol.NewConn(netConn)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendHandshake(t *testing.T, conn *protocol.Conn, protocolVersion, intent int32) {
	t.Helper()
	w := protocol.NewWriter(0x00)
	w.WriteVarInt(protocolVersion)
	w.WriteString("127.0.0.1")
	w.WriteUShort(25565)
	w.WriteVarInt(intent)
	require.NoError(t, conn.WritePacket(w.Bytes()))
}

func sendLoginStart(t *testing.T, conn *protocol.Conn, name string, protocolVersion int32) {
	t.Helper()
	w := protocol.NewWriter(0x00)
	w.WriteString(name)
	if protocolVersion >= 761 {
		w.WriteUUID(mojang.OfflineUUID(name))
	}
	require.NoError(t, conn.WritePacket(w.Bytes()))
}

func TestServer_StatusPing(t *testing.T) {
	conn := startTestServer(t, nil)
	sendHandshake(t, conn, 763, protocol.IntentStatus)

	require.NoError(t, conn.WritePacket(protocol.NewWriter(0x00).Bytes()))

	payload, err := conn.ReadPacket()
	require.NoError(t, err)
	r := protocol.NewReader(payload)
	id, err := r.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, statusResponseID, id)

	body, err := r.ReadString()
	require.NoError(t, err)
	assert.Contains(t, body, "MC ")
	assert.Contains(t, body, `"protocol":763`)
	assert.Contains(t, body, "Current time:")
	assert.Contains(t, body, "Heap:")
	assert.Contains(t, body, `"max":0`)
	assert.Contains(t, body, `"online":0`)

	ping := protocol.NewWriter(0x01)
	ping.WriteLong(424242)
	require.NoError(t, conn.WritePacket(ping.Bytes()))

	payload, err = conn.ReadPacket()
	require.NoError(t, err)
	r = protocol.NewReader(payload)
	id, err = r.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, statusPongID, id)
	seq, err := r.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(424242), seq)
}

func TestServer_StatusShowsWindowToUnsupportedClients(t *testing.T) {
	conn := startTestServer(t, nil)
	sendHandshake(t, conn, 47, protocol.IntentStatus)
	require.NoError(t, conn.WritePacket(protocol.NewWriter(0x00).Bytes()))

	payload, err := conn.ReadPacket()
	require.NoError(t, err)
	r := protocol.NewReader(payload)
	_, err = r.ReadVarInt()
	require.NoError(t, err)
	body, err := r.ReadString()
	require.NoError(t, err)

	// Advertise the window bounds so the client renders a mismatch,
	// with the reason spelled out under the MOTD.
	assert.Contains(t, body, `"protocol":763`)
	assert.Contains(t, body, "1.9 - 1.20.1")
	assert.Contains(t, body, "too old")
}

func TestServer_RejectsVersionsOutsideWindow(t *testing.T) {
	cases := []struct {
		name     string
		protocol int32
		want     string
	}{
		{"too old", 47, "too old"},
		{"too new release", 999, "too new"},
		{"snapshot", 1_000_000, "Snapshot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := startTestServer(t, nil)
			sendHandshake(t, conn, tc.protocol, protocol.IntentLogin)

			payload, err := conn.ReadPacket()
			require.NoError(t, err)
			r := protocol.NewReader(payload)
			id, err := r.ReadVarInt()
			require.NoError(t, err)
			assert.Equal(t, loginDisconnectID, id)

			reason, err := r.ReadString()
			require.NoError(t, err)
			assert.Contains(t, reason, tc.want)
		})
	}
}

func TestServer_OfflineLoginFlow(t *testing.T) {
	oracle := oracleFunc(func(ctx context.Context, playerID uuid.UUID) (CheckResult, error) {
		return CheckResult{Verified: true}, nil
	})
	conn := startTestServer(t, oracle)

	sendHandshake(t, conn, 763, protocol.IntentLogin)
	sendLoginStart(t, conn, "Notch", 763)

	payload, err := conn.ReadPacket()
	require.NoError(t, err)
	r := protocol.NewReader(payload)
	id, err := r.ReadVarInt()
	require.NoError(t, err)
	require.Equal(t, loginSuccessID, id)

	gotID, err := r.ReadUUID()
	require.NoError(t, err)
	assert.Equal(t, mojang.OfflineUUID("Notch"), gotID)
	name, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Notch", name)

	// The already-verified flow plays out and kicks us.
	caps := mcdata.Resolve(763)
	var ids []int32
	for {
		payload, err := conn.ReadPacket()
		if err != nil {
			break
		}
		id, err := protocol.NewReader(payload).ReadVarInt()
		require.NoError(t, err)
		ids = append(ids, id)
		if id == caps.IDs.Disconnect {
			break
		}
	}

	require.NotEmpty(t, ids)
	assert.Equal(t, caps.IDs.JoinGame, ids[0])
	assert.Equal(t, caps.IDs.Disconnect, ids[len(ids)-1])
	// An already-verified account hears about it exactly once, on the
	// disconnect screen.
	assert.NotContains(t, ids, caps.IDs.SystemChat)
}

func TestServer_CompressedLogin(t *testing.T) {
	oracle := oracleFunc(func(ctx context.Context, playerID uuid.UUID) (CheckResult, error) {
		return CheckResult{Verified: true}, nil
	})

	cfg := config.Default()
	cfg.OnlineMode = false
	cfg.CompressionThreshold = 64

	srv, err := NewServer(cfg, oracle)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx, ln)

	netConn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	conn := protocol.NewConn(netConn)
	defer conn.Close()

	sendHandshake(t, conn, 763, protocol.IntentLogin)
	sendLoginStart(t, conn, "Notch", 763)

	payload, err := conn.ReadPacket()
	require.NoError(t, err)
	r := protocol.NewReader(payload)
	id, err := r.ReadVarInt()
	require.NoError(t, err)
	require.Equal(t, setCompressionID, id)
	threshold, err := r.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(64), threshold)
	conn.EnableCompression(int(threshold))

	// Login success and the join sequence arrive compressed; the join
	// packet with its registry codec is well above the threshold.
	payload, err = conn.ReadPacket()
	require.NoError(t, err)
	id, err = protocol.NewReader(payload).ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, loginSuccessID, id)

	payload, err = conn.ReadPacket()
	require.NoError(t, err)
	id, err = protocol.NewReader(payload).ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, mcdata.Resolve(763).IDs.JoinGame, id)
}
