package verify

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	mathrand "math/rand/v2"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/daidr/mcverify-go/internal/chat"
	"github.com/daidr/mcverify-go/internal/config"
	"github.com/daidr/mcverify-go/internal/crypto"
	"github.com/daidr/mcverify-go/internal/mcdata"
	"github.com/daidr/mcverify-go/internal/mojang"
	"github.com/daidr/mcverify-go/internal/protocol"
)

const (
	rsaKeyPairCount = 4

	// A connection that has not finished login within this window is
	// stuck or hostile.
	loginDeadline = 30 * time.Second
)

// Server accepts Minecraft clients and runs one verification session
// per login.
type Server struct {
	cfg     config.Server
	oracle  Oracle
	mojang  *mojang.SessionClient
	stats   *statsSampler
	favicon string

	rsaKeyPairs [rsaKeyPairCount]*crypto.RSAKeyPair

	online atomic.Int64

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a verification server. RSA key pairs are
// pre-generated; key generation is the only expensive part of setup.
func NewServer(cfg config.Server, oracle Oracle) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		oracle: oracle,
		mojang: mojang.NewSessionClient(cfg.SessionServerURL),
		stats:  newStatsSampler(cfg.DisplayIntervalDuration()),
	}

	if cfg.FaviconPath != "" {
		data, err := os.ReadFile(cfg.FaviconPath)
		if err != nil {
			return nil, fmt.Errorf("reading favicon %s: %w", cfg.FaviconPath, err)
		}
		s.favicon = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	}

	if cfg.OnlineMode {
		slog.Info("generating RSA key pairs", "count", rsaKeyPairCount)
		for i := range rsaKeyPairCount {
			kp, err := crypto.GenerateRSAKeyPair()
			if err != nil {
				return nil, fmt.Errorf("generating RSA key pair %d: %w", i, err)
			}
			s.rsaKeyPairs[i] = kp
		}
	}

	return s, nil
}

// Addr returns the address the server listens on, or nil before Run.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close shuts the listener down.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	return s.Serve(ctx, ln)
}

// Serve accepts connections from a ready listener. Split from Run so
// tests can pass their own listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.stats.Start()
	defer s.stats.Stop()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	wg.Go(func() {
		slog.Info("verification server started", "address", ln.Addr(), "online_mode", s.cfg.OnlineMode)
		acceptLoop(ctx, &wg, s, ln)
	})

	wg.Wait()

	return nil
}

func acceptLoop(ctx context.Context, wg *sync.WaitGroup, srv *Server, ln net.Listener) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := ln.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				slog.Error("failed to accept new connection", "error", err)
				continue
			}
			wg.Go(func() {
				srv.handleConnection(ctx, conn)
			})
		}
	}
}

func (s *Server) handleConnection(ctx context.Context, netConn net.Conn) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			netConn.Close()
		case <-done:
		}
	}()

	conn := protocol.NewConn(netConn)
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(loginDeadline))

	payload, err := conn.ReadPacket()
	if err != nil {
		slog.Debug("dropping connection before handshake", "remote", netConn.RemoteAddr(), "err", err)
		return
	}
	hs, err := protocol.DecodeHandshake(payload)
	if err != nil {
		slog.Debug("bad handshake", "remote", netConn.RemoteAddr(), "err", err)
		return
	}

	switch hs.Intent {
	case protocol.IntentStatus:
		s.handleStatus(conn, hs)
	case protocol.IntentLogin:
		s.handleLogin(ctx, conn, hs)
	}
}

// handleStatus answers the server list: one status request, one ping.
func (s *Server) handleStatus(conn *protocol.Conn, hs protocol.Handshake) {
	for {
		payload, err := conn.ReadPacket()
		if err != nil {
			return
		}
		r := protocol.NewReader(payload)
		id, err := r.ReadVarInt()
		if err != nil {
			return
		}

		switch id {
		case 0x00:
			resp, err := encodeStatusResponse(s.statusFor(hs.ProtocolVersion))
			if err != nil {
				slog.Error("failed to encode status response", "err", err)
				return
			}
			if err := conn.WritePacket(resp); err != nil {
				return
			}
		case 0x01:
			seq, err := r.ReadLong()
			if err != nil {
				return
			}
			conn.WritePacket(encodePong(seq))
			return
		default:
			return
		}
	}
}

// statusFor builds the server-list entry. Supported clients see their
// own protocol echoed back; unsupported ones see the window bounds so
// the list renders the incompatibility. Player counts are zeroed: the
// server takes everyone, there is no cap worth advertising.
func (s *Server) statusFor(clientProtocol int32) statusResponse {
	version := statusVersion{
		Name:     mcdata.Name(mcdata.MinProtocol) + " - " + mcdata.Name(mcdata.MaxProtocol),
		Protocol: mcdata.MaxProtocol,
	}

	desc := s.cfg.MOTD + "\n"
	if support := mcdata.Classify(clientProtocol); support == mcdata.Supported {
		version.Protocol = clientProtocol
		desc += chat.Yellow + chat.Bold + "Current time: " +
			chat.Aqua + time.Now().Format("2006-01-02 15:04:05")
	} else {
		desc += versionGateHint(support)
	}

	return statusResponse{
		Version: version,
		Players: statusPlayers{
			Max:    0,
			Online: 0,
			Sample: s.stats.sample(),
		},
		Description: chat.Text(desc).JSON(),
		Favicon:     s.favicon,
	}
}

// handleLogin walks the login state, then hands the connection to a
// session.
func (s *Server) handleLogin(ctx context.Context, conn *protocol.Conn, hs protocol.Handshake) {
	if support := mcdata.Classify(hs.ProtocolVersion); support != mcdata.Supported {
		slog.Info("rejecting unsupported version", "remote", conn.RemoteAddr(), "protocol", hs.ProtocolVersion, "support", support)
		conn.WritePacket(encodeLoginDisconnect(rejectionMessage(support)))
		return
	}
	caps := mcdata.Resolve(hs.ProtocolVersion)

	payload, err := conn.ReadPacket()
	if err != nil {
		slog.Debug("dropping connection before login start", "remote", conn.RemoteAddr(), "err", err)
		return
	}
	ls, err := protocol.DecodeLoginStart(payload, hs.ProtocolVersion)
	if err != nil {
		slog.Debug("bad login start", "remote", conn.RemoteAddr(), "err", err)
		return
	}

	username := ls.Name
	playerID := mojang.OfflineUUID(username)

	if s.cfg.OnlineMode {
		profile, err := s.authenticate(ctx, conn, hs.ProtocolVersion, username)
		if err != nil {
			slog.Warn("authentication failed", "remote", conn.RemoteAddr(), "player", username, "err", err)
			conn.WritePacket(encodeLoginDisconnect(msgAuthFailed()))
			return
		}
		username = profile.Name
		playerID = profile.ID
	}

	if s.cfg.CompressionThreshold >= 0 {
		if err := conn.WritePacket(encodeSetCompression(s.cfg.CompressionThreshold)); err != nil {
			return
		}
		conn.EnableCompression(s.cfg.CompressionThreshold)
	}

	if err := conn.WritePacket(encodeLoginSuccess(caps, playerID, username)); err != nil {
		return
	}

	conn.SetDeadline(time.Time{})

	slog.Info("player logged in", "player", username, "uuid", playerID, "version", caps.Name, "protocol", hs.ProtocolVersion)

	session := NewSession(conn, caps, s.oracle, SessionConfig{
		Endpoint:          s.cfg.Endpoint,
		VerifyTimeout:     s.cfg.VerifyTimeoutDuration(),
		DisplayInterval:   s.cfg.DisplayIntervalDuration(),
		PollInterval:      s.cfg.PollIntervalDuration(),
		KeepAliveInterval: s.cfg.KeepAliveIntervalDuration(),
	}, username, playerID)

	s.online.Add(1)
	defer func() {
		slog.Debug("session slot released", "online", s.online.Add(-1))
	}()

	if st := session.Run(ctx); !st.Terminal() {
		slog.Info("player left before a verdict", "player", username, "state", st)
	}
}

// authenticate runs the vanilla encryption handshake and checks the
// player against the Mojang session service.
func (s *Server) authenticate(ctx context.Context, conn *protocol.Conn, protocolVersion int32, username string) (mojang.Profile, error) {
	kp := s.rsaKeyPairs[mathrand.IntN(rsaKeyPairCount)]
	token, err := crypto.VerifyToken()
	if err != nil {
		return mojang.Profile{}, fmt.Errorf("generating verify token: %w", err)
	}

	if err := conn.WritePacket(encodeEncryptionRequest("", kp.PublicKeyDER, token)); err != nil {
		return mojang.Profile{}, fmt.Errorf("sending encryption request: %w", err)
	}

	payload, err := conn.ReadPacket()
	if err != nil {
		return mojang.Profile{}, fmt.Errorf("reading encryption response: %w", err)
	}
	er, err := protocol.DecodeEncryptionResponse(payload, protocolVersion)
	if err != nil {
		return mojang.Profile{}, err
	}

	if er.HasToken {
		echoed, err := kp.Decrypt(er.VerifyToken)
		if err != nil {
			return mojang.Profile{}, fmt.Errorf("decrypting verify token: %w", err)
		}
		if subtle.ConstantTimeCompare(echoed, token) != 1 {
			return mojang.Profile{}, errors.New("verify token mismatch")
		}
	}

	secret, err := kp.Decrypt(er.SharedSecret)
	if err != nil {
		return mojang.Profile{}, fmt.Errorf("decrypting shared secret: %w", err)
	}

	encrypt, decrypt, err := crypto.NewAESStreams(secret)
	if err != nil {
		return mojang.Profile{}, fmt.Errorf("setting up AES streams: %w", err)
	}
	conn.EnableEncryption(encrypt, decrypt)

	digest := crypto.AuthDigest("", secret, kp.PublicKeyDER)
	profile, err := s.mojang.HasJoined(ctx, username, digest)
	if err != nil {
		return mojang.Profile{}, fmt.Errorf("checking session server: %w", err)
	}

	return profile, nil
}
