package verify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daidr/mcverify-go/internal/chat"
	"github.com/daidr/mcverify-go/internal/mcdata"
)

// packetConn is the slice of the framed connection a session needs.
type packetConn interface {
	WritePacket(payload []byte) error
	ReadPacket() ([]byte, error)
	Close() error
}

// tickerFactory lets tests drive session timers by hand.
type tickerFactory func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// The player's own entity in the holding world. Any non-zero ID works;
// nothing else is ever spawned.
const playerEntityID int32 = 1

// SessionConfig carries the per-session knobs the server resolves from
// its configuration.
type SessionConfig struct {
	Endpoint          string
	VerifyTimeout     time.Duration
	DisplayInterval   time.Duration
	PollInterval      time.Duration
	KeepAliveInterval time.Duration
}

// Session walks one logged-in player through the verification flow:
// put them in an empty world, show the countdown, poll the oracle,
// kick them with a verdict.
type Session struct {
	conn     packetConn
	caps     mcdata.Capabilities
	oracle   Oracle
	cfg      SessionConfig
	log      *slog.Logger
	username string
	playerID uuid.UUID

	now       func() time.Time
	newTicker tickerFactory

	mu    sync.Mutex
	state SessionState

	// set once the oracle issues a code
	code      int64
	deadline  time.Time
	barID     uuid.UUID
	lastColor int32
}

// NewSession prepares a session for a player that completed login.
func NewSession(conn packetConn, caps mcdata.Capabilities, oracle Oracle, cfg SessionConfig, username string, playerID uuid.UUID) *Session {
	return &Session{
		conn:      conn,
		caps:      caps,
		oracle:    oracle,
		cfg:       cfg,
		log:       slog.With("player", username, "uuid", playerID, "version", caps.Name),
		username:  username,
		playerID:  playerID,
		now:       time.Now,
		newTicker: realTicker,
		state:     StateJoining,
		barID:     uuid.New(),
		lastColor: -1,
	}
}

// State returns the session's current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st SessionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run drives the session to a terminal state or until the client goes
// away. The final state is returned for the server's accounting.
func (s *Session) Run(ctx context.Context) SessionState {
	defer s.conn.Close()

	if err := s.joinWorld(); err != nil {
		s.log.Warn("failed to spawn player", "err", err)
		s.setState(StateError)
		return StateError
	}

	s.setState(StateAwaitingCode)
	res, err := s.oracle.CheckStatus(ctx, s.playerID)
	if err != nil {
		s.log.Error("oracle check failed", "err", err)
		return s.terminate(StateError, msgOracleError())
	}
	if res.Verified {
		// The disconnect screen is the one and only success message.
		return s.terminate(StateAlreadyVerified, msgAlreadyVerified())
	}

	s.mu.Lock()
	s.code = res.Code
	s.deadline = res.CreatedAt.Add(s.cfg.VerifyTimeout)
	s.mu.Unlock()

	s.announce()
	s.showCountdown()
	s.setState(StatePolling)

	return s.loop(ctx)
}

// joinWorld sends the fixed packet sequence that lands the client in
// the empty holding world: spawn, a nudge to clear the loading screen,
// spectator mode so nothing is interactable, dusk lighting.
func (s *Session) joinWorld() error {
	if err := s.conn.WritePacket(encodeJoinGame(s.caps, playerEntityID)); err != nil {
		return err
	}
	s.send(encodeBrand(s.caps, "mcverify"))
	s.send(encodeSpawnPosition(s.caps))
	s.send(encodeTimeUpdate(s.caps))
	s.send(encodeSpectatorMode(s.caps))
	s.send(encodeEntityRelMove(s.caps, playerEntityID))
	s.send(encodeEntityDestroy(s.caps, playerEntityID))
	return nil
}

// announce delivers the four-line briefing.
func (s *Session) announce() {
	s.send(encodeChat(s.caps, announcement(msgGreeting(s.username))))
	s.send(encodeChat(s.caps, announcement(msgInstructions())))
	s.send(encodeChat(s.caps, announcement(msgKeybindHint())))
	s.send(encodeChat(s.caps, announcement(msgBindLink(s.cfg.Endpoint, s.code, s.playerID))))
}

func (s *Session) showCountdown() {
	remaining := s.deadline.Sub(s.now())
	progress := s.progress(remaining)
	color := bossBarColor(progress)
	s.lastColor = color
	s.send(encodeBossBarAdd(s.caps, s.barID, msgCountdown(remaining, progress), progress, color))
}

func (s *Session) progress(remaining time.Duration) float32 {
	if remaining <= 0 {
		return 0
	}
	p := float32(remaining) / float32(s.cfg.VerifyTimeout)
	if p > 1 {
		p = 1
	}
	return p
}

// loop multiplexes the three timers and the inbound read pump until a
// verdict lands.
func (s *Session) loop(ctx context.Context) SessionState {
	display, stopDisplay := s.newTicker(s.cfg.DisplayInterval)
	defer stopDisplay()
	poll, stopPoll := s.newTicker(s.cfg.PollInterval)
	defer stopPoll()
	keepAlive, stopKeepAlive := s.newTicker(s.cfg.KeepAliveInterval)
	defer stopKeepAlive()

	readErr := make(chan error, 1)
	go s.drainInbound(readErr)

	for {
		select {
		case <-ctx.Done():
			return s.terminate(StateError, msgServerClosing())

		case err := <-readErr:
			// Client went away on its own; nothing left to tell it.
			s.log.Info("client disconnected", "state", s.State(), "err", err)
			return s.State()

		case now := <-display:
			if st, done := s.tickDisplay(now); done {
				return st
			}

		case <-poll:
			if st, done := s.tickPoll(ctx); done {
				return st
			}

		case <-keepAlive:
			s.send(encodeKeepAlive(s.caps, s.now().UnixMilli()))
		}
	}
}

// tickDisplay refreshes the countdown bar and fires the timeout. It
// works from the tick's own timestamp so a tick is self-contained.
func (s *Session) tickDisplay(now time.Time) (SessionState, bool) {
	remaining := s.deadline.Sub(now)
	if remaining <= 0 {
		return s.terminate(StateTimedOut, msgTimedOut()), true
	}

	progress := s.progress(remaining)
	s.send(encodeBossBarTitle(s.caps, s.barID, msgCountdown(remaining, progress)))
	s.send(encodeBossBarHealth(s.caps, s.barID, progress))
	if color := bossBarColor(progress); color != s.lastColor {
		s.lastColor = color
		s.send(encodeBossBarStyle(s.caps, s.barID, color))
	}
	return 0, false
}

// tickPoll asks the oracle for a verdict. A code different from the one
// shown to the player means a newer code superseded this session;
// the stale session is rejected rather than left to win later.
func (s *Session) tickPoll(ctx context.Context) (SessionState, bool) {
	res, err := s.oracle.CheckStatus(ctx, s.playerID)
	if err != nil {
		s.log.Error("oracle poll failed", "err", err)
		return s.terminate(StateError, msgOracleError()), true
	}
	if res.Verified {
		return s.terminate(StateBound, msgVerified()), true
	}
	if res.Code != s.code {
		return s.terminate(StateRejected, msgRejected()), true
	}
	return 0, false
}

// terminate is the single exit path: record the verdict, tell the
// player, cut the connection. Safe to call once per session; the loop
// structure guarantees that.
func (s *Session) terminate(st SessionState, reason chat.Component) SessionState {
	s.setState(st)
	s.send(encodePlayDisconnect(s.caps, reason))
	s.conn.Close()
	s.log.Info("session ended", "state", st)
	return st
}

// drainInbound consumes serverbound packets. Nothing the client sends
// matters after login, but the socket has to be read for keep-alive
// responses, and a read error is how we learn the client left.
func (s *Session) drainInbound(readErr chan<- error) {
	for {
		if _, err := s.conn.ReadPacket(); err != nil {
			readErr <- err
			return
		}
	}
}

// send fires one packet, treating write errors as soft: the read pump
// notices the dead socket and ends the session on its own.
func (s *Session) send(payload []byte) {
	if err := s.conn.WritePacket(payload); err != nil {
		s.log.Debug("write failed", "err", err)
	}
}
