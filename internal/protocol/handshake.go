package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

// Connection intents carried in the handshake packet.
const (
	IntentStatus int32 = 1
	IntentLogin  int32 = 2
)

// Handshake is the first serverbound packet on every connection
// (packet 0x00 in the handshaking state).
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	Intent          int32
}

// DecodeHandshake parses the handshake packet payload.
func DecodeHandshake(payload []byte) (Handshake, error) {
	r := NewReader(payload)
	id, err := r.ReadVarInt()
	if err != nil {
		return Handshake{}, fmt.Errorf("reading packet id: %w", err)
	}
	if id != 0x00 {
		return Handshake{}, fmt.Errorf("expected handshake packet 0x00, got 0x%02X", id)
	}

	var hs Handshake
	if hs.ProtocolVersion, err = r.ReadVarInt(); err != nil {
		return Handshake{}, fmt.Errorf("reading protocol version: %w", err)
	}
	if hs.ServerAddress, err = r.ReadString(); err != nil {
		return Handshake{}, fmt.Errorf("reading server address: %w", err)
	}
	if hs.ServerPort, err = r.ReadUShort(); err != nil {
		return Handshake{}, fmt.Errorf("reading server port: %w", err)
	}
	if hs.Intent, err = r.ReadVarInt(); err != nil {
		return Handshake{}, fmt.Errorf("reading intent: %w", err)
	}
	if hs.Intent != IntentStatus && hs.Intent != IntentLogin {
		return Handshake{}, fmt.Errorf("invalid handshake intent: %d", hs.Intent)
	}
	return hs, nil
}

// LoginStart is the first serverbound packet of the login state.
// Its shape changed three times inside the supported window:
// 759 added an optional signature block, 760 an optional profile UUID,
// 761 made the UUID mandatory and dropped the signature block.
type LoginStart struct {
	Name       string
	ProfileID  uuid.UUID
	HasProfile bool
}

// DecodeLoginStart parses the login start payload for the given
// protocol version.
func DecodeLoginStart(payload []byte, protocol int32) (LoginStart, error) {
	r := NewReader(payload)
	id, err := r.ReadVarInt()
	if err != nil {
		return LoginStart{}, fmt.Errorf("reading packet id: %w", err)
	}
	if id != 0x00 {
		return LoginStart{}, fmt.Errorf("expected login start packet 0x00, got 0x%02X", id)
	}

	var ls LoginStart
	if ls.Name, err = r.ReadString(); err != nil {
		return LoginStart{}, fmt.Errorf("reading username: %w", err)
	}
	if len(ls.Name) == 0 || len(ls.Name) > 16 {
		return LoginStart{}, fmt.Errorf("invalid username length: %d", len(ls.Name))
	}

	if protocol >= 759 && protocol <= 760 {
		// Optional chat-signing key: timestamp, public key, signature.
		// The verification flow never verifies chat signatures; skip it.
		hasSig, err := r.ReadBool()
		if err != nil {
			return LoginStart{}, fmt.Errorf("reading signature flag: %w", err)
		}
		if hasSig {
			if _, err := r.ReadLong(); err != nil {
				return LoginStart{}, fmt.Errorf("reading key expiry: %w", err)
			}
			if _, err := r.ReadByteArray(); err != nil {
				return LoginStart{}, fmt.Errorf("reading public key: %w", err)
			}
			if _, err := r.ReadByteArray(); err != nil {
				return LoginStart{}, fmt.Errorf("reading key signature: %w", err)
			}
		}
	}

	switch {
	case protocol >= 761:
		if ls.ProfileID, err = r.ReadUUID(); err != nil {
			return LoginStart{}, fmt.Errorf("reading profile uuid: %w", err)
		}
		ls.HasProfile = true
	case protocol == 760:
		hasUUID, err := r.ReadBool()
		if err != nil {
			return LoginStart{}, fmt.Errorf("reading profile uuid flag: %w", err)
		}
		if hasUUID {
			if ls.ProfileID, err = r.ReadUUID(); err != nil {
				return LoginStart{}, fmt.Errorf("reading profile uuid: %w", err)
			}
			ls.HasProfile = true
		}
	}
	return ls, nil
}

// EncryptionResponse carries the RSA-encrypted shared secret.
// Protocols 759-760 may substitute a salted signature for the verify
// token; the salt and signature are read and discarded.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
	HasToken     bool
}

// DecodeEncryptionResponse parses the encryption response payload for
// the given protocol version.
func DecodeEncryptionResponse(payload []byte, protocol int32) (EncryptionResponse, error) {
	r := NewReader(payload)
	id, err := r.ReadVarInt()
	if err != nil {
		return EncryptionResponse{}, fmt.Errorf("reading packet id: %w", err)
	}
	if id != 0x01 {
		return EncryptionResponse{}, fmt.Errorf("expected encryption response packet 0x01, got 0x%02X", id)
	}

	var er EncryptionResponse
	if er.SharedSecret, err = r.ReadByteArray(); err != nil {
		return EncryptionResponse{}, fmt.Errorf("reading shared secret: %w", err)
	}

	if protocol >= 759 && protocol <= 760 {
		hasToken, err := r.ReadBool()
		if err != nil {
			return EncryptionResponse{}, fmt.Errorf("reading verify token flag: %w", err)
		}
		if !hasToken {
			if _, err := r.ReadLong(); err != nil {
				return EncryptionResponse{}, fmt.Errorf("reading salt: %w", err)
			}
			if _, err := r.ReadByteArray(); err != nil {
				return EncryptionResponse{}, fmt.Errorf("reading signature: %w", err)
			}
			return er, nil
		}
	}

	if er.VerifyToken, err = r.ReadByteArray(); err != nil {
		return EncryptionResponse{}, fmt.Errorf("reading verify token: %w", err)
	}
	er.HasToken = true
	return er, nil
}
