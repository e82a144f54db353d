package verify

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/daidr/mcverify-go/internal/chat"
	"github.com/daidr/mcverify-go/internal/mcdata"
	"github.com/daidr/mcverify-go/internal/protocol"
)

// Login and status state packet IDs. Unlike play-state IDs these never
// moved inside the supported window.
const (
	statusResponseID    int32 = 0x00
	statusPongID        int32 = 0x01
	loginDisconnectID   int32 = 0x00
	encryptionRequestID int32 = 0x01
	loginSuccessID      int32 = 0x02
	setCompressionID    int32 = 0x03
)

// Boss bar colors (the subset the countdown uses).
const (
	bossBarRed    int32 = 2
	bossBarGreen  int32 = 3
	bossBarYellow int32 = 4
)

const worldName = "minecraft:overworld"

// statusSample is one line of the server list hover text, abused as a
// fake player entry.
type statusSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type statusPlayers struct {
	Max    int            `json:"max"`
	Online int            `json:"online"`
	Sample []statusSample `json:"sample,omitempty"`
}

type statusResponse struct {
	Version     statusVersion   `json:"version"`
	Players     statusPlayers   `json:"players"`
	Description json.RawMessage `json:"description"`
	Favicon     string          `json:"favicon,omitempty"`
}

func encodeStatusResponse(resp statusResponse) ([]byte, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	w := protocol.NewWriter(statusResponseID)
	w.WriteString(string(body))
	return w.Bytes(), nil
}

func encodePong(payload int64) []byte {
	w := protocol.NewWriter(statusPongID)
	w.WriteLong(payload)
	return w.Bytes()
}

func encodeLoginDisconnect(reason chat.Component) []byte {
	w := protocol.NewWriter(loginDisconnectID)
	w.WriteString(string(reason.JSON()))
	return w.Bytes()
}

func encodeEncryptionRequest(serverID string, publicKeyDER, verifyToken []byte) []byte {
	w := protocol.NewWriter(encryptionRequestID)
	w.WriteString(serverID)
	w.WriteByteArray(publicKeyDER)
	w.WriteByteArray(verifyToken)
	return w.Bytes()
}

// encodeLoginSuccess ends the login state. The UUID travels as a
// dashed string before 1.16 and as raw bytes after; 1.19 appended an
// (empty) property list.
func encodeLoginSuccess(caps mcdata.Capabilities, id uuid.UUID, name string) []byte {
	w := protocol.NewWriter(loginSuccessID)
	if caps.Protocol >= 735 {
		w.WriteUUID(id)
	} else {
		w.WriteString(id.String())
	}
	w.WriteString(name)
	if caps.Protocol >= 759 {
		w.WriteVarInt(0)
	}
	return w.Bytes()
}

func encodeSetCompression(threshold int) []byte {
	w := protocol.NewWriter(setCompressionID)
	w.WriteVarInt(int32(threshold))
	return w.Bytes()
}

// encodeJoinGame builds the join packet for the resolved layout epoch.
// The holding world is an empty overworld; the player never leaves the
// loading screen area, so seed, view distance and the rest are
// placeholders.
func encodeJoinGame(caps mcdata.Capabilities, entityID int32) []byte {
	w := protocol.NewWriter(caps.IDs.JoinGame)
	w.WriteInt(entityID)

	switch caps.Join {
	case mcdata.Join107, mcdata.Join108:
		w.WriteByte(0) // gamemode survival, switched to spectator after join
		if caps.Dimension == mcdata.DimensionInt8 {
			w.WriteByte(0)
		} else {
			w.WriteInt(0)
		}
		w.WriteByte(2) // difficulty normal
		w.WriteByte(1) // max players
		w.WriteString("default")
		w.WriteBool(false) // reduced debug info

	case mcdata.Join477:
		w.WriteByte(0)
		w.WriteInt(0)
		w.WriteByte(1)
		w.WriteString("default")
		w.WriteVarInt(10) // view distance
		w.WriteBool(false)

	case mcdata.Join573:
		w.WriteByte(0)
		w.WriteInt(0)
		w.WriteLong(0) // hashed seed
		w.WriteByte(1)
		w.WriteString("default")
		w.WriteVarInt(10)
		w.WriteBool(false)
		w.WriteBool(true) // enable respawn screen

	case mcdata.Join735:
		w.WriteByte(0)
		w.WriteByte(0xFF) // previous gamemode: none
		w.WriteVarInt(1)
		w.WriteString(worldName)
		w.WriteBytes(mustMarshalNBT(dimensionCodec735()))
		w.WriteString(worldName) // dimension
		w.WriteString(worldName) // world being spawned into
		w.WriteLong(0)
		w.WriteByte(1)
		w.WriteVarInt(10)
		w.WriteBool(false)
		w.WriteBool(true)
		w.WriteBool(false) // debug world
		w.WriteBool(false) // flat world

	case mcdata.Join751, mcdata.Join757:
		w.WriteBool(false) // hardcore
		w.WriteByte(0)
		w.WriteByte(0xFF)
		w.WriteVarInt(1)
		w.WriteString(worldName)
		w.WriteBytes(mustMarshalNBT(registryCodec(caps.Protocol)))
		w.WriteBytes(mustMarshalNBT(dimensionAttributes(caps.Protocol)))
		w.WriteString(worldName)
		w.WriteLong(0)
		w.WriteVarInt(1)
		w.WriteVarInt(10)
		if caps.Join == mcdata.Join757 {
			w.WriteVarInt(10) // simulation distance
		}
		w.WriteBool(false)
		w.WriteBool(true)
		w.WriteBool(false)
		w.WriteBool(false)

	case mcdata.Join759, mcdata.Join763:
		w.WriteBool(false)
		w.WriteByte(0)
		w.WriteByte(0xFF)
		w.WriteVarInt(1)
		w.WriteString(worldName)
		w.WriteBytes(mustMarshalNBT(registryCodec(caps.Protocol)))
		w.WriteString(worldName) // dimension type
		w.WriteString(worldName)
		w.WriteLong(0)
		w.WriteVarInt(1)
		w.WriteVarInt(10)
		w.WriteVarInt(10)
		w.WriteBool(false)
		w.WriteBool(true)
		w.WriteBool(false)
		w.WriteBool(false)
		w.WriteBool(false) // death location
		if caps.Join == mcdata.Join763 {
			w.WriteVarInt(0) // portal cooldown
		}
	}
	return w.Bytes()
}

// encodeChat delivers a system announcement to the chat box for
// whatever chat packet the version speaks.
func encodeChat(caps mcdata.Capabilities, c chat.Component) []byte {
	if caps.SystemChat {
		w := protocol.NewWriter(caps.IDs.SystemChat)
		w.WriteString(string(c.JSON()))
		if caps.SystemChatOverlayBool {
			w.WriteBool(false)
		} else {
			w.WriteVarInt(1) // registered system chat type
		}
		return w.Bytes()
	}

	w := protocol.NewWriter(caps.IDs.ChatMessage)
	w.WriteString(string(c.JSON()))
	w.WriteByte(1) // system message position
	if caps.ChatSenderUUID {
		w.WriteUUID(uuid.Nil)
	}
	return w.Bytes()
}

func encodeBossBarAdd(caps mcdata.Capabilities, barID uuid.UUID, title chat.Component, health float32, color int32) []byte {
	w := protocol.NewWriter(caps.IDs.BossBar)
	w.WriteUUID(barID)
	w.WriteVarInt(0) // add
	w.WriteString(string(title.JSON()))
	w.WriteFloat(health)
	w.WriteVarInt(color)
	w.WriteVarInt(0) // no notches
	w.WriteByte(0)   // flags
	return w.Bytes()
}

func encodeBossBarHealth(caps mcdata.Capabilities, barID uuid.UUID, health float32) []byte {
	w := protocol.NewWriter(caps.IDs.BossBar)
	w.WriteUUID(barID)
	w.WriteVarInt(2)
	w.WriteFloat(health)
	return w.Bytes()
}

func encodeBossBarTitle(caps mcdata.Capabilities, barID uuid.UUID, title chat.Component) []byte {
	w := protocol.NewWriter(caps.IDs.BossBar)
	w.WriteUUID(barID)
	w.WriteVarInt(3)
	w.WriteString(string(title.JSON()))
	return w.Bytes()
}

func encodeBossBarStyle(caps mcdata.Capabilities, barID uuid.UUID, color int32) []byte {
	w := protocol.NewWriter(caps.IDs.BossBar)
	w.WriteUUID(barID)
	w.WriteVarInt(4)
	w.WriteVarInt(color)
	w.WriteVarInt(0)
	return w.Bytes()
}

// bossBarColor maps remaining progress to the countdown color tier.
func bossBarColor(progress float32) int32 {
	switch {
	case progress >= 0.7:
		return bossBarGreen
	case progress >= 0.3:
		return bossBarYellow
	default:
		return bossBarRed
	}
}

func encodeSpawnPosition(caps mcdata.Capabilities) []byte {
	w := protocol.NewWriter(caps.IDs.SpawnPosition)
	w.WritePosition(0, 0, 0, caps.ModernPosition)
	if caps.SpawnAngle {
		w.WriteFloat(90)
	}
	return w.Bytes()
}

// encodeEntityRelMove nudges the player's own entity. The client
// dismisses the downloading-terrain screen once its entity moves.
func encodeEntityRelMove(caps mcdata.Capabilities, entityID int32) []byte {
	w := protocol.NewWriter(caps.IDs.EntityRelMove)
	w.WriteVarInt(entityID)
	w.WriteShort(1)
	w.WriteShort(0)
	w.WriteShort(0)
	w.WriteBool(true) // on ground
	return w.Bytes()
}

func encodeEntityDestroy(caps mcdata.Capabilities, entityID int32) []byte {
	w := protocol.NewWriter(caps.IDs.EntityDestroy)
	if caps.SingleEntityDestroy {
		w.WriteVarInt(entityID)
		return w.Bytes()
	}
	w.WriteVarInt(1)
	w.WriteVarInt(entityID)
	return w.Bytes()
}

// encodeSpectatorMode switches the client into spectator so it cannot
// interact with the empty world.
func encodeSpectatorMode(caps mcdata.Capabilities) []byte {
	w := protocol.NewWriter(caps.IDs.GameStateChange)
	w.WriteByte(3)  // change gamemode
	w.WriteFloat(3) // spectator
	return w.Bytes()
}

// encodeTimeUpdate pins the world clock to dusk.
func encodeTimeUpdate(caps mcdata.Capabilities) []byte {
	w := protocol.NewWriter(caps.IDs.TimeUpdate)
	w.WriteLong(0)
	w.WriteLong(16000)
	return w.Bytes()
}

func encodeBrand(caps mcdata.Capabilities, brand string) []byte {
	channel := "MC|Brand"
	if caps.ModernBrandChannel {
		channel = "minecraft:brand"
	}
	w := protocol.NewWriter(caps.IDs.PluginMessage)
	w.WriteString(channel)
	w.WriteString(brand)
	return w.Bytes()
}

func encodeKeepAlive(caps mcdata.Capabilities, id int64) []byte {
	w := protocol.NewWriter(caps.IDs.KeepAlive)
	if caps.KeepAliveLong {
		w.WriteLong(id)
	} else {
		w.WriteVarInt(int32(id))
	}
	return w.Bytes()
}

func encodePlayDisconnect(caps mcdata.Capabilities, reason chat.Component) []byte {
	w := protocol.NewWriter(caps.IDs.Disconnect)
	w.WriteString(string(reason.JSON()))
	return w.Bytes()
}
