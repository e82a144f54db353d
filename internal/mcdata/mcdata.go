// Package mcdata resolves a client-reported protocol version into the
// set of wire-format capabilities active for that version. Encoders
// consume the resolved flags; nothing outside this package compares raw
// protocol numbers against feature thresholds.
package mcdata

import "sort"

// Window boundaries.
const (
	// MinProtocol is 1.9, the version that introduced boss bars and the
	// modern play-state packet layout the verification UI depends on.
	MinProtocol int32 = 107
	// MaxProtocol is 1.20.1, the newest release with a verified
	// capability table entry.
	MaxProtocol int32 = 763
	// SnapshotSentinel marks snapshot protocol numbering: snapshot
	// clients report absurdly large versions in a dedicated range.
	SnapshotSentinel int32 = 1_000_000
)

// Support classifies a protocol version against the supported window.
type Support int

const (
	Supported Support = iota
	TooOld
	TooNewRelease
	TooNewSnapshot
)

func (s Support) String() string {
	switch s {
	case Supported:
		return "SUPPORTED"
	case TooOld:
		return "TOO_OLD"
	case TooNewRelease:
		return "TOO_NEW_RELEASE"
	case TooNewSnapshot:
		return "TOO_NEW_SNAPSHOT"
	default:
		return "UNKNOWN"
	}
}

// Classify places a protocol version into one of the three rejection
// ranges or the supported window.
func Classify(protocol int32) Support {
	switch {
	case protocol >= SnapshotSentinel:
		return TooNewSnapshot
	case protocol < MinProtocol:
		return TooOld
	case protocol > MaxProtocol:
		return TooNewRelease
	default:
		return Supported
	}
}

// DimensionKind is how the join packet encodes the dimension field.
type DimensionKind int

const (
	// DimensionInt8 is a single signed byte (1.9 only).
	DimensionInt8 DimensionKind = iota
	// DimensionInt32 is a signed int (1.9.1 through 1.15.2).
	DimensionInt32
	// DimensionName is a string identifier (1.16, 1.16.1 and 1.19+).
	DimensionName
	// DimensionNBT is the full dimension-type compound (1.16.2 through 1.18.2).
	DimensionNBT
)

// JoinEpoch selects the overall join-packet field layout.
type JoinEpoch int

const (
	Join107 JoinEpoch = iota // 1.9: dimension byte, difficulty, level type
	Join108                  // 1.9.1-1.13.2: dimension int
	Join477                  // 1.14: difficulty removed, view distance added
	Join573                  // 1.15: hashed seed, respawn-screen toggle
	Join735                  // 1.16: world list, dimension codec, named dimension
	Join751                  // 1.16.2: hardcore flag, NBT dimension, varint max players
	Join757                  // 1.18: simulation distance
	Join759                  // 1.19: registry codec, death location
	Join763                  // 1.20: portal cooldown
)

// PacketIDs are the clientbound play-state packet IDs the verification
// flow emits. IDs shift between versions; login/status-state IDs do not.
type PacketIDs struct {
	KeepAlive       int32
	JoinGame        int32
	ChatMessage     int32
	SystemChat      int32
	PluginMessage   int32
	Disconnect      int32
	BossBar         int32
	GameStateChange int32
	EntityRelMove   int32
	EntityDestroy   int32
	SpawnPosition   int32
	TimeUpdate      int32
}

// Capabilities is the resolved feature set for one protocol version.
type Capabilities struct {
	// Protocol is the table entry the version resolved to; for unknown
	// in-window versions this is the nearest lower known release.
	Protocol int32
	// Name is the human-readable release name of the table entry.
	Name string

	// SystemChat: announcements use the system-chat packet instead of
	// the legacy chat packet (1.19+).
	SystemChat bool
	// SystemChatOverlayBool: the system-chat packet tail is an overlay
	// boolean rather than a chat-type index (1.19.3+).
	SystemChatOverlayBool bool
	// ChatSenderUUID: the legacy chat packet carries a sender UUID
	// (1.16 through 1.18.2).
	ChatSenderUUID bool
	// NBTChatComponents: components travel as NBT instead of JSON
	// (1.20.3+; always false inside the supported window).
	NBTChatComponents bool
	// ModernBrandChannel: plugin channel is minecraft:brand rather
	// than MC|Brand (1.13+, introduced during the 1.13 snapshots).
	ModernBrandChannel bool
	// ModernPosition: block positions pack as x/z/y, not x/y/z (1.14+).
	ModernPosition bool
	// SpawnAngle: the spawn position packet gained an angle float (1.17+).
	SpawnAngle bool
	// SingleEntityDestroy: 1.17 briefly replaced the destroy-entities
	// list with a single-entity variant.
	SingleEntityDestroy bool
	// KeepAliveLong: keep-alive payload is a long rather than a varint
	// (1.12.2+).
	KeepAliveLong bool

	Dimension DimensionKind
	Join      JoinEpoch
	IDs       PacketIDs
}

// Resolve returns the capability set for a protocol version. Pure and
// total: out-of-window versions resolve to the nearest table boundary,
// unknown in-window versions degrade to the nearest lower known
// release.
func Resolve(protocol int32) Capabilities {
	// Index of the last entry with version <= protocol.
	i := sort.Search(len(versions), func(i int) bool {
		return versions[i].protocol > protocol
	}) - 1
	if i < 0 {
		i = 0
	}
	e := versions[i]

	caps := Capabilities{
		Protocol:              e.protocol,
		Name:                  e.name,
		SystemChat:            e.protocol >= 759,
		SystemChatOverlayBool: e.protocol >= 761,
		ChatSenderUUID:        e.protocol >= 735 && e.protocol <= 758,
		NBTChatComponents:     e.protocol >= 765,
		ModernBrandChannel:    e.protocol >= 386,
		ModernPosition:        e.protocol >= 477,
		SpawnAngle:            e.protocol >= 755,
		SingleEntityDestroy:   e.protocol == 755,
		KeepAliveLong:         e.protocol >= 340,
		Dimension:             e.dimension,
		Join:                  e.join,
		IDs:                   e.ids,
	}
	return caps
}

// Name returns the release name for a protocol version, or "" when the
// version is outside the known table.
func Name(protocol int32) string {
	for _, e := range versions {
		if e.protocol == protocol {
			return e.name
		}
	}
	return ""
}
