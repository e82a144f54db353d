package mcdata

// versionEntry describes one known release. The slice is ordered by
// protocol number; Resolve picks the nearest lower entry, so a new
// release only needs a new row when a shape or ID actually changed.
type versionEntry struct {
	protocol  int32
	name      string
	dimension DimensionKind
	join      JoinEpoch
	ids       PacketIDs
}

var versions = []versionEntry{
	{
		protocol: 107, name: "1.9", dimension: DimensionInt8, join: Join107,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x25,
			EntityDestroy: 0x30, SpawnPosition: 0x43, TimeUpdate: 0x44,
		},
	},
	{
		protocol: 108, name: "1.9.1", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x25,
			EntityDestroy: 0x30, SpawnPosition: 0x43, TimeUpdate: 0x44,
		},
	},
	{
		protocol: 110, name: "1.9.4", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x25,
			EntityDestroy: 0x30, SpawnPosition: 0x43, TimeUpdate: 0x44,
		},
	},
	{
		protocol: 210, name: "1.10", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x25,
			EntityDestroy: 0x30, SpawnPosition: 0x43, TimeUpdate: 0x44,
		},
	},
	{
		protocol: 315, name: "1.11", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x25,
			EntityDestroy: 0x30, SpawnPosition: 0x43, TimeUpdate: 0x44,
		},
	},
	{
		protocol: 335, name: "1.12", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x26,
			EntityDestroy: 0x31, SpawnPosition: 0x45, TimeUpdate: 0x46,
		},
	},
	{
		protocol: 338, name: "1.12.1", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x26,
			EntityDestroy: 0x32, SpawnPosition: 0x46, TimeUpdate: 0x47,
		},
	},
	{
		protocol: 340, name: "1.12.2", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x23, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x26,
			EntityDestroy: 0x32, SpawnPosition: 0x46, TimeUpdate: 0x47,
		},
	},
	{
		protocol: 393, name: "1.13", dimension: DimensionInt32, join: Join108,
		ids: PacketIDs{
			KeepAlive: 0x21, JoinGame: 0x25, ChatMessage: 0x0E, PluginMessage: 0x19,
			Disconnect: 0x1B, BossBar: 0x0C, GameStateChange: 0x20, EntityRelMove: 0x28,
			EntityDestroy: 0x35, SpawnPosition: 0x49, TimeUpdate: 0x4A,
		},
	},
	{
		protocol: 477, name: "1.14", dimension: DimensionInt32, join: Join477,
		ids: PacketIDs{
			KeepAlive: 0x20, JoinGame: 0x25, ChatMessage: 0x0E, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1E, EntityRelMove: 0x28,
			EntityDestroy: 0x37, SpawnPosition: 0x4D, TimeUpdate: 0x4E,
		},
	},
	{
		protocol: 573, name: "1.15", dimension: DimensionInt32, join: Join573,
		ids: PacketIDs{
			KeepAlive: 0x21, JoinGame: 0x26, ChatMessage: 0x0F, PluginMessage: 0x19,
			Disconnect: 0x1B, BossBar: 0x0D, GameStateChange: 0x1F, EntityRelMove: 0x29,
			EntityDestroy: 0x38, SpawnPosition: 0x4E, TimeUpdate: 0x4F,
		},
	},
	{
		protocol: 735, name: "1.16", dimension: DimensionName, join: Join735,
		ids: PacketIDs{
			KeepAlive: 0x20, JoinGame: 0x25, ChatMessage: 0x0E, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0C, GameStateChange: 0x1D, EntityRelMove: 0x27,
			EntityDestroy: 0x36, SpawnPosition: 0x42, TimeUpdate: 0x4E,
		},
	},
	{
		protocol: 751, name: "1.16.2", dimension: DimensionNBT, join: Join751,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x24, ChatMessage: 0x0E, PluginMessage: 0x17,
			Disconnect: 0x19, BossBar: 0x0C, GameStateChange: 0x1D, EntityRelMove: 0x27,
			EntityDestroy: 0x36, SpawnPosition: 0x42, TimeUpdate: 0x4E,
		},
	},
	{
		protocol: 755, name: "1.17", dimension: DimensionNBT, join: Join751,
		ids: PacketIDs{
			KeepAlive: 0x21, JoinGame: 0x26, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0D, GameStateChange: 0x1E, EntityRelMove: 0x29,
			EntityDestroy: 0x3A, SpawnPosition: 0x4B, TimeUpdate: 0x58,
		},
	},
	{
		protocol: 756, name: "1.17.1", dimension: DimensionNBT, join: Join751,
		ids: PacketIDs{
			KeepAlive: 0x21, JoinGame: 0x26, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0D, GameStateChange: 0x1E, EntityRelMove: 0x29,
			EntityDestroy: 0x3A, SpawnPosition: 0x4B, TimeUpdate: 0x58,
		},
	},
	{
		protocol: 757, name: "1.18", dimension: DimensionNBT, join: Join757,
		ids: PacketIDs{
			KeepAlive: 0x21, JoinGame: 0x26, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0D, GameStateChange: 0x1E, EntityRelMove: 0x29,
			EntityDestroy: 0x3A, SpawnPosition: 0x4B, TimeUpdate: 0x59,
		},
	},
	{
		// Same layout and IDs as 1.18, but the dimension-type infiniburn
		// field became a tag reference with a '#' prefix.
		protocol: 758, name: "1.18.2", dimension: DimensionNBT, join: Join757,
		ids: PacketIDs{
			KeepAlive: 0x21, JoinGame: 0x26, ChatMessage: 0x0F, PluginMessage: 0x18,
			Disconnect: 0x1A, BossBar: 0x0D, GameStateChange: 0x1E, EntityRelMove: 0x29,
			EntityDestroy: 0x3A, SpawnPosition: 0x4B, TimeUpdate: 0x59,
		},
	},
	{
		protocol: 759, name: "1.19", dimension: DimensionName, join: Join759,
		ids: PacketIDs{
			KeepAlive: 0x1E, JoinGame: 0x23, SystemChat: 0x5F, PluginMessage: 0x15,
			Disconnect: 0x17, BossBar: 0x0A, GameStateChange: 0x1B, EntityRelMove: 0x26,
			EntityDestroy: 0x38, SpawnPosition: 0x4A, TimeUpdate: 0x59,
		},
	},
	{
		protocol: 760, name: "1.19.2", dimension: DimensionName, join: Join759,
		ids: PacketIDs{
			KeepAlive: 0x20, JoinGame: 0x25, SystemChat: 0x62, PluginMessage: 0x16,
			Disconnect: 0x19, BossBar: 0x0A, GameStateChange: 0x1D, EntityRelMove: 0x28,
			EntityDestroy: 0x3B, SpawnPosition: 0x4D, TimeUpdate: 0x5C,
		},
	},
	{
		protocol: 761, name: "1.19.3", dimension: DimensionName, join: Join759,
		ids: PacketIDs{
			KeepAlive: 0x1F, JoinGame: 0x24, SystemChat: 0x60, PluginMessage: 0x15,
			Disconnect: 0x17, BossBar: 0x0A, GameStateChange: 0x1C, EntityRelMove: 0x27,
			EntityDestroy: 0x3A, SpawnPosition: 0x4C, TimeUpdate: 0x5B,
		},
	},
	{
		protocol: 762, name: "1.19.4", dimension: DimensionName, join: Join759,
		ids: PacketIDs{
			KeepAlive: 0x23, JoinGame: 0x28, SystemChat: 0x64, PluginMessage: 0x17,
			Disconnect: 0x1A, BossBar: 0x0B, GameStateChange: 0x1F, EntityRelMove: 0x2B,
			EntityDestroy: 0x3E, SpawnPosition: 0x50, TimeUpdate: 0x5E,
		},
	},
	{
		protocol: 763, name: "1.20.1", dimension: DimensionName, join: Join763,
		ids: PacketIDs{
			KeepAlive: 0x23, JoinGame: 0x28, SystemChat: 0x64, PluginMessage: 0x17,
			Disconnect: 0x1A, BossBar: 0x0B, GameStateChange: 0x1F, EntityRelMove: 0x2B,
			EntityDestroy: 0x3E, SpawnPosition: 0x50, TimeUpdate: 0x5E,
		},
	},
}
