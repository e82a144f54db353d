package verify

import (
	"github.com/daidr/mcverify-go/internal/nbt"
)

// The holding world is a bare overworld. Clients validate the registry
// data sent in the join packet, and the required fields shifted with
// almost every release, so everything here is gated on the resolved
// table protocol.

const overworldID = "minecraft:overworld"

// dimensionAttributes returns the dimension-type fields shared by every
// codec shape from 1.16.2 on.
func dimensionAttributes(protocol int32) nbt.Compound {
	infiniburn := "minecraft:infiniburn_overworld"
	if protocol >= 758 {
		// 1.18.2 turned the field into a tag reference.
		infiniburn = "#minecraft:infiniburn_overworld"
	}

	attrs := nbt.Compound{
		"piglin_safe":          int8(0),
		"natural":              int8(1),
		"ambient_light":        float32(0),
		"infiniburn":           infiniburn,
		"respawn_anchor_works": int8(0),
		"has_skylight":         int8(1),
		"bed_works":            int8(1),
		"effects":              overworldID,
		"has_raids":            int8(1),
		"logical_height":       int32(256),
		"coordinate_scale":     float64(1.0),
		"ultrawarm":            int8(0),
		"has_ceiling":          int8(0),
	}
	if protocol >= 755 {
		attrs["min_y"] = int32(0)
		attrs["height"] = int32(256)
	}
	if protocol >= 759 {
		attrs["monster_spawn_light_level"] = int32(0)
		attrs["monster_spawn_block_light_limit"] = int32(0)
	}
	return attrs
}

// biomeElement returns the single registered biome, a plains stand-in.
func biomeElement(protocol int32) nbt.Compound {
	biome := nbt.Compound{
		"temperature": float32(0.5),
		"downfall":    float32(0.5),
		"effects": nbt.Compound{
			"fog_color":       int32(12638463),
			"sky_color":       int32(7907327),
			"water_color":     int32(4159204),
			"water_fog_color": int32(329011),
		},
	}
	if protocol >= 762 {
		// 1.19.4 replaced the precipitation enum with a boolean.
		biome["has_precipitation"] = int8(1)
	} else {
		biome["precipitation"] = "rain"
	}
	if protocol < 759 {
		biome["category"] = "plains"
	}
	if protocol < 757 {
		// Pre-1.18 clients require terrain shape fields.
		biome["depth"] = float32(0.125)
		biome["scale"] = float32(0.05)
	}
	return biome
}

// chatTypeDecoration is the 1.19+ decoration compound.
func chatTypeDecoration(key string) nbt.Compound {
	return nbt.Compound{
		"translation_key": key,
		"parameters": nbt.List{
			ElementType: nbt.TagString,
			Items:       []any{"sender", "content"},
		},
		"style": nbt.Compound{},
	}
}

// chatTypeElement builds one chat-type registry element. The wrapper
// shape changed between 1.19 and 1.19.1.
func chatTypeElement(protocol int32) nbt.Compound {
	chat := chatTypeDecoration("chat.type.text")
	narration := chatTypeDecoration("chat.type.text.narrate")
	if protocol == 759 {
		return nbt.Compound{
			"chat": nbt.Compound{"decoration": chat},
			"narration": nbt.Compound{
				"decoration": narration,
				"priority":   "chat",
			},
		}
	}
	return nbt.Compound{
		"chat":      chat,
		"narration": narration,
	}
}

func registryEntry(name string, id int32, element nbt.Compound) nbt.Compound {
	return nbt.Compound{
		"name":    name,
		"id":      id,
		"element": element,
	}
}

func registryList(typeName string, entries ...any) nbt.Compound {
	return nbt.Compound{
		"type": typeName,
		"value": nbt.List{
			ElementType: nbt.TagCompound,
			Items:       entries,
		},
	}
}

// registryCodec builds the registry compound embedded in the join
// packet for 1.16.2 and later.
func registryCodec(protocol int32) nbt.Compound {
	codec := nbt.Compound{
		"minecraft:dimension_type": registryList(
			"minecraft:dimension_type",
			registryEntry(overworldID, 0, dimensionAttributes(protocol)),
		),
		"minecraft:worldgen/biome": registryList(
			"minecraft:worldgen/biome",
			registryEntry("minecraft:plains", 0, biomeElement(protocol)),
		),
	}
	if protocol >= 759 {
		codec["minecraft:chat_type"] = registryList(
			"minecraft:chat_type",
			registryEntry("minecraft:chat", 0, chatTypeElement(protocol)),
			registryEntry("minecraft:system", 1, chatTypeElement(protocol)),
		)
	}
	return codec
}

// dimensionCodec735 is the 1.16/1.16.1 codec: a flat dimension list
// with the attributes inline, no biome registry.
func dimensionCodec735() nbt.Compound {
	attrs := nbt.Compound{
		"name":                 overworldID,
		"natural":              int8(1),
		"ambient_light":        float32(0),
		"has_ceiling":          int8(0),
		"has_skylight":         int8(1),
		"shrunk":               int8(0),
		"ultrawarm":            int8(0),
		"has_raids":            int8(1),
		"respawn_anchor_works": int8(0),
		"bed_works":            int8(1),
		"piglin_safe":          int8(0),
		"logical_height":       int32(256),
		"infiniburn":           "minecraft:infiniburn_overworld",
	}
	return nbt.Compound{
		"dimension": nbt.List{
			ElementType: nbt.TagCompound,
			Items:       []any{attrs},
		},
	}
}

func mustMarshalNBT(c nbt.Compound) []byte {
	data, err := nbt.Marshal(c)
	if err != nil {
		// Registry compounds are built from literals above; a marshal
		// failure is a programming error.
		panic(err)
	}
	return data
}
