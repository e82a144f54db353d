package mcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Ranges(t *testing.T) {
	tests := []struct {
		protocol int32
		want     Support
	}{
		{0, TooOld},
		{47, TooOld},  // 1.8.x
		{106, TooOld}, // just below the window
		{107, Supported},
		{340, Supported},
		{763, Supported},
		{764, TooNewRelease}, // 1.20.2
		{999_999, TooNewRelease},
		{1_000_000, TooNewSnapshot},
		{1_073_741_956, TooNewSnapshot}, // snapshot numbering
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.protocol), "protocol=%d", tt.protocol)
	}
}

func TestResolve_Pure(t *testing.T) {
	for _, v := range []int32{107, 340, 500, 735, 763} {
		require.Equal(t, Resolve(v), Resolve(v), "protocol=%d", v)
	}
}

func TestResolve_DegradesToNearestLowerKnown(t *testing.T) {
	// 1.13.2 is 404; there is no dedicated entry, so it degrades to 1.13.
	caps := Resolve(404)
	assert.Equal(t, int32(393), caps.Protocol)
	assert.Equal(t, "1.13", caps.Name)

	// Snapshot-era numbers between releases degrade to the prior release.
	caps = Resolve(450)
	assert.Equal(t, int32(393), caps.Protocol)
}

func TestResolve_ChatCapabilities(t *testing.T) {
	legacy := Resolve(340)
	assert.False(t, legacy.SystemChat)
	assert.False(t, legacy.ChatSenderUUID)

	withSender := Resolve(758)
	assert.False(t, withSender.SystemChat)
	assert.True(t, withSender.ChatSenderUUID)

	system := Resolve(759)
	assert.True(t, system.SystemChat)
	assert.False(t, system.SystemChatOverlayBool)

	overlay := Resolve(763)
	assert.True(t, overlay.SystemChat)
	assert.True(t, overlay.SystemChatOverlayBool)

	// NBT components only exist past the window.
	assert.False(t, overlay.NBTChatComponents)
}

func TestResolve_DimensionEncodingEras(t *testing.T) {
	assert.Equal(t, DimensionInt8, Resolve(107).Dimension)
	assert.Equal(t, DimensionInt32, Resolve(108).Dimension)
	assert.Equal(t, DimensionInt32, Resolve(578).Dimension)
	assert.Equal(t, DimensionName, Resolve(736).Dimension)
	assert.Equal(t, DimensionNBT, Resolve(754).Dimension)
	assert.Equal(t, DimensionNBT, Resolve(758).Dimension)
	assert.Equal(t, DimensionName, Resolve(763).Dimension)
}

func TestResolve_BrandChannel(t *testing.T) {
	assert.False(t, Resolve(340).ModernBrandChannel)
	assert.True(t, Resolve(393).ModernBrandChannel)
}

func TestResolve_TotalOutsideWindow(t *testing.T) {
	// Below every known entry: clamps to the first.
	below := Resolve(4)
	assert.Equal(t, int32(107), below.Protocol)

	// Far above: clamps to the newest entry.
	above := Resolve(2_000_000)
	assert.Equal(t, int32(763), above.Protocol)
}

func TestName(t *testing.T) {
	assert.Equal(t, "1.12.2", Name(340))
	assert.Equal(t, "1.20.1", Name(763))
	assert.Equal(t, "", Name(341))
}
