package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyDuration(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{5 * time.Minute, "5m 0s"},
		{4*time.Minute + 59*time.Second, "4m 59s"},
		{61 * time.Second, "1m 1s"},
		{60 * time.Second, "60s"},
		{45 * time.Second, "45s"},
		{time.Second, "1s"},
		{0, "0s"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, friendlyDuration(tc.remaining), "remaining %s", tc.remaining)
	}
}

func TestCountdownCaptionTiers(t *testing.T) {
	cases := []struct {
		name     string
		progress float32
		want     string
	}{
		{"green above 70%", 0.8, "§a§l4m 0s§r"},
		{"green at boundary", 0.7, "§a§l4m 0s§r"},
		{"yellow midway", 0.5, "§e§l4m 0s§r"},
		{"yellow at boundary", 0.3, "§e§l4m 0s§r"},
		{"red below 30%", 0.2, "§c§l4m 0s§r"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := string(msgCountdown(4*time.Minute, tc.progress).JSON())
			assert.Contains(t, body, tc.want)
		})
	}
}

func TestCountdownCaptionSubMinute(t *testing.T) {
	body := string(msgCountdown(45*time.Second, 0.15).JSON())
	assert.Contains(t, body, "§c§l45s§r", "bare seconds under a minute, danger tier")

	body = string(msgCountdown(-time.Second, 0).JSON())
	assert.Contains(t, body, "§c§l0s§r", "negative remainders clamp to zero")
}
