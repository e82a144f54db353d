package verify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSampler(t *testing.T) {
	s := newStatsSampler(time.Hour)

	assert.Nil(t, s.sample(), "no snapshot before Start")

	s.Start()
	defer s.Stop()

	lines := s.sample()
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0].Name, "Server stats")
	assert.Contains(t, lines[1].Name, "Heap:")
	assert.Contains(t, lines[4].Name, "Uptime:")
	for _, line := range lines {
		assert.Equal(t, uuid.Nil.String(), line.ID)
	}
}

func TestStatsSamplerStopUnblocks(t *testing.T) {
	s := newStatsSampler(time.Millisecond)
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
