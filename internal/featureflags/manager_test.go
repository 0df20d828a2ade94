package featureflags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, "10.0.0.1"), name)
	}
	for _, name := range []string{"b", "d", "f", "missing"} {
		assert.False(t, m.Enabled(name, "10.0.0.1"), name)
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=abc%")

	assert.True(t, m.Enabled("always", ""))
	assert.False(t, m.Enabled("never", "10.0.0.1"))
	assert.False(t, m.Enabled("broken", "10.0.0.1"))

	first := m.Enabled("canary", "10.0.0.42")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", "10.0.0.42"), "rollout must be deterministic per visitor")
	}

	assert.False(t, m.Enabled("canary", "  "), "percentage rollout requires a subject")
}

func TestEnabled_PercentageSpreadsVisitors(t *testing.T) {
	m := NewManager("canary=50%")

	on := 0
	for i := 0; i < 200; i++ {
		if m.Enabled("canary", fmt.Sprintf("192.168.1.%d", i)) {
			on++
		}
	}
	assert.Greater(t, on, 0)
	assert.Less(t, on, 200)
}

func TestEnabled_NilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(PersistFavorites, "x"))
	assert.Empty(t, m.Snapshot("x"))
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, Y = 20% ,z=off,=on,w= ")

	assert.Equal(t, []string{"x", "y", "z"}, m.Names())

	snap := m.Snapshot("visitor")
	assert.Len(t, snap, 3)
	assert.True(t, snap["x"])
	assert.False(t, snap["z"])
}
