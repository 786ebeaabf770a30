package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesTable(t *testing.T) {
	rules := Rules()
	require.Len(t, rules, 6)

	expected := []struct {
		name  string
		dir   Direction
		proto Protocol
		port  int
	}{
		{"GestureDrop-UDP-Discovery-IN", DirectionIn, ProtocolUDP, 5000},
		{"GestureDrop-UDP-Reply-IN", DirectionIn, ProtocolUDP, 5002},
		{"GestureDrop-TCP-Transfer-IN", DirectionIn, ProtocolTCP, 5001},
		{"GestureDrop-UDP-Discovery-OUT", DirectionOut, ProtocolUDP, 5000},
		{"GestureDrop-UDP-Reply-OUT", DirectionOut, ProtocolUDP, 5002},
		{"GestureDrop-TCP-Transfer-OUT", DirectionOut, ProtocolTCP, 5001},
	}

	for i, want := range expected {
		got := rules[i]
		assert.Equal(t, want.name, got.Name)
		assert.Equal(t, want.dir, got.Direction)
		assert.Equal(t, want.proto, got.Protocol)
		assert.Equal(t, want.port, got.Port)
		assert.Equal(t, "private,domain", got.ProfileList())
		assert.Equal(t, ActionAllow, got.Action)
		assert.True(t, got.Enabled)
		assert.NotEmpty(t, got.Description)
		assert.NoError(t, got.Validate())
	}
}

func TestRulesUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	triples := map[string]bool{}
	for _, r := range Rules() {
		assert.False(t, seen[r.Name], "duplicate name %s", r.Name)
		seen[r.Name] = true

		key := fmt.Sprintf("%s/%s/%d", r.Direction, r.Protocol, r.Port)
		assert.False(t, triples[key], "duplicate triple for %s", r.Name)
		triples[key] = true
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	first := Rules()
	first[0].Profiles[0] = ProfilePublic
	first[1].Name = "changed"

	second := Rules()
	assert.Equal(t, "private,domain", second[0].ProfileList())
	assert.Equal(t, "GestureDrop-UDP-Reply-IN", second[1].Name)
}

func TestValidateAcceptsSpaces(t *testing.T) {
	r := Rules()[0]
	r.Name = "GestureDrop Discovery In"
	assert.NoError(t, r.Validate())
}

func TestValidateRejects(t *testing.T) {
	base := Rules()[0]

	cases := map[string]func(r *FirewallRule){
		"injection in name": func(r *FirewallRule) { r.Name = "x\" & calc.exe" },
		"empty name":        func(r *FirewallRule) { r.Name = "" },
		"newline in name":   func(r *FirewallRule) { r.Name = "GestureDrop\nreboot" },
		"tab in name":       func(r *FirewallRule) { r.Name = "GestureDrop\tTest" },
		"bad direction":     func(r *FirewallRule) { r.Direction = "sideways" },
		"bad protocol":      func(r *FirewallRule) { r.Protocol = "ICMP" },
		"port zero":         func(r *FirewallRule) { r.Port = 0 },
		"port too high":     func(r *FirewallRule) { r.Port = 70000 },
		"no profiles":       func(r *FirewallRule) { r.Profiles = nil },
		"bad profile":       func(r *FirewallRule) { r.Profiles = []Profile{"cafe"} },
		"block action":      func(r *FirewallRule) { r.Action = "block" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := base
			r.Profiles = append([]Profile(nil), base.Profiles...)
			mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestLabel(t *testing.T) {
	rules := Rules()
	assert.Equal(t, "UDP IN ", rules[0].Label())
	assert.Equal(t, "TCP OUT", rules[5].Label())
}
