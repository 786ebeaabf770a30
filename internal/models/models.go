package models

import (
	"fmt"
	"regexp"
	"strings"
)

type Direction string
type Protocol string
type Profile string
type Action string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"

	ProtocolUDP Protocol = "UDP"
	ProtocolTCP Protocol = "TCP"

	ProfilePrivate Profile = "private"
	ProfileDomain  Profile = "domain"
	ProfilePublic  Profile = "public"

	ActionAllow Action = "allow"
)

// Ports used by GestureDrop.
const (
	DiscoveryPort = 5000
	TransferPort  = 5001
	ReplyPort     = 5002
)

var ruleNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

type FirewallRule struct {
	Name        string
	Direction   Direction
	Protocol    Protocol
	Port        int
	Profiles    []Profile
	Action      Action
	Enabled     bool
	Description string
}

// trustedProfiles keeps the rules off public networks.
var trustedProfiles = []Profile{ProfilePrivate, ProfileDomain}

// Rules returns the fixed GestureDrop rule table in the order it is applied.
// Every call returns a fresh copy.
func Rules() []FirewallRule {
	return []FirewallRule{
		newRule("GestureDrop-UDP-Discovery-IN", DirectionIn, ProtocolUDP, DiscoveryPort, "Receiver listens for sender broadcast"),
		newRule("GestureDrop-UDP-Reply-IN", DirectionIn, ProtocolUDP, ReplyPort, "Sender listens for receiver reply"),
		newRule("GestureDrop-TCP-Transfer-IN", DirectionIn, ProtocolTCP, TransferPort, "Image file transfer (TCP)"),
		newRule("GestureDrop-UDP-Discovery-OUT", DirectionOut, ProtocolUDP, DiscoveryPort, "Sender broadcasts discovery"),
		newRule("GestureDrop-UDP-Reply-OUT", DirectionOut, ProtocolUDP, ReplyPort, "Receiver sends reply to sender"),
		newRule("GestureDrop-TCP-Transfer-OUT", DirectionOut, ProtocolTCP, TransferPort, "Image file transfer outbound"),
	}
}

func newRule(name string, dir Direction, proto Protocol, port int, desc string) FirewallRule {
	profiles := make([]Profile, len(trustedProfiles))
	copy(profiles, trustedProfiles)

	return FirewallRule{
		Name:        name,
		Direction:   dir,
		Protocol:    proto,
		Port:        port,
		Profiles:    profiles,
		Action:      ActionAllow,
		Enabled:     true,
		Description: desc,
	}
}

// ProfileList returns the profiles in the comma separated form netsh expects.
func (r FirewallRule) ProfileList() string {
	parts := make([]string, len(r.Profiles))
	for i, p := range r.Profiles {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

// Validate checks every field that ends up on a command line.
func (r FirewallRule) Validate() error {
	if !ruleNamePattern.MatchString(r.Name) {
		return fmt.Errorf("invalid rule name %q: contains unsafe characters", r.Name)
	}
	if len(r.Name) > 255 {
		return fmt.Errorf("rule name too long")
	}

	switch r.Direction {
	case DirectionIn, DirectionOut:
	default:
		return fmt.Errorf("rule %s: invalid direction %q", r.Name, r.Direction)
	}

	switch r.Protocol {
	case ProtocolUDP, ProtocolTCP:
	default:
		return fmt.Errorf("rule %s: invalid protocol %q: must be TCP or UDP", r.Name, r.Protocol)
	}

	if r.Port < 1 || r.Port > 65535 {
		return fmt.Errorf("rule %s: invalid port %d", r.Name, r.Port)
	}

	if len(r.Profiles) == 0 {
		return fmt.Errorf("rule %s: no profiles", r.Name)
	}
	for _, p := range r.Profiles {
		switch p {
		case ProfilePrivate, ProfileDomain, ProfilePublic:
		default:
			return fmt.Errorf("rule %s: invalid profile %q", r.Name, p)
		}
	}

	if r.Action != ActionAllow {
		return fmt.Errorf("rule %s: unsupported action %q", r.Name, r.Action)
	}
	return nil
}

// Label is the short "UDP IN " style prefix used in reports.
func (r FirewallRule) Label() string {
	dir := "IN "
	if r.Direction == DirectionOut {
		dir = "OUT"
	}
	return fmt.Sprintf("%s %s", r.Protocol, dir)
}
