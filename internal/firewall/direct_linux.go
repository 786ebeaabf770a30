//go:build linux

package firewall

import (
	"fmt"

	"KiskaLE/GestureDrop-Firewall/internal/utils"

	"github.com/coreos/go-iptables/iptables"
)

// NewDirect returns the firewall backend of this platform. IPv6 rules are
// added when ip6tables is available.
func NewDirect(_ Runner) (RuleManager, error) {
	ipv4, err := iptables.NewWithProtocol(iptables.ProtocolIPv4)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize iptables: %w", err)
	}

	ipv6, err := iptables.NewWithProtocol(iptables.ProtocolIPv6)
	if err != nil {
		utils.Warnf("ip6tables unavailable, provisioning IPv4 only: %v", err)
		return newIptablesProvisioner(ipv4), nil
	}
	return newIptablesProvisioner(ipv4, ipv6), nil
}
