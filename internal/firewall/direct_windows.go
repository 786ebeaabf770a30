//go:build windows

package firewall

import (
	"context"
	"fmt"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// NewDirect returns the firewall backend of this platform.
func NewDirect(runner Runner) (RuleManager, error) {
	p := NewNetshProvisioner(runner)
	p.preflight = firewallServiceRunning
	return p, nil
}

// firewallServiceRunning fails when the Windows Firewall service is stopped,
// in which case every netsh add would fail the same way.
func firewallServiceRunning(_ context.Context) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(consts.FirewallService)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFirewallServiceUnavailable, consts.FirewallService, err)
	}
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", consts.FirewallService, err)
	}
	if status.State != svc.Running {
		return fmt.Errorf("%w: %s is not running", ErrFirewallServiceUnavailable, consts.FirewallService)
	}
	return nil
}
