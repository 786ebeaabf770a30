package firewall

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"KiskaLE/GestureDrop-Firewall/internal/models"
)

const netshNoMatch = "No rules match"

// NetshProvisioner applies rules with netsh advfirewall.
type NetshProvisioner struct {
	runner    Runner
	preflight func(ctx context.Context) error
}

func NewNetshProvisioner(runner Runner) *NetshProvisioner {
	return &NetshProvisioner{runner: runner}
}

func (p *NetshProvisioner) Name() string {
	return "netsh"
}

func (p *NetshProvisioner) Provision(ctx context.Context, rules []models.FirewallRule) (*Report, error) {
	if err := p.checkService(ctx); err != nil {
		return nil, err
	}
	return apply(ctx, p.Name(), p, rules)
}

func (p *NetshProvisioner) Remove(ctx context.Context, rules []models.FirewallRule) error {
	if err := p.checkService(ctx); err != nil {
		return err
	}
	return remove(ctx, p, rules)
}

func (p *NetshProvisioner) Present(ctx context.Context, rule models.FirewallRule) (bool, error) {
	if err := rule.Validate(); err != nil {
		return false, err
	}
	output, err := p.runner.Run(ctx, "netsh", netshArgs("show", "name="+rule.Name)...)
	if strings.Contains(string(output), netshNoMatch) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("show rule %s: %w: %s", rule.Name, err, strings.TrimSpace(string(output)))
	}
	return true, nil
}

func (p *NetshProvisioner) checkService(ctx context.Context) error {
	if p.preflight == nil {
		return nil
	}
	return p.preflight(ctx)
}

func (p *NetshProvisioner) deleteRule(ctx context.Context, rule models.FirewallRule) error {
	output, err := p.runner.Run(ctx, "netsh", netshArgs("delete", "name="+rule.Name)...)
	if err == nil || strings.Contains(string(output), netshNoMatch) {
		return nil
	}
	return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
}

func (p *NetshProvisioner) addRule(ctx context.Context, rule models.FirewallRule) error {
	output, err := p.runner.Run(ctx, "netsh", netshAddArgs(rule)...)
	if err != nil {
		return &RuleAddError{Rule: rule, Output: string(output), Err: err}
	}
	return nil
}

func netshArgs(verb string, params ...string) []string {
	return append([]string{"advfirewall", "firewall", verb, "rule"}, params...)
}

func netshAddArgs(rule models.FirewallRule) []string {
	enable := "no"
	if rule.Enabled {
		enable = "yes"
	}
	return netshArgs("add",
		"name="+rule.Name,
		"dir="+string(rule.Direction),
		"action="+string(rule.Action),
		"protocol="+string(rule.Protocol),
		"localport="+strconv.Itoa(rule.Port),
		"profile="+rule.ProfileList(),
		"enable="+enable,
	)
}
