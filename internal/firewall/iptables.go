package firewall

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"KiskaLE/GestureDrop-Firewall/internal/models"
	"KiskaLE/GestureDrop-Firewall/internal/utils"

	"github.com/kballard/go-shellquote"
)

const iptablesTable = "filter"

// ipTables is the part of *iptables.IPTables used here.
type ipTables interface {
	List(table, chain string) ([]string, error)
	Append(table, chain string, rulespec ...string) error
	Delete(table, chain string, rulespec ...string) error
}

// IptablesProvisioner applies rules to the filter table of every address
// family it was given. Rules are named by an iptables comment; network
// profiles have no iptables equivalent.
type IptablesProvisioner struct {
	families []ipTables
}

func newIptablesProvisioner(families ...ipTables) *IptablesProvisioner {
	return &IptablesProvisioner{families: families}
}

func (p *IptablesProvisioner) Name() string {
	return "iptables"
}

func (p *IptablesProvisioner) Provision(ctx context.Context, rules []models.FirewallRule) (*Report, error) {
	utils.Debugf("iptables has no network profiles, ignoring profile scope")
	return apply(ctx, p.Name(), p, rules)
}

func (p *IptablesProvisioner) Remove(ctx context.Context, rules []models.FirewallRule) error {
	return remove(ctx, p, rules)
}

func (p *IptablesProvisioner) Present(_ context.Context, rule models.FirewallRule) (bool, error) {
	if err := rule.Validate(); err != nil {
		return false, err
	}
	for _, ipt := range p.families {
		specs, err := namedRules(ipt, rule)
		if err != nil {
			return false, err
		}
		if len(specs) == 0 {
			return false, nil
		}
	}
	return len(p.families) > 0, nil
}

func (p *IptablesProvisioner) deleteRule(_ context.Context, rule models.FirewallRule) error {
	chain := iptablesChain(rule)
	for _, ipt := range p.families {
		specs, err := namedRules(ipt, rule)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if err := ipt.Delete(iptablesTable, chain, spec...); err != nil {
				return fmt.Errorf("delete %s from %s: %w", rule.Name, chain, err)
			}
		}
	}
	return nil
}

func (p *IptablesProvisioner) addRule(_ context.Context, rule models.FirewallRule) error {
	for _, ipt := range p.families {
		if err := ipt.Append(iptablesTable, iptablesChain(rule), iptablesRuleSpec(rule)...); err != nil {
			return &RuleAddError{Rule: rule, Err: err}
		}
	}
	return nil
}

// namedRules returns the rulespecs of every rule in the rule's chain whose
// comment equals the rule name.
func namedRules(ipt ipTables, rule models.FirewallRule) ([][]string, error) {
	chain := iptablesChain(rule)
	lines, err := ipt.List(iptablesTable, chain)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", chain, err)
	}

	var specs [][]string
	for _, line := range lines {
		spec, ok, err := parseNamedRule(line, chain, rule.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

// parseNamedRule turns an "iptables -S" line into a rulespec if it is
// appended to chain and carries the comment name.
func parseNamedRule(line, chain, name string) ([]string, bool, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, false, fmt.Errorf("parse rule %q: %w", line, err)
	}
	if len(fields) < 2 || fields[0] != "-A" || fields[1] != chain {
		return nil, false, nil
	}

	spec := fields[2:]
	for i := 0; i < len(spec)-1; i++ {
		if spec[i] == "--comment" && spec[i+1] == name {
			return spec, true, nil
		}
	}
	return nil, false, nil
}

func iptablesChain(rule models.FirewallRule) string {
	if rule.Direction == models.DirectionOut {
		return "OUTPUT"
	}
	return "INPUT"
}

// iptablesRuleSpec matches the local port: destination port for inbound
// traffic, source port for outbound.
func iptablesRuleSpec(rule models.FirewallRule) []string {
	proto := strings.ToLower(string(rule.Protocol))
	portFlag := "--dport"
	if rule.Direction == models.DirectionOut {
		portFlag = "--sport"
	}
	return []string{
		"-p", proto,
		"-m", proto, portFlag, strconv.Itoa(rule.Port),
		"-m", "comment", "--comment", rule.Name,
		"-j", "ACCEPT",
	}
}
