package firewall

import (
	"context"
	"fmt"

	"KiskaLE/GestureDrop-Firewall/internal/models"
	"KiskaLE/GestureDrop-Firewall/internal/utils"

	"github.com/hashicorp/go-multierror"
)

// RuleProvisioner makes the given rules exist with their current parameters.
type RuleProvisioner interface {
	Name() string
	Provision(ctx context.Context, rules []models.FirewallRule) (*Report, error)
}

// RuleManager is a provisioner that talks to the firewall directly and can
// also inspect and remove rules by name.
type RuleManager interface {
	RuleProvisioner
	Present(ctx context.Context, rule models.FirewallRule) (bool, error)
	Remove(ctx context.Context, rules []models.FirewallRule) error
}

type RuleResult struct {
	Rule  models.FirewallRule
	Added bool
	Err   error
}

type Report struct {
	Provisioner string
	Delegated   bool
	Results     []RuleResult
}

// Failed returns the number of rules that were not added.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Added {
			n++
		}
	}
	return n
}

// ruleBackend is the per-rule delete/add pair of a direct provisioner.
// deleteRule must return nil when the rule does not exist.
type ruleBackend interface {
	deleteRule(ctx context.Context, rule models.FirewallRule) error
	addRule(ctx context.Context, rule models.FirewallRule) error
}

// apply runs delete-then-add for every rule in order. A failed add does not
// stop the remaining rules; all add failures come back as one error.
func apply(ctx context.Context, name string, backend ruleBackend, rules []models.FirewallRule) (*Report, error) {
	report := &Report{Provisioner: name}
	var merr *multierror.Error

	for _, rule := range rules {
		result := RuleResult{Rule: rule}

		switch {
		case ctx.Err() != nil:
			result.Err = &RuleAddError{Rule: rule, Err: ctx.Err()}
		case rule.Validate() != nil:
			result.Err = &RuleAddError{Rule: rule, Err: rule.Validate()}
		default:
			if err := backend.deleteRule(ctx, rule); err != nil {
				utils.Warnf("failed to delete existing rule %s: %v", rule.Name, err)
			}
			if err := backend.addRule(ctx, rule); err != nil {
				result.Err = err
			} else {
				result.Added = true
				utils.Infof("rule %s added via %s", rule.Name, name)
			}
		}

		if result.Err != nil {
			utils.Errorf("%v", result.Err)
			merr = multierror.Append(merr, result.Err)
		}
		report.Results = append(report.Results, result)
	}

	if err := formatErrorOrNil(merr); err != nil {
		return report, fmt.Errorf("provisioning failed: %w", err)
	}
	return report, nil
}

// remove deletes every rule by name, collecting failures.
func remove(ctx context.Context, backend ruleBackend, rules []models.FirewallRule) error {
	var merr *multierror.Error
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := backend.deleteRule(ctx, rule); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("delete rule %s: %w", rule.Name, err))
			continue
		}
		utils.Infof("rule %s removed", rule.Name)
	}
	return formatErrorOrNil(merr)
}
