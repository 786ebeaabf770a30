package firewall

import (
	"errors"
	"fmt"
	"strings"

	"KiskaLE/GestureDrop-Firewall/internal/models"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrDelegationUnavailable means no interpreter or no script was found.
	// Only reported when delegation is required.
	ErrDelegationUnavailable = errors.New("delegated provisioning script is not available")
	// ErrScriptHashMismatch means the delegated script does not match the pinned hash.
	ErrScriptHashMismatch = errors.New("delegated script hash mismatch")
	// ErrFirewallServiceUnavailable means the OS firewall service is not running.
	ErrFirewallServiceUnavailable = errors.New("firewall service unavailable")
)

// RuleAddError is a rule the firewall tool refused to add.
type RuleAddError struct {
	Rule   models.FirewallRule
	Output string
	Err    error
}

func (e *RuleAddError) Error() string {
	msg := fmt.Sprintf("add rule %s: %v", e.Rule.Name, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *RuleAddError) Unwrap() error {
	return e.Err
}

// ScriptError is a failed run of the delegated script.
type ScriptError struct {
	Path   string
	Output string
	Err    error
}

func (e *ScriptError) Error() string {
	msg := fmt.Sprintf("delegated script %s: %v", e.Path, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

func formatErrors(es []error) string {
	if len(es) == 1 {
		return fmt.Sprintf("1 error occurred:\n\t* %s", es[0])
	}

	points := make([]string, len(es))
	for i, err := range es {
		points[i] = fmt.Sprintf("* %s", err)
	}

	return fmt.Sprintf(
		"%d errors occurred:\n\t%s",
		len(es), strings.Join(points, "\n\t"))
}

func formatErrorOrNil(err *multierror.Error) error {
	if err != nil {
		err.ErrorFormat = formatErrors
	}
	return err.ErrorOrNil()
}
