package firewall

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"KiskaLE/GestureDrop-Firewall/internal/utils"
)

type DelegateMode string

const (
	DelegateAuto   DelegateMode = "auto"
	DelegateAlways DelegateMode = "always"
	DelegateNever  DelegateMode = "never"
)

func ParseDelegateMode(s string) (DelegateMode, error) {
	switch mode := DelegateMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case DelegateAuto, DelegateAlways, DelegateNever:
		return mode, nil
	case "":
		return DelegateAuto, nil
	default:
		return "", fmt.Errorf("invalid delegate mode %q: must be auto, always or never", s)
	}
}

// Selection holds what is needed to pick a provisioner at startup.
type Selection struct {
	Mode         DelegateMode
	ScriptPath   string
	ScriptSHA256 string
	Delegate     Delegate

	LookPath func(file string) (string, error)
	Stat     func(name string) (fs.FileInfo, error)
}

// Select prefers the delegated script when an interpreter and the script are
// both present, and otherwise returns the direct firewall backend.
func Select(sel Selection, runner Runner, direct func(Runner) (RuleManager, error)) (RuleProvisioner, error) {
	if sel.Mode != DelegateNever {
		p, err := sel.delegated(runner)
		if err == nil {
			return p, nil
		}
		if sel.Mode == DelegateAlways {
			return nil, err
		}
		utils.Debugf("using direct firewall tool: %v", err)
	}
	return direct(runner)
}

func (sel Selection) delegated(runner Runner) (*ScriptProvisioner, error) {
	lookPath := sel.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	stat := sel.Stat
	if stat == nil {
		stat = os.Stat
	}

	if sel.ScriptPath == "" {
		return nil, fmt.Errorf("%w: no script path", ErrDelegationUnavailable)
	}
	if _, err := stat(sel.ScriptPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelegationUnavailable, err)
	}

	for _, name := range sel.Delegate.Interpreters {
		path, err := lookPath(name)
		if err != nil {
			continue
		}
		return NewScriptProvisioner(runner, path, sel.Delegate.Args, sel.ScriptPath, sel.ScriptSHA256), nil
	}
	return nil, fmt.Errorf("%w: no interpreter found (%s)", ErrDelegationUnavailable, strings.Join(sel.Delegate.Interpreters, ", "))
}
