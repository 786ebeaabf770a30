package firewall

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"KiskaLE/GestureDrop-Firewall/internal/models"
	"KiskaLE/GestureDrop-Firewall/internal/utils"
)

type ScriptFormat string

const (
	FormatPowerShell ScriptFormat = "ps1"
	FormatShell      ScriptFormat = "sh"
)

// Delegate describes how the provisioning script is run on this platform.
type Delegate struct {
	Interpreters []string
	Args         []string
	ScriptName   string
	Format       ScriptFormat
}

// ScriptProvisioner hands provisioning to an external script. The script
// carries its own copy of the rule table and takes no arguments.
type ScriptProvisioner struct {
	runner      Runner
	interpreter string
	args        []string
	path        string
	sha256      string
}

func NewScriptProvisioner(runner Runner, interpreter string, args []string, path string, sha256 string) *ScriptProvisioner {
	return &ScriptProvisioner{
		runner:      runner,
		interpreter: interpreter,
		args:        args,
		path:        path,
		sha256:      sha256,
	}
}

func (p *ScriptProvisioner) Name() string {
	return "script " + filepath.Base(p.path)
}

func (p *ScriptProvisioner) Provision(ctx context.Context, rules []models.FirewallRule) (*Report, error) {
	if p.sha256 != "" {
		fileHash, err := utils.CalculateFileHash(p.path)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(fileHash, p.sha256) {
			return nil, fmt.Errorf("%w: expected %s, got %s", ErrScriptHashMismatch, p.sha256, fileHash)
		}
		utils.Info("Delegated script hash verified successfully")
	}

	args := append(append([]string{}, p.args...), p.path)
	utils.Infof("running %s %s", p.interpreter, strings.Join(args, " "))
	output, err := p.runner.Run(ctx, p.interpreter, args...)
	utils.Debugf("script output: %s", strings.TrimSpace(string(output)))

	var scriptErr error
	if err != nil {
		scriptErr = &ScriptError{Path: p.path, Output: string(output), Err: err}
	}

	report := &Report{Provisioner: p.Name(), Delegated: true}
	for _, rule := range rules {
		report.Results = append(report.Results, RuleResult{Rule: rule, Added: scriptErr == nil, Err: scriptErr})
	}

	if scriptErr != nil {
		utils.Errorf("%v", scriptErr)
		return report, fmt.Errorf("provisioning failed: %w", scriptErr)
	}
	return report, nil
}
