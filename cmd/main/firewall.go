package main

import (
	"os"
	"path/filepath"

	"KiskaLE/GestureDrop-Firewall/internal/elevation"
	"KiskaLE/GestureDrop-Firewall/internal/firewall"
	"KiskaLE/GestureDrop-Firewall/internal/utils"
)

// Platform hooks, replaced in tests.
var (
	elevator     = elevation.System()
	newDirect    = firewall.NewDirect
	newConfirmer = func(yes bool) elevation.Confirmer {
		if yes {
			return elevation.AssumeYes
		}
		return elevation.TerminalConfirmer(os.Stdin)
	}
)

func (opts *options) runner() firewall.Runner {
	return firewall.ExecRunner{Timeout: opts.cfg.Timeout}
}

func (opts *options) scriptPath(d firewall.Delegate) string {
	if opts.cfg.ScriptPath != "" {
		return opts.cfg.ScriptPath
	}
	dir, err := utils.ExecutableDir()
	if err != nil {
		utils.Warnf("cannot locate the provisioning script: %v", err)
		return ""
	}
	return filepath.Join(dir, d.ScriptName)
}

// provisioner picks the delegated script or the direct firewall tool.
func (opts *options) provisioner() (firewall.RuleProvisioner, error) {
	d := firewall.DefaultDelegate()
	sel := firewall.Selection{
		Mode:         opts.cfg.Delegate,
		ScriptPath:   opts.scriptPath(d),
		ScriptSHA256: opts.cfg.ScriptSHA256,
		Delegate:     d,
	}
	p, err := firewall.Select(sel, opts.runner(), newDirect)
	if err != nil {
		return nil, err
	}
	utils.Infof("provisioning through %s", p.Name())
	return p, nil
}

func (opts *options) manager() (firewall.RuleManager, error) {
	return newDirect(opts.runner())
}
