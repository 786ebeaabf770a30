//go:build !windows && !linux

package firewall

import (
	"fmt"
	"runtime"
)

// NewDirect returns the firewall backend of this platform.
func NewDirect(_ Runner) (RuleManager, error) {
	return nil, fmt.Errorf("no supported firewall tool on %s", runtime.GOOS)
}
