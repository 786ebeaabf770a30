package firewall

import (
	"bytes"
	"strings"
	"testing"

	"KiskaLE/GestureDrop-Firewall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScriptFormat(t *testing.T) {
	f, err := ParseScriptFormat("ps1")
	require.NoError(t, err)
	assert.Equal(t, FormatPowerShell, f)

	f, err = ParseScriptFormat(".SH")
	require.NoError(t, err)
	assert.Equal(t, FormatShell, f)

	_, err = ParseScriptFormat("bat")
	assert.Error(t, err)
}

func TestRenderPowerShellMatchesNetsh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderScript(&buf, FormatPowerShell, models.Rules()))
	script := buf.String()

	assert.NotContains(t, script, "{{")
	assert.NotContains(t, script, "{%")
	assert.True(t, strings.HasPrefix(script, "# GestureDrop firewall rules"))

	for _, rule := range models.Rules() {
		args := netshAddArgs(rule)
		for i, arg := range args {
			// quoted so PowerShell passes each value as one argument
			if k, v, ok := strings.Cut(arg, "="); ok && (k == "name" || k == "profile") {
				args[i] = k + `="` + v + `"`
			}
		}
		addLine := "netsh " + strings.Join(args, " ")
		assert.Contains(t, script, addLine)

		deleteLine := `netsh advfirewall firewall delete rule name="` + rule.Name + `"`
		assert.Contains(t, script, deleteLine)
		assert.Less(t, strings.Index(script, deleteLine), strings.Index(script, addLine), rule.Name)
	}
	assert.Contains(t, script, "if ($failed -gt 0) { exit 1 }")
}

// A bare comma splits a PowerShell argument into an array, so no netsh
// argument may carry one outside quotes.
func TestRenderPowerShellQuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderScript(&buf, FormatPowerShell, models.Rules()))

	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.HasPrefix(line, "netsh ") {
			continue
		}
		inQuotes := false
		for _, c := range line {
			switch {
			case c == '"':
				inQuotes = !inQuotes
			case c == ',' && !inQuotes:
				t.Errorf("unquoted comma in %q", line)
			}
		}
	}
	assert.Contains(t, buf.String(), `profile="private,domain"`)
	assert.NotContains(t, buf.String(), "profile=private,domain")
}

func TestRenderShellMatchesIptables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderScript(&buf, FormatShell, models.Rules()))
	script := buf.String()

	assert.True(t, strings.HasPrefix(script, "#!/bin/sh"))
	assert.NotContains(t, script, "&quot;")
	assert.Contains(t, script, `tools="iptables ip6tables"`)

	for _, rule := range models.Rules() {
		chain := iptablesChain(rule)
		addLine := `"$ipt" -A ` + chain + " " + strings.Join(iptablesRuleSpec(rule), " ")
		deleteLine := `delete_rule "$ipt" ` + chain + " " + rule.Name

		assert.Contains(t, script, addLine)
		assert.Contains(t, script, deleteLine)
		assert.Less(t, strings.Index(script, deleteLine), strings.Index(script, addLine), rule.Name)
	}
}

func TestRenderShellQuotesNames(t *testing.T) {
	rules := models.Rules()[:1]
	rules[0].Name = "GestureDrop Discovery In"

	var buf bytes.Buffer
	require.NoError(t, RenderScript(&buf, FormatShell, rules))
	script := buf.String()

	assert.Contains(t, script, `delete_rule "$ipt" INPUT 'GestureDrop Discovery In'`)
	assert.Contains(t, script, `--comment 'GestureDrop Discovery In' -j ACCEPT`)
}

func TestRenderRejectsInvalidRules(t *testing.T) {
	rules := models.Rules()
	rules[0].Protocol = "ICMP"

	var buf bytes.Buffer
	assert.Error(t, RenderScript(&buf, FormatPowerShell, rules))

	rules = models.Rules()
	rules[0].Name = "GestureDrop\nreboot"
	assert.Error(t, RenderScript(&buf, FormatShell, rules))
	assert.Error(t, RenderScript(&buf, ScriptFormat("bat"), models.Rules()))
}
