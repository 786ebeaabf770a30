package firewall

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"
	"KiskaLE/GestureDrop-Firewall/internal/models"

	"github.com/flosch/pongo2/v6"
	"github.com/kballard/go-shellquote"
)

const powershellTemplate = `# {{ app }} firewall rules, generated by {{ binary }} {{ version }}.
# Deletes and re-adds every rule so it is safe to run repeatedly.
$failed = 0
{% for rule in rules %}
netsh advfirewall firewall delete rule name="{{ rule.Name }}" | Out-Null
netsh advfirewall firewall add rule name="{{ rule.Name }}" dir={{ rule.Direction }} action={{ rule.Action }} protocol={{ rule.Protocol }} localport={{ rule.Port }} profile="{{ rule.Profiles }}" enable={{ rule.Enable }} | Out-Null
if ($LASTEXITCODE -eq 0) {
    Write-Host "[ADDED]  {{ rule.Name }}"
} else {
    Write-Host "[FAILED] {{ rule.Name }}"
    $failed++
}
{% endfor %}
if ($failed -gt 0) { exit 1 }
exit 0
`

const shellTemplate = `#!/bin/sh
# {{ app }} firewall rules, generated by {{ binary }} {{ version }}.
# Deletes and re-adds every rule so it is safe to run repeatedly.
failed=0

tools="iptables"
if command -v ip6tables >/dev/null 2>&1; then
    tools="iptables ip6tables"
fi

delete_rule() {
    "$1" -S "$2" | grep -F -- "--comment $3 " | sed 's/^-A /-D /' | while read -r spec; do
        eval "$1 $spec"
    done
}
{% for rule in rules %}
ok=1
for ipt in $tools; do
    delete_rule "$ipt" {{ rule.Chain }} {{ rule.QuotedName }}
    "$ipt" -A {{ rule.Chain }} {{ rule.Spec }} || ok=0
done
if [ "$ok" -eq 1 ]; then
    echo "[ADDED]  {{ rule.Name }}"
else
    echo "[FAILED] {{ rule.Name }}"
    failed=$((failed + 1))
fi
{% endfor %}
[ "$failed" -eq 0 ]
`

var scriptTemplates = map[ScriptFormat]string{
	FormatPowerShell: powershellTemplate,
	FormatShell:      shellTemplate,
}

// scriptRule is a rule flattened to the strings the templates print.
type scriptRule struct {
	Name       string
	QuotedName string
	Direction  string
	Action     string
	Protocol   string
	Port       string
	Profiles   string
	Enable     string
	Chain      string
	Spec       string
}

func ParseScriptFormat(s string) (ScriptFormat, error) {
	format := ScriptFormat(strings.ToLower(strings.TrimPrefix(s, ".")))
	if _, ok := scriptTemplates[format]; !ok {
		return "", fmt.Errorf("unknown script format %q: must be ps1 or sh", s)
	}
	return format, nil
}

// RenderScript writes a provisioning script equivalent to the direct
// backends for the given rules.
func RenderScript(w io.Writer, format ScriptFormat, rules []models.FirewallRule) error {
	source, ok := scriptTemplates[format]
	if !ok {
		return fmt.Errorf("unknown script format %q", format)
	}

	views := make([]scriptRule, 0, len(rules))
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return err
		}
		enable := "no"
		if rule.Enabled {
			enable = "yes"
		}
		views = append(views, scriptRule{
			Name:       rule.Name,
			QuotedName: shellquote.Join(rule.Name),
			Direction:  string(rule.Direction),
			Action:     string(rule.Action),
			Protocol:   string(rule.Protocol),
			Port:       strconv.Itoa(rule.Port),
			Profiles:   rule.ProfileList(),
			Enable:     enable,
			Chain:      iptablesChain(rule),
			Spec:       shellquote.Join(iptablesRuleSpec(rule)...),
		})
	}

	tpl, err := pongo2.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", format, err)
	}

	return tpl.ExecuteWriter(pongo2.Context{
		"app":     consts.AppName,
		"binary":  consts.BinaryName,
		"version": consts.Version,
		"rules":   views,
	}, w)
}
