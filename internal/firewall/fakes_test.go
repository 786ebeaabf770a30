package firewall

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// fakeNetsh emulates netsh advfirewall keeping rules in memory. Rules with
// the same name may exist more than once, like in the real firewall.
type fakeNetsh struct {
	rules      map[string][]map[string]string
	calls      []string
	failAdd    map[string]bool
	failDelete map[string]bool
}

func newFakeNetsh() *fakeNetsh {
	return &fakeNetsh{
		rules:      map[string][]map[string]string{},
		failAdd:    map[string]bool{},
		failDelete: map[string]bool{},
	}
}

func (f *fakeNetsh) seed(params map[string]string) {
	f.rules[params["name"]] = append(f.rules[params["name"]], params)
}

func (f *fakeNetsh) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	if name != "netsh" {
		return nil, fmt.Errorf("unexpected command %s", name)
	}
	if len(args) < 4 || args[0] != "advfirewall" || args[1] != "firewall" || args[3] != "rule" {
		return []byte("The syntax supplied for this command is not valid."), errors.New("exit status 1")
	}

	verb := args[2]
	params := map[string]string{}
	for _, arg := range args[4:] {
		k, v, _ := strings.Cut(arg, "=")
		params[k] = v
	}
	ruleName := params["name"]
	f.calls = append(f.calls, verb+" "+ruleName)

	switch verb {
	case "delete":
		if f.failDelete[ruleName] {
			return []byte("The requested operation requires elevation (Run as administrator)."), errors.New("exit status 1")
		}
		if len(f.rules[ruleName]) == 0 {
			return []byte("\nNo rules match the specified criteria.\n"), errors.New("exit status 1")
		}
		n := len(f.rules[ruleName])
		delete(f.rules, ruleName)
		return []byte(fmt.Sprintf("\nDeleted %d rule(s).\nOk.\n", n)), nil
	case "add":
		if f.failAdd[ruleName] {
			return []byte("The port is already reserved."), errors.New("exit status 1")
		}
		f.rules[ruleName] = append(f.rules[ruleName], params)
		return []byte("Ok.\n"), nil
	case "show":
		if len(f.rules[ruleName]) == 0 {
			return []byte("\nNo rules match the specified criteria.\n"), errors.New("exit status 1")
		}
		return []byte("\nRule Name: " + ruleName + "\n----------\nEnabled: Yes\nOk.\n"), nil
	}
	return nil, fmt.Errorf("unexpected verb %s", verb)
}

// fakeIPTables keeps rulespecs per chain of the filter table.
type fakeIPTables struct {
	chains     map[string][][]string
	calls      []string
	failAppend map[string]bool
}

func newFakeIPTables() *fakeIPTables {
	return &fakeIPTables{
		chains:     map[string][][]string{},
		failAppend: map[string]bool{},
	}
}

func (f *fakeIPTables) List(table, chain string) ([]string, error) {
	if table != "filter" {
		return nil, fmt.Errorf("unexpected table %s", table)
	}
	lines := []string{"-P " + chain + " ACCEPT"}
	for _, spec := range f.chains[chain] {
		lines = append(lines, "-A "+chain+" "+strings.Join(spec, " "))
	}
	return lines, nil
}

func (f *fakeIPTables) Append(table, chain string, rulespec ...string) error {
	f.calls = append(f.calls, "append "+chain+" "+commentOf(rulespec))
	if f.failAppend[commentOf(rulespec)] {
		return errors.New("iptables: Resource temporarily unavailable.")
	}
	f.chains[chain] = append(f.chains[chain], append([]string(nil), rulespec...))
	return nil
}

func (f *fakeIPTables) Delete(table, chain string, rulespec ...string) error {
	f.calls = append(f.calls, "delete "+chain+" "+commentOf(rulespec))
	want := strings.Join(rulespec, " ")
	for i, spec := range f.chains[chain] {
		if strings.Join(spec, " ") == want {
			f.chains[chain] = append(f.chains[chain][:i], f.chains[chain][i+1:]...)
			return nil
		}
	}
	return errors.New("iptables: Bad rule (does a matching rule exist in that chain?).")
}

func (f *fakeIPTables) count(chain, name string) int {
	n := 0
	for _, spec := range f.chains[chain] {
		if commentOf(spec) == name {
			n++
		}
	}
	return n
}

func commentOf(spec []string) string {
	for i := 0; i < len(spec)-1; i++ {
		if spec[i] == "--comment" {
			return spec[i+1]
		}
	}
	return ""
}

// recordingRunner returns a fixed result and remembers the invocation.
type recordingRunner struct {
	output []byte
	err    error
	name   string
	args   []string
	calls  int
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls++
	r.name = name
	r.args = args
	return r.output, r.err
}
