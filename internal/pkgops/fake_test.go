package pkgops

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/obentoo/wingetkit/internal/common/runner"
	"github.com/obentoo/wingetkit/internal/report"
)

// fakeTool simulates the package manager's database behind a MockRunner
type fakeTool struct {
	installed map[string]report.PackageRecord // keyed by lower-case id
	upgrades  map[string]string               // id -> available version
	fail      map[string]bool                 // ids whose mutation has no effect
	output    map[string]string               // raw output for a mutated id
}

func newFakeTool(installed ...report.PackageRecord) *fakeTool {
	f := &fakeTool{
		installed: make(map[string]report.PackageRecord),
		upgrades:  make(map[string]string),
		fail:      make(map[string]bool),
		output:    make(map[string]string),
	}
	for _, rec := range installed {
		f.add(rec.ID, rec.InstalledVersion)
	}
	return f
}

func (f *fakeTool) add(id, version string) {
	name := id[strings.LastIndex(id, ".")+1:]
	f.installed[strings.ToLower(id)] = report.PackageRecord{
		Name: name, ID: id, InstalledVersion: version, Source: "winget",
	}
}

// mock returns a MockRunner whose RunFunc drives the fake
func (f *fakeTool) mock() *runner.MockRunner {
	m := runner.NewMockRunner("winget")
	m.RunFunc = f.run
	return m
}

func (f *fakeTool) run(args ...string) (*runner.Result, error) {
	id := argValue(args, "--id")
	res := &runner.Result{Args: args}

	switch args[0] {
	case "--version":
		res.Output = "v1.9.25200\n"
	case "list":
		// ignores --exact so callers must filter
		res.Output = f.renderInstalled()
	case "upgrade":
		if id == "" {
			res.Output = f.renderUpgrades()
			return res, nil
		}
		res.Output, res.ExitCode = f.mutate(id, func() {
			f.add(id, f.upgrades[id])
			delete(f.upgrades, id)
		})
	case "install":
		res.Output, res.ExitCode = f.mutate(id, func() { f.add(id, "1.0") })
	case "uninstall":
		res.Output, res.ExitCode = f.mutate(id, func() { delete(f.installed, strings.ToLower(id)) })
	}
	return res, nil
}

func (f *fakeTool) mutate(id string, apply func()) (string, int) {
	out := f.output[id]
	if f.fail[id] {
		if out == "" {
			out = "Installer failed with exit code: 1603\n"
		}
		return out, 1
	}
	apply()
	if out == "" {
		out = "Found " + id + "\n  ██████████████████  100%\nSuccessfully completed\n"
	}
	return out, 0
}

func (f *fakeTool) renderInstalled() string {
	if len(f.installed) == 0 {
		return "No installed package found matching input criteria.\n"
	}
	keys := make([]string, 0, len(f.installed))
	for k := range f.installed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := [][]string{{"Name", "Id", "Version", "Source"}}
	for _, k := range keys {
		r := f.installed[k]
		rows = append(rows, []string{r.Name, r.ID, r.InstalledVersion, r.Source})
	}
	return renderRows(rows)
}

func (f *fakeTool) renderUpgrades() string {
	if len(f.upgrades) == 0 {
		return "No installed package found matching input criteria.\n"
	}
	ids := make([]string, 0, len(f.upgrades))
	for id := range f.upgrades {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := [][]string{{"Name", "Id", "Version", "Available", "Source"}}
	for _, id := range ids {
		current := f.installed[strings.ToLower(id)].InstalledVersion
		rows = append(rows, []string{id, id, current, f.upgrades[id], "winget"})
	}
	return renderRows(rows) + "\n" + strconv.Itoa(len(ids)) + " upgrades available.\n"
}

// renderRows pads every column to its widest cell plus one space, with a
// dashed separator under the header
func renderRows(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	total := 0
	for i, row := range rows {
		for j, cell := range row {
			if j == len(row)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[j]+1))
			}
			if i == 0 {
				total += widths[j] + 1
			}
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString(strings.Repeat("-", total) + "\n")
		}
	}
	return b.String()
}

func argValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func hasArg(args []string, arg string) bool {
	for _, a := range args {
		if a == arg {
			return true
		}
	}
	return false
}

// mutations returns "<verb> <id>" for every mutating invocation
func mutations(m *runner.MockRunner) []string {
	var out []string
	for _, call := range m.Calls() {
		id := argValue(call, "--id")
		if call[0] == "list" || id == "" {
			continue
		}
		out = append(out, call[0]+" "+id)
	}
	return out
}
