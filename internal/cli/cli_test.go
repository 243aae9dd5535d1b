package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	lmio "github.com/matzehuels/lmgraph/pkg/io"
	"github.com/matzehuels/lmgraph/pkg/pipeline"
)

const testDesc = `
[[variables]]
name = "v"
size = 6

[[landmarks]]
name = "a"
facts = [[0, 0]]
goal = true

[[landmarks]]
name = "b"
facts = [[0, 1]]

[[landmarks]]
name = "c"
kind = "disjunctive"
facts = [[0, 2], [0, 3]]

[[landmarks]]
name = "d"
kind = "conjunctive"
facts = [[0, 4], [0, 5]]

[[orderings]]
from = "a"
to = "b"
type = "necessary"

[[orderings]]
from = "b"
to = "a"
type = "natural"

[[orderings]]
from = "b"
to = "c"
type = "natural"

[[orderings]]
from = "d"
to = "a"
type = "greedy-necessary"
`

// writeDesc stores testDesc in a temporary directory and isolates the XDG
// directories from the user's environment.
func writeDesc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	path := filepath.Join(dir, "landmarks.toml")
	if err := os.WriteFile(path, []byte(testDesc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCLI() *CLI {
	var buf bytes.Buffer
	return New(&buf, log.InfoLevel)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, want := range []string{"export", "stats", "browse", "serve", "cache", "completion"} {
		if !slices.Contains(got, want) {
			t.Errorf("RootCommand() subcommands = %v, missing %q", got, want)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("RootCommand() has no --config flag")
	}
}

func TestExportCommand(t *testing.T) {
	desc := writeDesc(t)
	out := filepath.Join(t.TempDir(), "out")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"export", desc, "-o", out, "-f", "json,dot", "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, lmio.GraphFileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc lmio.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if doc.Metadata.NumLandmarks != 4 {
		t.Errorf("num_landmarks = %d, want 4", doc.Metadata.NumLandmarks)
	}
	if doc.Metadata.NumSCCs != 3 {
		t.Errorf("num_sccs = %d, want 3", doc.Metadata.NumSCCs)
	}
	if _, err := os.Stat(filepath.Join(out, pipeline.FileName(pipeline.FormatDOT))); err != nil {
		t.Errorf("dot file missing: %v", err)
	}
}

func TestExportCommandUsesConfig(t *testing.T) {
	desc := writeDesc(t)
	out := filepath.Join(t.TempDir(), "from-config")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := "output_dir = \"" + filepath.ToSlash(out) + "\"\nformats = [\"dot\"]\ncache = \"none\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "export", desc})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "landmark_graph.dot")); err != nil {
		t.Errorf("dot file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, lmio.GraphFileName)); !os.IsNotExist(err) {
		t.Errorf("json written although config selects only dot: %v", err)
	}
}

func TestExportCommandErrors(t *testing.T) {
	desc := writeDesc(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"export", filepath.Join(t.TempDir(), "nope.toml"), "--no-cache"}},
		{"bad format", []string{"export", desc, "-f", "gif", "--no-cache"}},
		{"bad min ordering", []string{"export", desc, "--min-ordering", "strong", "--no-cache"}},
		{"bad input format", []string{"export", desc, "--input-format", "yaml", "--no-cache"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "none.toml"), "export", desc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestCLI().RootCommand()
			root.SetArgs(append(tt.args, "-o", t.TempDir()))
			root.SilenceErrors = true
			if err := root.ExecuteContext(context.Background()); err == nil {
				t.Error("Execute() error = nil, want error")
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	writeDesc(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := newTestCLI().RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !bytes.Contains(out.Bytes(), []byte("lmgraph")) {
				t.Errorf("completion %s output does not mention lmgraph", shell)
			}
		})
	}
}

// captureStdout redirects user-facing output for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestStatsCommandJSON(t *testing.T) {
	desc := writeDesc(t)
	out := captureStdout(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"stats", desc, "--json", "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("stats error: %v", err)
	}

	var stats pipeline.Stats
	if err := json.Unmarshal(out.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v\n%s", err, out.String())
	}
	if stats.Landmarks != 4 || stats.CyclicSCCs != 1 || stats.LargestSCC != 2 {
		t.Errorf("stats = %+v, want 4 landmarks, 1 cyclic scc of size 2", stats.GraphStats)
	}
}

func TestStatsCommandAcyclic(t *testing.T) {
	desc := writeDesc(t)
	out := captureStdout(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"stats", desc, "--acyclic", "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("stats error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("removed orderings")) {
		t.Errorf("stats output missing removal rows:\n%s", out.String())
	}
	if bytes.Contains(out.Bytes(), []byte("cyclic SCCs")) {
		t.Errorf("stats warned about cycles after --acyclic:\n%s", out.String())
	}
}

func TestCachePathCommand(t *testing.T) {
	writeDesc(t)
	out := captureStdout(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	want, _ := cacheDir()
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	writeDesc(t)
	dir, _ := cacheDir()
	if err := os.MkdirAll(filepath.Join(dir, "ab"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.json", "two.json"} {
		if err := os.WriteFile(filepath.Join(dir, "ab", name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	out := captureStdout(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "ab")); !os.IsNotExist(err) {
		t.Errorf("cache subdirectory still present: %v", err)
	}
}
