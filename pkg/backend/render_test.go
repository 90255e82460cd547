package backend

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// requireDot skips the test when the Graphviz dot binary is not installed.
func requireDot(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultDotBinary); err != nil {
		t.Skipf("graphviz %q not on PATH", DefaultDotBinary)
	}
}

func TestPipe(t *testing.T) {
	requireDot(t)

	out, err := Pipe(context.Background(), "dot", "svg", []byte("graph { hello -- world }"), WithQuiet())
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Errorf("Pipe output does not look like SVG: %.60q", out)
	}
}

func TestPipeInvalidSource(t *testing.T) {
	requireDot(t)

	_, err := Pipe(context.Background(), "dot", "svg", []byte("graph {"), WithQuiet())
	exitErr, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Pipe error = %T (%v), want *ExitError", err, err)
	}
	if exitErr.ExitCode == 0 {
		t.Error("ExitError with zero exit code")
	}
	if exitErr.Stderr == "" {
		t.Error("ExitError without captured stderr")
	}
}

func TestRender(t *testing.T) {
	requireDot(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.gv")
	if err := os.WriteFile(path, []byte("digraph { a -> b }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rendered, err := Render(context.Background(), "dot", "dot", path, WithQuiet())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := filepath.Join(dir, "hello.gv.dot"); rendered != want {
		t.Errorf("rendered path = %q, want %q", rendered, want)
	}
	if _, err := os.Stat(rendered); err != nil {
		t.Errorf("stat rendered file: %v", err)
	}
}

func TestVersion(t *testing.T) {
	requireDot(t)

	version, err := Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if len(version) < 2 {
		t.Errorf("Version = %v, want at least major.minor", version)
	}
}

func TestExecutableNotFound(t *testing.T) {
	_, err := Pipe(context.Background(), "dot", "svg", []byte("graph {}"),
		WithBinary("dotforge-no-such-binary"), WithQuiet())
	if !IsExecutableNotFound(err) {
		t.Fatalf("Pipe error = %v, want ExecutableNotFoundError", err)
	}
}

func TestExitErrorFromFailingBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a unix false binary")
	}

	_, err := Pipe(context.Background(), "dot", "svg", []byte("graph {}"),
		WithBinary("false"), WithQuiet())
	exitErr, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Pipe error = %T (%v), want *ExitError", err, err)
	}
	if exitErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", exitErr.ExitCode)
	}
}

func TestUnflatten(t *testing.T) {
	if _, err := exec.LookPath(DefaultUnflattenBinary); err != nil {
		t.Skipf("graphviz %q not on PATH", DefaultUnflattenBinary)
	}

	out, err := Unflatten(context.Background(), "digraph { a -> b; a -> c; a -> d }",
		UnflattenOptions{Stagger: 2})
	if err != nil {
		t.Fatalf("Unflatten: %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("Unflatten output does not look like DOT: %.60q", out)
	}
}

func TestRenderEmbedded(t *testing.T) {
	out, err := RenderEmbedded(context.Background(), "dot", "svg", []byte("digraph { a -> b }"))
	if err != nil {
		t.Fatalf("RenderEmbedded: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Errorf("embedded output does not look like SVG: %.60q", out)
	}
}

func TestRenderEmbeddedUnsupportedFormat(t *testing.T) {
	if _, err := RenderEmbedded(context.Background(), "dot", "pdf", []byte("digraph {}")); err == nil {
		t.Fatal("RenderEmbedded(pdf) = nil error, want unsupported")
	}
}
