package cli

import (
	"archive/zip"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/jarinstall/pkg/errors"
	"github.com/matzehuels/jarinstall/pkg/install"
	"github.com/matzehuels/jarinstall/pkg/metadata"
)

const widgetManifest = "Manifest-Version: 1.0\n" +
	"Bundle-SymbolicName: widget\n" +
	"Implementation-Vendor-Id: org.acme\n" +
	"Bundle-Version: 2.1.0\n"

// fakeMaven installs archives named embedded*.jar without coordinates and
// everything else only with complete coordinates.
type fakeMaven struct {
	calls []string
}

func (f *fakeMaven) Install(_ context.Context, archive string, coords *metadata.Record) error {
	if coords == nil {
		f.calls = append(f.calls, filepath.Base(archive))
		if strings.HasPrefix(filepath.Base(archive), "embedded") {
			return nil
		}
		return fmt.Errorf("exit status 1")
	}
	f.calls = append(f.calls, filepath.Base(archive)+"@"+coords.Coordinate())
	return nil
}

// testCLI returns a quiet CLI whose installer is inst, or one that always
// fails when inst is nil.
func testCLI(t *testing.T, inst install.Installer) *CLI {
	t.Helper()
	c := New(io.Discard, LogInfo)
	if inst == nil {
		inst = install.Func(func(context.Context, string, *metadata.Record) error {
			return fmt.Errorf("no installer in this test")
		})
	}
	c.newInstaller = func(install.Options, *log.Logger) install.Installer { return inst }
	return c
}

func writeTestJar(t *testing.T, path string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// testTree lays out two archives and two loose sources under a temp dir.
func testTree(t *testing.T, withOrphan bool) string {
	t.Helper()
	dir := t.TempDir()
	writeTestJar(t, filepath.Join(dir, "lib", "embedded.jar"), map[string]string{
		"com/example/Thing.class": "",
	})
	writeTestJar(t, filepath.Join(dir, "lib", "widget.jar"), map[string]string{
		"META-INF/MANIFEST.MF": widgetManifest,
		"Util.java":            "class Util {}",
	})
	writeTestFile(t, filepath.Join(dir, "proj", "src", "main", "java", "org", "acme", "Foo.java"), "class Foo {}")
	if withOrphan {
		writeTestFile(t, filepath.Join(dir, "scripts", "Tool.java"), "class Tool {}")
	}
	return dir
}

func TestInstallCommand(t *testing.T) {
	chdir(t, t.TempDir())
	out := captureStdout(t)
	dir := testTree(t, true)
	staging := filepath.Join(t.TempDir(), "external")

	maven := &fakeMaven{}
	root := testCLI(t, maven).RootCommand()
	root.SetArgs([]string{"install", "--no-cache", "--staging-dir", staging, dir})
	err := root.ExecuteContext(context.Background())

	want := &errors.UnresolvedError{Archives: 0, Sources: 1}
	var got *errors.UnresolvedError
	if !stderrors.As(err, &got) {
		t.Fatalf("install error = %v, want %v", err, want)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UnresolvedError mismatch (-want +got):\n%s", diff)
	}

	wantCalls := []string{
		"embedded.jar",
		"widget.jar",
		"widget.jar@org.acme:widget:2.1.0",
	}
	if diff := cmp.Diff(wantCalls, maven.calls); diff != "" {
		t.Errorf("install calls mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(filepath.Join(staging, "main", "java", "org", "acme", "Foo.java")); err != nil {
		t.Errorf("Foo.java was not staged: %v", err)
	}
	if _, err := os.Stat(filepath.Join(staging, "Tool.java")); !os.IsNotExist(err) {
		t.Errorf("Tool.java should not be staged, stat error = %v", err)
	}

	summary := "2/2 archives and 1/2 additional source files installed successfully"
	if !strings.Contains(out.String(), summary) {
		t.Errorf("output %q does not contain %q", out.String(), summary)
	}
}

func TestInstallCommandClean(t *testing.T) {
	chdir(t, t.TempDir())
	out := captureStdout(t)
	dir := testTree(t, false)

	root := testCLI(t, &fakeMaven{}).RootCommand()
	root.SetArgs([]string{"install", "--no-cache", "--skip-sources", dir})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("install error = %v", err)
	}
	if _, err := os.Stat("external"); !os.IsNotExist(err) {
		t.Errorf("--skip-sources still created the staging dir, stat error = %v", err)
	}
	summary := "2/2 archives and 0/0 additional source files installed successfully"
	if !strings.Contains(out.String(), summary) {
		t.Errorf("output %q does not contain %q", out.String(), summary)
	}
}

func TestInstallCommandUnresolvedArchive(t *testing.T) {
	chdir(t, t.TempDir())
	captureStdout(t)
	dir := testTree(t, false)

	root := testCLI(t, nil).RootCommand()
	root.SetArgs([]string{"install", "--no-cache", "--skip-sources", dir})
	err := root.ExecuteContext(context.Background())

	var got *errors.UnresolvedError
	if !stderrors.As(err, &got) || got.Archives != 2 {
		t.Errorf("install error = %v, want 2 unresolved archives", err)
	}
}

func TestInstallCommandNoArchives(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "README.md"), "nothing here")

	maven := &fakeMaven{}
	root := testCLI(t, maven).RootCommand()
	root.SetArgs([]string{"install", "--no-cache", dir})
	err := root.ExecuteContext(context.Background())

	if !errors.Is(err, errors.ErrCodeNoArchives) {
		t.Errorf("install error = %v, want %s", err, errors.ErrCodeNoArchives)
	}
	if len(maven.calls) != 0 {
		t.Errorf("installer called %v before any archive was found", maven.calls)
	}
}

func TestInstallCommandRequiresPath(t *testing.T) {
	root := testCLI(t, nil).RootCommand()
	root.SetArgs([]string{"install"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("install without paths should fail")
	}
}
