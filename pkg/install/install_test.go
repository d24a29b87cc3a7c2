package install

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/jarinstall/pkg/errors"
	"github.com/matzehuels/jarinstall/pkg/metadata"
)

func TestArgsDirect(t *testing.T) {
	m := NewMaven(Options{Flags: []string{"-q"}}, log.New(io.Discard))

	want := []string{
		"-q",
		DefaultPlugin + ":install-file",
		"-Dfile=/libs/widget.jar",
		"-DtrimStackTrace=false",
		"-DcreateChecksum=true",
		"-Dstyle.color=never",
	}
	if diff := cmp.Diff(want, m.Args("/libs/widget.jar", nil)); diff != "" {
		t.Errorf("Args() mismatch (-want +got):\n%s", diff)
	}
}

func TestArgsQualified(t *testing.T) {
	m := NewMaven(Options{Plugin: "p:q:1", JVMFlags: []string{}}, nil)
	coords := &metadata.Record{Name: "Widget", GroupID: "org.acme", ArtifactID: "widget", Version: "1.0"}

	want := []string{
		"p:q:1:install-file",
		"-Dfile=/libs/widget.jar",
		"-DgroupId=org.acme",
		"-DartifactId=widget",
		"-Dversion=1.0",
		"-Dpackaging=jar",
	}
	if diff := cmp.Diff(want, m.Args("/libs/widget.jar", coords)); diff != "" {
		t.Errorf("Args() mismatch (-want +got):\n%s", diff)
	}
}

func TestArgsDoesNotAliasFlags(t *testing.T) {
	flags := make([]string, 1, 8)
	flags[0] = "-B"
	m := NewMaven(Options{Flags: flags}, nil)

	a := m.Args("/a.jar", nil)
	_ = m.Args("/b.jar", nil)
	if a[2] != "-Dfile=/a.jar" {
		t.Errorf("first Args() result was overwritten: %v", a)
	}
}

// TestHelperProcess stands in for mvn when re-executed by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("JARINSTALL_HELPER") != "1" {
		return
	}
	for _, arg := range os.Args {
		if arg == "-Dfile=/fail.jar" {
			fmt.Fprintln(os.Stderr, "BUILD FAILURE")
			os.Exit(3)
		}
	}
	fmt.Fprintln(os.Stdout, "BUILD SUCCESS")
	os.Exit(0)
}

func helperMaven(stdout, stderr io.Writer) *Maven {
	return NewMaven(Options{
		Executable: os.Args[0],
		Flags:      []string{"-test.run=TestHelperProcess", "--"},
		Env:        []string{"JARINSTALL_HELPER=1"},
		Stdout:     stdout,
		Stderr:     stderr,
	}, log.New(io.Discard))
}

func TestInstallSuccess(t *testing.T) {
	var stdout bytes.Buffer
	m := helperMaven(&stdout, nil)

	if err := m.Install(context.Background(), "/ok.jar", nil); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "BUILD SUCCESS") {
		t.Errorf("stdout = %q, want BUILD SUCCESS", stdout.String())
	}
}

func TestInstallFailure(t *testing.T) {
	var stderr bytes.Buffer
	m := helperMaven(nil, &stderr)

	err := m.Install(context.Background(), "/fail.jar", nil)
	if !errors.Is(err, errors.ErrCodeInstallFailed) {
		t.Fatalf("Install() error = %v, want %s", err, errors.ErrCodeInstallFailed)
	}
	if !strings.Contains(stderr.String(), "BUILD FAILURE") {
		t.Errorf("stderr = %q, want BUILD FAILURE", stderr.String())
	}
}

func TestInstallMissingExecutable(t *testing.T) {
	m := NewMaven(Options{Executable: "jarinstall-no-such-binary"}, log.New(io.Discard))
	if err := m.Install(context.Background(), "/a.jar", nil); !errors.Is(err, errors.ErrCodeInstallFailed) {
		t.Errorf("Install() error = %v, want %s", err, errors.ErrCodeInstallFailed)
	}
}

func TestFunc(t *testing.T) {
	var got string
	var inst Installer = Func(func(_ context.Context, archive string, _ *metadata.Record) error {
		got = archive
		return nil
	})
	if err := inst.Install(context.Background(), "/a.jar", nil); err != nil {
		t.Fatal(err)
	}
	if got != "/a.jar" {
		t.Errorf("Func received %q, want %q", got, "/a.jar")
	}
}
