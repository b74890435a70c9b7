package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itemsync/internal/cli"
	"itemsync/internal/commands"
	"itemsync/internal/config"
	"itemsync/internal/exitcode"
	"itemsync/internal/service"
	"itemsync/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService
// and records the config it was built from.
func testFactory(svc *testutil.FakeService, seen **config.Config) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		if seen != nil {
			*seen = cfg
		}
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := d.Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// isolate points config lookups at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ITEMSYNC_API_TENANT", "")
	return dir
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil))

	code, _, stderr := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if want := "error: unknown command: unknowncmd\n"; stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil))

	code, _, stderr := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if want := "error: unknown command: --quiet\n"; stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, stdout, stderr := run(t, d, "help", "--config", isolate(t))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, stdout, stderr := run(t, d, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "itemsync 0.1.0\n" {
		t.Errorf("expected 'itemsync 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, _, stderr := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if want := "error: unknown flag: --unknown\n"; stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

func TestDispatcher_FlagHelp(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, stdout, _ := run(t, d, "rm", "--help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Usage:\n  itemsync rm <ref> --yes\n" {
		t.Errorf("unexpected usage output %q", stdout)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddItem("buy milk", false)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))
	dir := isolate(t)
	t.Setenv("ITEMSYNC_API_TENANT", "env-tenant")

	code, stdout, stderr := run(t, d, "list", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "t1   [ ] buy milk  #1") {
		t.Errorf("unexpected list output %q", stdout)
	}

	// With no arguments at all the default config dir is used; only the
	// tenant from the environment is needed.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	code, stdout, _ = run(t, d)
	if code != exitcode.Success || !strings.Contains(stdout, "buy milk") {
		t.Errorf("bare invocation: code %d, stdout %q", code, stdout)
	}
}

func TestDispatcher_MissingTenant(t *testing.T) {
	svc := testutil.NewFakeService()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, d, "list", "--config", isolate(t))

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if want := "error: config: " + config.ErrNoTenant.Error() + "\n"; stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
	if svc.Calls().Total() != 0 {
		t.Errorf("expected no remote calls, got %+v", svc.Calls())
	}
}

func TestDispatcher_ConfigFileAndOverrides(t *testing.T) {
	dir := isolate(t)
	toml := "[api]\ntenant = \"file-tenant\"\n\n[list]\npage_size = 25\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	var seen *config.Config
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), &seen))

	if code, _, stderr := run(t, d, "list", "--config", dir, "-q"); code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if seen.Tenant != "file-tenant" || seen.PageSize != 25 || !seen.Quiet {
		t.Errorf("unexpected config %+v", seen)
	}

	if code, _, _ := run(t, d, "list", "--config", dir, "--tenant", "flag-tenant"); code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if seen.Tenant != "flag-tenant" {
		t.Errorf("expected --tenant to override, got %q", seen.Tenant)
	}

	if code, _, _ := run(t, d, "list", "--config", dir, "--tenant", "  padded  "); code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if seen.Tenant != "padded" {
		t.Errorf("expected --tenant to be trimmed like api.tenant, got %q", seen.Tenant)
	}
}

func TestDispatcher_BlankTenantFlag(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ITEMSYNC_API_TENANT", "env-tenant")
	svc := testutil.NewFakeService()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, d, "list", "--config", dir, "--tenant", "   ")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.ConfigError, code, stderr)
	}
	if svc.Calls().Total() != 0 {
		t.Errorf("expected no remote calls, got %+v", svc.Calls())
	}
}

func TestDispatcher_QuietSuppressesEmptyNotice(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil))

	code, stdout, _ := run(t, d, "list", "--config", isolate(t), "--tenant", "t", "--quiet")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return nil, errors.New("invalid base url")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code, _, stderr := run(t, d, "list", "--config", isolate(t), "--tenant", "t")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: config: invalid base url\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil))

	_, _, stderr := run(t, d, "list", "--config", isolate(t), "--tenant", "t", "--debug", "-q")

	if !strings.Contains(stderr, "[itemsync] ") {
		t.Errorf("expected debug log lines on stderr, got %q", stderr)
	}
}
