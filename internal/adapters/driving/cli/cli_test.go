package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gshell/internal/adapters/driven/oauth"
	"github.com/custodia-labs/gshell/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	core "github.com/custodia-labs/gshell/internal/core/services"
	"github.com/custodia-labs/gshell/internal/output"
)

type staticProvider struct {
	account domain.Account
}

func (p *staticProvider) GetToken(context.Context) (string, error) { return "token", nil }
func (p *staticProvider) AccountDomain() string                      { return p.account.Domain }
func (p *staticProvider) AuthMethod() domain.AuthMethod              { return p.account.AuthMethod }
func (p *staticProvider) IsAuthenticated() bool                      { return true }

type staticFactory struct{}

func (staticFactory) Create(_ context.Context, account domain.Account, _ []string) (driven.TokenProvider, error) {
	return &staticProvider{account: account}, nil
}

// response is a canned API reply.
type response struct {
	status int
	body   string
}

// fakeAPI serves canned replies keyed by "METHOD /path" and records requests.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]response
	requests  []string
	bodies    []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, key)
	f.bodies = append(f.bodies, string(body))
	resp, ok := f.responses[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Resource Not Found: ` + r.URL.Path + `"}}`))
		return
	}
	if resp.status == 0 {
		resp.status = http.StatusOK
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeAPI) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = response{status: status, body: body}
}

func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeAPI) lastBody() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		return ""
	}
	return f.bodies[len(f.bodies)-1]
}

type fixture struct {
	t        *testing.T
	api      *fakeAPI
	services *Services
}

// run is the outcome of one command line.
type run struct {
	code   int
	stdout string
	stderr string
}

// newFixture builds in-memory services talking to a fake API, with
// example.com registered as the default account.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv(EnvDomain, "")
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvConfigDir, "")

	api := &fakeAPI{responses: map[string]response{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	accountStore := memory.NewAccountStore()
	tokens := memory.NewTokenStore()
	settings := core.NewSettingsService(memory.NewConfigStore())
	accounts := core.NewAccountService(accountStore, tokens, settings)
	registry := core.NewClientRegistry(accounts, settings, staticFactory{},
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))

	_, err := accounts.Add(context.Background(), domain.Account{Domain: "example.com", AuthMethod: domain.AuthMethodADC})
	require.NoError(t, err)

	f := &fixture{
		t:   t,
		api: api,
		services: &Services{
			Accounts:   accounts,
			Settings:   settings,
			Auth:       core.NewAuthService(accountStore, tokens, oauth.NewClient()),
			Clients:    registry,
			ConfigPath: "/tmp/gshell/config.toml",
		},
	}
	t.Cleanup(func() { SetServices(nil) })
	return f
}

// exec runs one command line with stdin.
func (f *fixture) exec(stdin string, args ...string) run {
	f.t.Helper()
	resetFlags(rootCmd)
	SetServices(f.services)
	printer = nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	code := Execute(context.Background())
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func (f *fixture) run(args ...string) run {
	f.t.Helper()
	return f.exec("", args...)
}

// resetFlags restores every flag in the tree to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			def := strings.Trim(fl.DefValue, "[]")
			if def == "" {
				_ = sv.Replace(nil)
			} else {
				_ = sv.Replace(strings.Split(def, ","))
			}
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRoot_UnknownOutputFormat(t *testing.T) {
	f := newFixture(t)

	r := f.run("-o", "xml", "config", "list")

	assert.Equal(t, output.ExitUsage, r.code)
	assert.Contains(t, r.stderr, "unknown output format")
}

func TestRoot_WrongArgumentCount(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "get")

	assert.Equal(t, output.ExitUsage, r.code)
	assert.Contains(t, r.stderr, "InvalidArgument")
	assert.Empty(t, f.api.calls())
}

func TestRoot_UnknownFlag(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "list", "--nope")

	assert.Equal(t, output.ExitUsage, r.code)
}

func TestRoot_UnknownDomain(t *testing.T) {
	f := newFixture(t)

	r := f.run("-d", "missing.org", "user", "get", "jane")

	assert.Equal(t, output.ExitConfig, r.code)
	assert.Contains(t, r.stderr, "ObjectNotFound")
	assert.Empty(t, f.api.calls())
}

func TestRoot_OutputFromSettings(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.services.Settings.Set(domain.SettingOutputFormat, "json"))

	r := f.run("account", "list")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"domain": "example.com"`)
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	r := f.run("version")

	require.Equal(t, output.ExitSuccess, r.code)
	assert.Contains(t, r.stdout, "gshell 1.2.3")
}
