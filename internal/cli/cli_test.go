package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/assetdesk/internal/paths"
	"github.com/mesh-intelligence/assetdesk/pkg/assetdesk"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// testEnv is an isolated config and data directory pair.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

type result struct {
	stdout string
	stderr string
	code   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	return e.runWithInput("", args...)
}

func (e *testEnv) runWithInput(stdin string, args ...string) result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(stdin))
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, full, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (e *testEnv) mustRun(args ...string) result {
	e.t.Helper()
	r := e.run(args...)
	require.Equal(e.t, exitSuccess, r.code, "stderr: %s", r.stderr)
	return r
}

func (e *testEnv) writeConfig(yaml string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(paths.ConfigFile(e.configDir), []byte(yaml), 0o644))
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

// listingOut mirrors the parts of listingDoc the tests read.
type listingOut struct {
	Title   string `json:"title"`
	Columns []struct {
		Key     string `json:"key"`
		Visible bool   `json:"visible"`
		Sort    string `json:"sort"`
	} `json:"columns"`
	Rows []struct {
		ID       string            `json:"id"`
		Selected bool              `json:"selected"`
		Cells    map[string]any    `json:"cells"`
		Links    map[string]string `json:"links"`
	} `json:"rows"`
	PageCount     int    `json:"page_count"`
	FilteredCount int    `json:"filtered_count"`
	PageSelection string `json:"page_selection"`
	CreateHref    string `json:"create_href"`
	BulkMenu      struct {
		Enabled bool `json:"enabled"`
	} `json:"bulk_menu"`
	User *struct {
		Name string `json:"name"`
	} `json:"user"`
}

func rowIDs(l listingOut) []string {
	ids := make([]string, len(l.Rows))
	for i, r := range l.Rows {
		ids[i] = r.ID
	}
	return ids
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	code := run(NewRootCmd(), []string{"version"}, &out, &out)
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out.String(), "assetdesk v"+assetdesk.Version)
	assert.Contains(t, out.String(), assetdesk.ModulePath)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("init")
	assert.Contains(t, r.stdout, env.dataDir)

	data, err := os.ReadFile(paths.ConfigFile(env.configDir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "page_size: 10")

	for _, name := range []string{"vehicles.jsonl", "battery_packs.jsonl"} {
		_, err := os.Stat(filepath.Join(env.dataDir, name))
		assert.NoError(t, err, name)
	}

	env.writeConfig("backend: sqlite\npage_size: 5\n")
	env.mustRun("init")
	data, err = os.ReadFile(paths.ConfigFile(env.configDir))
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\npage_size: 5\n", string(data), "existing config is kept")
}

func TestListText(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("list", "vehicles")

	assert.Contains(t, r.stdout, "Dashboard / Vehicles")
	assert.Contains(t, r.stdout, "Asset Tag")
	assert.Contains(t, r.stdout, "VH-1001")
	assert.Contains(t, r.stdout, "Page 1 of 1 (3 rows, 0 selected)")
	assert.Contains(t, r.stdout, "Create: /vehicles/create")
	assert.Contains(t, r.stdout, "Bulk Actions: Check Out, Check In")
	assert.NotContains(t, r.stdout, "Registration", "hidden columns are not rendered")

	r = env.mustRun("list", "battery-packs", "--search", "nothing-matches")
	assert.Contains(t, r.stdout, "No results.")
	assert.Contains(t, r.stdout, "Page 0 of 0")
	assert.Contains(t, r.stdout, "Bulk Actions (disabled)")
}

func TestListJSON(t *testing.T) {
	env := newTestEnv(t)
	l := parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--search", "TOYOTA").stdout)

	assert.Equal(t, "Vehicles", l.Title)
	assert.Equal(t, []string{"VH-1001"}, rowIDs(l))
	assert.Equal(t, 1, l.FilteredCount)
	assert.Equal(t, "/vehicles/create", l.CreateHref)
	assert.True(t, l.BulkMenu.Enabled)
	assert.Equal(t, "/vehicles/VH-1001", l.Rows[0].Links["asset_tag"])
	assert.Equal(t, "Toyota", l.Rows[0].Cells["company"])
	assert.Nil(t, l.User)
}

func TestListSortCyclesPerFlag(t *testing.T) {
	env := newTestEnv(t)

	asc := parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--sort", "model").stdout)
	assert.Equal(t, []string{"VH-1003", "VH-1002", "VH-1001"}, rowIDs(asc))

	desc := parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--sort", "model", "--sort", "model").stdout)
	assert.Equal(t, []string{"VH-1001", "VH-1002", "VH-1003"}, rowIDs(desc))
	for _, c := range desc.Columns {
		if c.Key == "model" {
			assert.Equal(t, "desc", c.Sort)
		}
	}

	r := env.run("list", "vehicles", "--sort", "color")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown column")
}

func TestListPaginationAndSelection(t *testing.T) {
	env := newTestEnv(t)

	l := parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--page-size", "5", "--select", "VH-1002").stdout)
	assert.Equal(t, 1, l.PageCount)
	assert.Equal(t, "indeterminate", l.PageSelection)
	for _, r := range l.Rows {
		assert.Equal(t, r.ID == "VH-1002", r.Selected, r.ID)
	}

	l = parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--select-all").stdout)
	assert.Equal(t, "checked", l.PageSelection)

	tests := []struct {
		name string
		args []string
	}{
		{"page beyond last", []string{"list", "vehicles", "--page", "2"}},
		{"page zero", []string{"list", "vehicles", "--page", "0"}},
		{"bad page size", []string{"list", "vehicles", "--page-size", "7"}},
		{"unknown asset", []string{"list", "forklifts"}},
		{"unknown column", []string{"list", "vehicles", "--columns", "asset_tag,color"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, exitUserError, env.run(tt.args...).code)
		})
	}
}

func TestListColumnsAndFilters(t *testing.T) {
	env := newTestEnv(t)

	l := parseJSON[listingOut](t, env.mustRun("--json", "list", "battery-packs", "--columns", "asset_tag,SoC").stdout)
	var visible []string
	for _, c := range l.Columns {
		if c.Visible {
			visible = append(visible, c.Key)
		}
	}
	assert.Equal(t, []string{"asset_tag", "SoC"}, visible)
	assert.Len(t, l.Rows[0].Cells, 2)

	l = parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--status", types.StatusInMaintenance).stdout)
	assert.Equal(t, []string{"VH-1002"}, rowIDs(l))

	l = parseJSON[listingOut](t, env.mustRun("--json", "list", "battery-packs", "--columns", "all", "--company", "VoltWorks").stdout)
	assert.Len(t, l.Rows, 2)
	for _, c := range l.Columns {
		assert.True(t, c.Visible, c.Key)
	}
}

func TestGetCreateDelete(t *testing.T) {
	env := newTestEnv(t)

	r := env.mustRun("get", "vehicles", "VH-1003")
	assert.Contains(t, r.stdout, "Model:")
	assert.Contains(t, r.stdout, "Civic")

	r = env.mustRun("create", "vehicles", `{"asset_tag":"VH-2001","model":"Ioniq 5","company":"Hyundai"}`)
	assert.Equal(t, "VH-2001\n", r.stdout)

	created := parseJSON[types.Vehicle](t, env.mustRun("--json", "get", "vehicles", "VH-2001").stdout)
	assert.Equal(t, types.StatusAvailable, created.StatusLabel)
	assert.NotEmpty(t, created.ID)

	r = env.runWithInput(`{"asset_tag":"BP-400","nominal_charge_capacity":90}`, "create", "battery-packs", "-")
	assert.Equal(t, exitUserError, r.code, "unknown field is rejected")

	env.mustRun("delete", "vehicles", "VH-2001")
	r = env.run("get", "vehicles", "VH-2001")
	assert.Equal(t, exitUserError, r.code)

	tests := []struct {
		name string
		args []string
	}{
		{"malformed json", []string{"create", "vehicles", "{"}},
		{"missing model", []string{"create", "vehicles", `{"asset_tag":"VH-2002","company":"Kia"}`}},
		{"delete missing", []string{"delete", "battery-packs", "BP-999"}},
		{"unknown asset", []string{"get", "forklifts", "F-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, exitUserError, env.run(tt.args...).code)
		})
	}
}

func TestCreateFromStdin(t *testing.T) {
	env := newTestEnv(t)
	pack := `{"asset_tag":"BP-400","battery_pack_nominal_charge_capacity":90,"company_name":"Cellex"}`
	r := env.runWithInput(pack, "create", "battery-packs", "-")
	require.Equal(t, exitSuccess, r.code, r.stderr)

	l := parseJSON[listingOut](t, env.mustRun("--json", "list", "battery-packs").stdout)
	assert.Contains(t, rowIDs(l), "BP-400")
}

func TestSuggest(t *testing.T) {
	env := newTestEnv(t)

	r := env.mustRun("suggest", "vh")
	assert.Equal(t, 3, strings.Count(r.stdout, "Vehicles"))
	assert.NotContains(t, r.stdout, ">")

	r = env.mustRun("suggest", "--up", "1")
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[4], "> "), "up from nothing wraps to the last entry")

	r = env.mustRun("suggest", "bp", "--down", "2", "--select")
	assert.Equal(t, "BP-203\tBattery Packs\n", r.stdout)

	assert.Equal(t, exitUserError, env.run("suggest", "vh", "--select").code)
	assert.Contains(t, env.mustRun("suggest", "zzz").stdout, "No matches.")
}

func TestMenu(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("menu", "/vehicles")
	assert.Contains(t, r.stdout, "* Vehicles (/vehicles)")
	assert.NotContains(t, r.stdout, "* Dashboard")
}

func TestSessionGatesListing(t *testing.T) {
	var authorized atomic.Bool
	authorized.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Ada Lovelace","email":"ada@example.com"}`))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	env.writeConfig("backend: sqlite\nsession:\n  me_url: " + srv.URL + "\n  login_url: /login\n")

	r := env.mustRun("list", "vehicles")
	assert.Contains(t, r.stdout, "Signed in as Ada Lovelace")
	assert.Equal(t, "Ada Lovelace\n", env.mustRun("whoami").stdout)

	authorized.Store(false)
	r = env.run("list", "vehicles")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "login required: /login")
	assert.Equal(t, exitUserError, env.run("whoami").code)
}

func TestConfigValidation(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("backend: postgres\n")
	r := env.run("list", "vehicles")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown backend")

	t.Setenv(paths.EnvPrefix+"_BACKEND", "sqlite")
	env.mustRun("list", "vehicles")
}

func TestConfigPageSize(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("backend: sqlite\npage_size: 5\n")
	env.mustRun("create", "vehicles", `{"asset_tag":"VH-2001","model":"A","company":"B"}`)
	env.mustRun("create", "vehicles", `{"asset_tag":"VH-2002","model":"A","company":"B"}`)
	env.mustRun("create", "vehicles", `{"asset_tag":"VH-2003","model":"A","company":"B"}`)

	l := parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles", "--page", "2").stdout)
	assert.Equal(t, 2, l.PageCount)
	assert.Equal(t, []string{"VH-2003"}, rowIDs(l))
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	env := newTestEnv(t)
	env.writeConfig("backend: sqlite\ncache:\n  redis_addr: " + mr.Addr() + "\n  prefix: \"t:\"\n")

	env.mustRun("list", "vehicles")
	var cached int
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "t:query_results:vehicles:") {
			cached++
		}
	}
	assert.Equal(t, 1, cached)

	env.mustRun("delete", "vehicles", "VH-1001")
	l := parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles").stdout)
	assert.NotContains(t, rowIDs(l), "VH-1001", "writes invalidate cached listings")

	mr.Close()
	l = parseJSON[listingOut](t, env.mustRun("--json", "list", "vehicles").stdout)
	assert.Len(t, l.Rows, 2, "unreachable redis falls back to the catalog")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, ExitCode(nil))
	assert.Equal(t, exitUserError, ExitCode(userError(assert.AnError)))
	assert.Equal(t, exitSysError, ExitCode(sysError(assert.AnError)))
	assert.Equal(t, exitUserError, ExitCode(assert.AnError))
	assert.ErrorIs(t, classify(types.ErrNotFound), types.ErrNotFound)
	assert.Equal(t, exitSysError, ExitCode(classify(assert.AnError)))
}

func TestLoadSettings(t *testing.T) {
	env := newTestEnv(t)

	s, err := loadSettings(env.configDir)
	require.NoError(t, err, "missing config.yaml is not an error")
	assert.Equal(t, types.BackendSQLite, s.Backend)
	assert.Equal(t, 10, s.PageSize)
	assert.False(t, s.SessionEnabled)

	env.writeConfig("backend: sqlite\ndata_dir: /from/config\npage_size: 5\ncache:\n  ttl: 30s\n")
	t.Setenv(paths.EnvDataDir, "/from/env")
	t.Setenv(paths.EnvPrefix+"_PAGE_SIZE", "20")

	s, err = loadSettings(env.configDir)
	require.NoError(t, err)
	assert.Equal(t, "/from/config", s.DataDir, "config.yaml ranks above ASSETDESK_DATA_DIR")
	assert.Equal(t, 20, s.PageSize, "environment overrides config keys")
	assert.Equal(t, "30s", s.Cache.TTL.String())
}
