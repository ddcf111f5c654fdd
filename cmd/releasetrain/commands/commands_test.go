package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"releasetrain/internal/app"
	"releasetrain/internal/domain/types"
	"releasetrain/internal/tracker"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// writeConfig writes a config for the 2nd Tuesday rule with a file tracker
// under t.TempDir and returns its path.
func writeConfig(t *testing.T, withRepo bool) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
[release_train]
week_of_month = 2
day_of_week = 2

[tracker]
kind = "file"
dir = %q

[log]
level = "error"
`, filepath.Join(dir, "data"))
	if withRepo {
		cfg += `
[repository]
owner = "acme"
name = "widgets"
`
	}
	path := filepath.Join(dir, "releasetrain.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func setNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func run(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", config}, args...))
	err := root.Execute()
	return out.String(), err
}

// 2026-10-19 is a Monday.
var monday = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func TestDates_ExplicitTrain(t *testing.T) {
	cfg := writeConfig(t, false)
	out, err := run(t, cfg, "dates", "1.0.0", "--train", "1", "--year", "2022", "--week", "3", "--day", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "1.0.0-M1   2022-01-17")
	assert.Contains(t, out, "1.0.0-M2   2022-02-21")
	assert.Contains(t, out, "1.0.0-M3   2022-03-21")
	assert.Contains(t, out, "1.0.0-RC1  2022-04-18")
	assert.Contains(t, out, "1.0.0      2022-05-16")
}

func TestDates_SearchJSON(t *testing.T) {
	setNow(t, monday)
	cfg := writeConfig(t, false)
	out, err := run(t, cfg, "-o", "json", "dates", "7.0.0")
	require.NoError(t, err)

	var got trainOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ONE", got.Train)
	assert.Equal(t, 2027, got.Year)
	assert.Equal(t, []string{"7.0.0-M1", "7.0.0-M2", "7.0.0-M3", "7.0.0-RC1", "7.0.0"}, got.Dates.Labels())
	assert.Equal(t, types.NewDate(2027, time.January, 12), got.Dates[0].Date)
	assert.Equal(t, types.NewDate(2027, time.May, 11), got.Dates[4].Date)
}

func TestDates_FromYAML(t *testing.T) {
	cfg := writeConfig(t, false)
	out, err := run(t, cfg, "-o", "yaml", "dates", "2.1.0", "--from", "2022-07-01")
	require.NoError(t, err)

	var got trainOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "TWO", got.Train)
	assert.Equal(t, 2022, got.Year)
	assert.Equal(t, "2.1.0-M1", got.Dates[0].Label)
}

func TestDates_FlagConflicts(t *testing.T) {
	cfg := writeConfig(t, false)
	_, err := run(t, cfg, "dates", "1.0.0", "--train", "1", "--year", "2022", "--from", "2022-01-01")
	require.Error(t, err)

	_, err = run(t, cfg, "dates", "1.0.0", "--train", "1")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "year", verr.Field)
}

func TestNextTrain(t *testing.T) {
	setNow(t, monday)
	cfg := writeConfig(t, false)

	out, err := run(t, cfg, "next-train")
	require.NoError(t, err)
	assert.Equal(t, "train ONE 2027\n", out)

	out, err = run(t, cfg, "next-train", "--from", "2022-02-10")
	require.NoError(t, err)
	assert.Equal(t, "train TWO 2022\n", out)
}

func TestIsTrainDate(t *testing.T) {
	cfg := writeConfig(t, false)

	out, err := run(t, cfg, "is-train-date", "1.0.0", "1.0.0-M1", "2022-01-17", "--week", "3", "--day", "1")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, cfg, "is-train-date", "1.0.0", "1.0.0-M1", "2022-01-18", "--week", "3", "--day", "1")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, cfg, "-o", "json", "is-train-date", "1.0.0", "1.0.0-RC1", "2022-10-17", "--week", "3", "--day", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"train_date": true}`, out)

	_, err = run(t, cfg, "is-train-date", "1.0.0", "1.0.0-M1", "17/01/2022")
	require.Error(t, err)
}

func TestNextReleaseDate(t *testing.T) {
	setNow(t, monday)
	cfg := writeConfig(t, false)

	out, err := run(t, cfg, "next-release-date", "6.5.1")
	require.NoError(t, err)
	assert.Equal(t, "6.5.1\t2026-12-08\n", out)

	out, err = run(t, cfg, "next-release-date", "6.5.1", "--from", "2026-12-08")
	require.NoError(t, err)
	assert.Equal(t, "6.5.1\t2027-02-09\n", out)
}

func TestScheduleCommands(t *testing.T) {
	setNow(t, monday)
	cfg := writeConfig(t, true)

	out, err := run(t, cfg, "schedule-train", "7.0.0")
	require.NoError(t, err)
	assert.Contains(t, out, "7.0.0-M1")
	assert.Contains(t, out, "2027-01-12")
	assert.Contains(t, out, "2027-05-11")

	out, err = run(t, cfg, "schedule-train", "7.0.0")
	require.NoError(t, err)
	assert.Equal(t, "nothing to schedule in acme/widgets\n", out)

	out, err = run(t, cfg, "next-milestone", "7.0.0-SNAPSHOT")
	require.NoError(t, err)
	assert.Equal(t, "7.0.0-M1\n", out)

	out, err = run(t, cfg, "due-today", "7.0.0-M1")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	setNow(t, time.Date(2027, time.January, 12, 15, 0, 0, 0, time.UTC))
	out, err = run(t, cfg, "due-today", "7.0.0-M1")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, cfg, "no-open-issues", "7.0.0-M1")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	_, err = run(t, cfg, "due-today", "9.9.9")
	require.Error(t, err)
}

func TestScheduleNext_Patch(t *testing.T) {
	setNow(t, monday)
	cfg := writeConfig(t, true)

	out, err := run(t, cfg, "-o", "json", "schedule-next", "6.5.1-SNAPSHOT")
	require.NoError(t, err)

	var got []types.Milestone
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "6.5.1", got[0].Title)
	assert.Equal(t, types.NewDate(2026, time.December, 8), got[0].DueDate())

	out, err = run(t, cfg, "-o", "json", "schedule-next", "6.5.1-SNAPSHOT")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestTrackerCommandsRequireRepository(t *testing.T) {
	cfg := writeConfig(t, false)
	_, err := run(t, cfg, "schedule-train", "7.0.0")
	require.ErrorIs(t, err, app.ErrConfigValidation)
}

func TestRootFlags(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := run(t, cfg, "-o", "xml", "next-train")
	require.Error(t, err)

	_, err = run(t, cfg, "--week", "5", "next-train")
	require.ErrorIs(t, err, app.ErrConfigValidation)

	_, err = run(t, filepath.Join(t.TempDir(), "missing.toml"), "next-train")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCron(t *testing.T) {
	logger := app.NewLogger(slog.LevelError, io.Discard)

	err := runCron(context.Background(), "not a schedule", logger, func() { t.Fatal("job ran") })
	require.Error(t, err)

	var runs atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	require.NoError(t, runCron(ctx, "@every 1s", logger, func() { runs.Add(1) }))
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestWatch_RunsImmediately(t *testing.T) {
	setNow(t, monday)
	cfg := writeConfig(t, true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", cfg, "watch", "6.5.1-SNAPSHOT"})
	require.NoError(t, root.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "6.5.1")
	assert.Contains(t, out.String(), "2026-12-08")
}

func writeGitHubConfig(t *testing.T, url string) string {
	t.Helper()
	cfg := fmt.Sprintf(`
[repository]
owner = "acme"
name = "widgets"

[tracker]
kind = "github"
url = %q
token = "secret"

[log]
level = "error"
`, url)
	path := filepath.Join(t.TempDir(), "releasetrain.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestTriggerRelease(t *testing.T) {
	t.Setenv(app.TokenEnv, "")
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := run(t, writeGitHubConfig(t, srv.URL), "trigger-release", "--branch", "6.1.x")
	require.NoError(t, err)
	assert.Equal(t, "dispatched release-next-version.yml on 6.1.x\n", out)
	assert.Equal(t, "/repos/acme/widgets/actions/workflows/release-next-version.yml/dispatches", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, map[string]any{"ref": "6.1.x"}, gotBody)
}

func TestTriggerRelease_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := run(t, writeGitHubConfig(t, srv.URL), "trigger-release", "--branch", "main")
	var serr *tracker.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)

	_, err = run(t, writeGitHubConfig(t, srv.URL), "trigger-release")
	require.Error(t, err)

	_, err = run(t, writeConfig(t, true), "trigger-release", "--branch", "main")
	require.ErrorIs(t, err, app.ErrConfigValidation)
}

func TestNextSnapshotVersion(t *testing.T) {
	cfg := writeConfig(t, false)

	out, err := run(t, cfg, "next-snapshot-version", "6.1.0-M2")
	require.NoError(t, err)
	assert.Equal(t, "6.1.0-SNAPSHOT\n", out)

	out, err = run(t, cfg, "-o", "json", "next-snapshot-version", "6.1.0")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version": "6.1.1-SNAPSHOT"}`, out)

	_, err = run(t, cfg, "next-snapshot-version", "latest")
	require.Error(t, err)
}
