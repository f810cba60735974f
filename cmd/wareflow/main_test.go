package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/persistence"
)

const scenarioPath = "../../scenario/testdata/two_districts.yaml"

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), out.String())

	return out.String()
}

func writeConfig(t *testing.T) (path, dir string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "wareflow.yaml")
	body := "logging:\n  level: error\n" +
		"sync:\n  path: " + filepath.Join(dir, "sync.zst") + "\n" +
		"store:\n  path: " + filepath.Join(dir, "runs.db") + "\n" +
		"metrics:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path, dir
}

var (
	digestLine = regexp.MustCompile(`Digest:\s+([0-9a-f]{64})`)
	runIDLine  = regexp.MustCompile(`Run ID:\s+([0-9a-f-]{36})`)
)

func TestRun_DigestMatchesFile(t *testing.T) {
	conf, dir := writeConfig(t)
	metricsPath := filepath.Join(dir, "metrics.txt")

	out := execute(t, "--config", conf, "run", scenarioPath, "--metrics-out", metricsPath)
	assert.Contains(t, out, "Game time:  400")
	assert.Contains(t, out, "near             log          0/3  open")
	live := digestLine.FindStringSubmatch(out)
	require.Len(t, live, 2)

	replay := digestLine.FindStringSubmatch(execute(t, "--config", conf, "digest", filepath.Join(dir, "sync.zst")))
	require.Len(t, replay, 2)
	assert.Equal(t, live[1], replay[1])

	raw, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "wareflow_economy_balances_total")

	runs := execute(t, "--config", conf, "runs")
	assert.Regexp(t, `^\* [0-9a-f-]{36}  saved at 400 `, runs)
}

func TestRun_SameScenarioSameDigest(t *testing.T) {
	a := digestLine.FindStringSubmatch(execute(t, "run", scenarioPath))
	b := digestLine.FindStringSubmatch(execute(t, "run", scenarioPath))
	require.Len(t, a, 2)
	assert.Equal(t, a[1], b[1])
}

func TestStress(t *testing.T) {
	out := execute(t, "stress", "--rows", "4", "--cols", "5", "--requests", "10", "--until", "5000")
	assert.Contains(t, out, "Flags/Roads:  20/31")
}

func TestRun_ResumeSavedRun(t *testing.T) {
	conf, _ := writeConfig(t)

	first := runIDLine.FindStringSubmatch(execute(t, "--config", conf, "run", scenarioPath))
	require.Len(t, first, 2)

	out := execute(t, "--config", conf, "run", scenarioPath, "--resume", first[1])
	assert.Contains(t, out, "✓ Restored run "+first[1]+" (saved at 400)")
	assert.Contains(t, out, "Game time:  400")
	second := runIDLine.FindStringSubmatch(out)
	require.Len(t, second, 2)
	assert.NotEqual(t, first[1], second[1])
}

func TestRun_ResumeUnknownRun(t *testing.T) {
	conf, _ := writeConfig(t)
	root := NewRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--config", conf, "run", scenarioPath, "--resume", "00000000-0000-0000-0000-000000000001"})

	assert.ErrorIs(t, root.Execute(), persistence.ErrRunNotFound)
}

func TestRun_FailedRunLeavesReadableSyncFile(t *testing.T) {
	conf, dir := writeConfig(t)
	bad := filepath.Join(dir, "bad.yaml")
	body := "catalog: {wares: [{name: log}]}\n" +
		"flags: [{name: a, x: 0, y: 0}]\n" +
		"until: 100\n" +
		"events: [{at: 10, remove_warehouse: nowhere}]\n"
	require.NoError(t, os.WriteFile(bad, []byte(body), 0o644))

	root := NewRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--config", conf, "run", bad})
	require.Error(t, root.Execute())

	out := execute(t, "--config", conf, "digest", filepath.Join(dir, "sync.zst"))
	assert.Regexp(t, digestLine, out)
}
