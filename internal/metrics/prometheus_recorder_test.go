package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("convert", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("convert", ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.IncFileResult("markdown", ResultSuccess)
	pr.IncFileResult("markdown", ResultSuccess)
	pr.IncFileResult("asset", ResultFailed)
	pr.AddLinks(3, 1)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, pr.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `crumbler_file_results_total{kind="markdown",result="success"} 2`)
	assert.Contains(t, out, `crumbler_file_results_total{kind="asset",result="failed"} 1`)
	assert.Contains(t, out, `crumbler_links_total{result="rewritten"} 3`)
	assert.Contains(t, out, `crumbler_links_total{result="unresolved"} 1`)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("failed")

	path := filepath.Join(t.TempDir(), "crumbler.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `crumbler_build_outcomes_total{outcome="failed"} 1`)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("x", time.Second)
		pr.IncFileResult("markdown", ResultSuccess)
		pr.AddLinks(1, 1)
	})
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveBuildDuration(time.Second)
		r.IncBuildOutcome("success")
	})
}
