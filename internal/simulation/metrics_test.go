package simulation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/jiggle/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	res, err := NewRunner(nil, nil).WithMetrics(m).Run(context.Background(), Scenario{
		Name:  "metered",
		Model: models.Uniform,
		Steps: 300,
		Seed:  8,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	accepted := testutil.ToFloat64(m.Transitions.WithLabelValues("metered", "accepted"))
	rejected := testutil.ToFloat64(m.Transitions.WithLabelValues("metered", "rejected"))
	if int(accepted) != res.Accepted || int(rejected) != res.Rejected {
		t.Errorf("metrics accepted/rejected = %v/%v, result %d/%d", accepted, rejected, res.Accepted, res.Rejected)
	}

	// Uniform(0, 1) has density 1 everywhere on its support.
	if lp := testutil.ToFloat64(m.LogProb.WithLabelValues("metered")); math.Abs(lp) > 1e-12 {
		t.Errorf("log probability gauge = %v, want 0", lp)
	}
	if n := testutil.CollectAndCount(m.NewSites); n != 0 {
		t.Errorf("new sites series = %d, want 0 for a fixed-structure model", n)
	}
}

func TestMetrics_Textfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	if _, err := NewRunner(nil, nil).WithMetrics(m).Run(context.Background(), Scenario{
		Name:  "file",
		Model: models.Uniform,
		Steps: 10,
		Seed:  1,
	}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "jiggle.prom")
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		t.Fatalf("WriteToTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `jiggle_transitions_total{result="accepted",run="file"}`) &&
		!strings.Contains(string(b), `jiggle_transitions_total{result="rejected",run="file"}`) {
		t.Errorf("textfile missing transition series:\n%s", b)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	if _, err := NewRunner(nil, nil).WithMetrics(m).Run(context.Background(), Scenario{
		Name:  "nil",
		Model: models.Uniform,
		Steps: 5,
		Seed:  1,
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
