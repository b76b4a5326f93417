package metrics_test

import (
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/m-lab/nlgen/metrics"
)

func TestOperationsCountGauge(t *testing.T) {
	metrics.OperationsCount.WithLabelValues("testfamily").Set(3)

	var m dto.Metric
	if err := metrics.OperationsCount.WithLabelValues("testfamily").Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.GetGauge().GetValue() != 3 {
		t.Errorf("got %v, want 3", m.GetGauge().GetValue())
	}
}

func TestResolveErrorsCounterNameHasExpectedPrefix(t *testing.T) {
	metrics.ResolveErrors.WithLabelValues("build").Inc()
	var m dto.Metric
	if err := metrics.ResolveErrors.WithLabelValues("build").Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Errorf("expected counter to be incremented, got %v", m.GetCounter().GetValue())
	}
	if !strings.Contains(metrics.ResolveErrors.WithLabelValues("build").Desc().String(), `fqName: "nlgen_`) {
		t.Error("metric name should carry the nlgen_ prefix")
	}
}
