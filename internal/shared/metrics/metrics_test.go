package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var out strings.Builder
	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
		out.WriteString(formatFloat(snap.buckets[i]) + "=" + formatFloat(float64(cumulative)) + " ")
	}
	if got := strings.TrimSpace(out.String()); got != "10=1 100=2" {
		t.Fatalf("unexpected cumulative buckets: %s", got)
	}
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected totals: count=%d sum=%v", snap.count, snap.sum)
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	before := ResumeSaved.Value()
	ResumeSaved.Inc()
	if ResumeSaved.Value() != before+1 {
		t.Fatalf("expected counter to increment")
	}
	out := Render()
	for _, want := range []string{
		"# TYPE resume_saved_total counter",
		"resume_asset_cleanup_failed_total",
		"http_request_duration_ms_bucket{le=\"+Inf\"}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
