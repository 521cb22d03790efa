package reactive_test

import (
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := reactive.NewMetrics(reg, reactive.WithNamespace("test"))
	host := newFakeHost()
	host.addWidget(1, 9)
	rt := reactive.NewRuntime(reactive.WithMetrics(m), reactive.WithHost(host.host()))

	a := reactive.NewSignal(rt, 0)
	reactive.NewEffect(rt, func() {
		a.Get(rt)
	})
	tmp := reactive.NewSignal(rt, "tmp")
	tmp.Drop()

	a.Set(rt, 1)
	rt.QueueWidgetUpdate(1, setText("x"))
	rt.QueueWidgetUpdate(2, setText("missing"))
	rt.Flush()

	families := gather(t, reg)

	require.Contains(t, families, "test_reactive_flushes_total")
	assert.Equal(t, 1.0, families["test_reactive_flushes_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 2.0, families["test_reactive_nodes"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.0, families["test_reactive_node_removals_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, families["test_reactive_layout_requests_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, uint64(1), families["test_reactive_flush_duration_seconds"].GetMetric()[0].GetHistogram().GetSampleCount())

	tasks := map[string]float64{}
	for _, metric := range families["test_reactive_tasks_total"].GetMetric() {
		var kind, outcome string
		for _, l := range metric.GetLabel() {
			switch l.GetName() {
			case "kind":
				kind = l.GetValue()
			case "outcome":
				outcome = l.GetValue()
			}
		}
		tasks[kind+"/"+outcome] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{
		"run_effect/ran":        1,
		"update_widget/ran":     1,
		"update_widget/skipped": 1,
	}, tasks)
}

func TestNilMetrics(t *testing.T) {
	rt := reactive.NewRuntime()
	a := reactive.NewSignal(rt, 0)
	a.Drop()
	assert.NotPanics(t, rt.Flush)
}
