package queue

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "syncbuf"
	metricsSubsystem = "queue"
)

// Metrics exports queue activity to Prometheus. One Metrics value may be
// shared by several queues, which then report under the same label.
type Metrics struct {
	pushes    prometheus.Counter
	pops      prometheus.Counter
	rejected  prometheus.Counter
	timeouts  prometheus.Counter
	cancelled prometheus.Counter
	size      prometheus.Gauge
}

// NewMetrics creates the queue collectors labelled with name and registers
// them with reg.
func NewMetrics(reg prometheus.Registerer, name string) (*Metrics, error) {
	labels := prometheus.Labels{"queue": name}
	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &Metrics{
		pushes:    counter("pushes_total", "Total number of items inserted"),
		pops:      counter("pops_total", "Total number of items removed"),
		rejected:  counter("rejected_total", "Total number of non-blocking inserts refused because the queue was full"),
		timeouts:  counter("timeouts_total", "Total number of timed waits that expired"),
		cancelled: counter("cancelled_total", "Total number of waits aborted by their continue predicate"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "size",
			Help:        "Current number of queued items",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{m.pushes, m.pops, m.rejected, m.timeouts, m.cancelled, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(err, "register metrics for queue %q", name)
		}
	}
	return m, nil
}

// The record helpers accept a nil receiver so queues without metrics pay
// only for the nil check.

func (m *Metrics) recordPush(size int) {
	if m == nil {
		return
	}
	m.pushes.Inc()
	m.size.Set(float64(size))
}

func (m *Metrics) recordPop(size int) {
	if m == nil {
		return
	}
	m.pops.Inc()
	m.size.Set(float64(size))
}

func (m *Metrics) recordReject() {
	if m != nil {
		m.rejected.Inc()
	}
}

func (m *Metrics) recordTimeout() {
	if m != nil {
		m.timeouts.Inc()
	}
}

func (m *Metrics) recordCancel() {
	if m != nil {
		m.cancelled.Inc()
	}
}
