// Package metrics instruments queue.Queue implementations with
// Prometheus counters.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/randomizedcoder/safe-ring/internal/queue"
)

// Instrumented decorates a Queue, counting every outcome of Push and Pop.
// It is as safe for concurrent use as the queue it wraps.
type Instrumented[T any] struct {
	q queue.Queue[T]

	pushes     prometheus.Counter
	fulls      prometheus.Counter
	pops       prometheus.Counter
	emptyPolls prometheus.Counter
}

var _ queue.Queue[byte] = (*Instrumented[byte])(nil)

// NewInstrumented wraps q and registers its collectors on reg under the
// given queue name label.
func NewInstrumented[T any](q queue.Queue[T], reg prometheus.Registerer, name string) (*Instrumented[T], error) {
	labels := prometheus.Labels{"queue": name}
	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "safering",
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
	}

	i := &Instrumented[T]{
		q:          q,
		pushes:     counter("push_total", "Successful pushes."),
		fulls:      counter("push_full_total", "Pushes rejected because the queue was full."),
		pops:       counter("pop_total", "Pops that returned a value."),
		emptyPolls: counter("pop_empty_total", "Pops that found the queue empty."),
	}
	length := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "safering",
		Name:        "length",
		Help:        "Items currently queued.",
		ConstLabels: labels,
	}, func() float64 { return float64(q.Len()) })

	collectors := []prometheus.Collector{i.pushes, i.fulls, i.pops, i.emptyPolls, length}
	for n, c := range collectors {
		if err := reg.Register(c); err != nil {
			// Leave reg as it was.
			for _, done := range collectors[:n] {
				reg.Unregister(done)
			}
			return nil, err
		}
	}
	return i, nil
}

// Push forwards to the wrapped queue.
func (i *Instrumented[T]) Push(v T) error {
	err := i.q.Push(v)
	switch {
	case err == nil:
		i.pushes.Inc()
	case errors.Is(err, queue.ErrFull):
		i.fulls.Inc()
	}
	return err
}

// Pop forwards to the wrapped queue.
func (i *Instrumented[T]) Pop() (T, bool) {
	v, ok := i.q.Pop()
	if ok {
		i.pops.Inc()
	} else {
		i.emptyPolls.Inc()
	}
	return v, ok
}

// Len returns the wrapped queue's length.
func (i *Instrumented[T]) Len() int { return i.q.Len() }

// Cap returns the wrapped queue's capacity.
func (i *Instrumented[T]) Cap() int { return i.q.Cap() }

// Snapshot gathers g and returns every counter and gauge value keyed by
// metric name. Series sharing a name are summed.
func Snapshot(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}
