package workload

import (
	"fmt"
	"time"
)

// Report is the outcome of a Run.
type Report struct {
	// Produced holds every value pushed, producer by producer.
	Produced []byte

	// PerConsumer holds the values each consumer popped, in pop order.
	PerConsumer [][]byte

	PerProducer int
	FullRetries uint64
	EmptyPolls  uint64
	Elapsed     time.Duration
}

// Collected returns every popped value, consumer by consumer.
func (r *Report) Collected() []byte {
	var out []byte
	for _, seq := range r.PerConsumer {
		out = append(out, seq...)
	}
	return out
}

// Verify checks that the collected values are exactly the produced
// values as a multiset: nothing lost, duplicated or corrupted.
func (r *Report) Verify() error {
	collected := r.Collected()
	if len(collected) != len(r.Produced) {
		return fmt.Errorf("%w: produced %d values, collected %d",
			ErrConservation, len(r.Produced), len(collected))
	}

	var counts [MaxValues]int
	for _, v := range r.Produced {
		counts[v]++
	}
	for _, v := range collected {
		counts[v]--
	}
	for v, n := range counts {
		if n != 0 {
			return fmt.Errorf("%w: value %d count off by %d", ErrConservation, v, -n)
		}
	}
	return nil
}

// VerifyOrder checks FIFO order as seen by each consumer: values from
// one producer must appear in the order that producer pushed them.
//
// A consumer sees a subsequence of the global pop order, which equals
// the global push order, so this holds for any number of consumers.
func (r *Report) VerifyOrder() error {
	if r.PerProducer < 1 {
		return nil
	}
	for c, seq := range r.PerConsumer {
		last := map[int]int{}
		for _, v := range seq {
			p, j := int(v)/r.PerProducer, int(v)%r.PerProducer
			if prev, ok := last[p]; ok && j <= prev {
				return fmt.Errorf("%w: consumer %d saw producer %d value %d after %d",
					ErrConservation, c, p, j, prev)
			}
			last[p] = j
		}
	}
	return nil
}
