package graph

import (
	"fmt"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// parallelEvalThreshold is the child count at or above which Parallel fans
// children out across goroutines. Freeverb's 8-comb bank sits right at
// the edge of where that pays for itself; smaller Parallel instances run
// the sequential loop.
const parallelEvalThreshold = 8

// Parallel evaluates every child at the same input and combines the N
// results into a scalar via a fixed linear transform lt: output = lt . results.
type Parallel struct {
	children []Advancer
	lt       []float64

	results []float64
	scratch []float64
}

// NewParallel returns a Parallel composer. len(lt) must equal len(children).
func NewParallel(children []Advancer, lt []float64) (*Parallel, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("graph: parallel requires at least one child")
	}
	if len(lt) != len(children) {
		return nil, fmt.Errorf("graph: parallel requires len(lt) == len(children), got %d and %d", len(lt), len(children))
	}

	return &Parallel{
		children: append([]Advancer(nil), children...),
		lt:       append([]float64(nil), lt...),
		results:  make([]float64, len(children)),
		scratch:  make([]float64, len(children)),
	}, nil
}

// Advance implements Advancer.
func (p *Parallel) Advance(x float64) float64 {
	if len(p.children) >= parallelEvalThreshold {
		var wg sync.WaitGroup
		wg.Add(len(p.children))
		for i, child := range p.children {
			go func(i int, child Advancer) {
				defer wg.Done()
				p.results[i] = child.Advance(x)
			}(i, child)
		}
		wg.Wait()
	} else {
		for i, child := range p.children {
			p.results[i] = child.Advance(x)
		}
	}

	vecmath.MulBlock(p.scratch, p.results, p.lt)

	sum := 0.0
	for _, v := range p.scratch {
		sum += v
	}
	return sum
}

// Len returns the number of children.
func (p *Parallel) Len() int { return len(p.children) }
