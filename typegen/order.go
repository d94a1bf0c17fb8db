package typegen

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
	"go.uber.org/zap"
)

// Orderer linearizes a DependencyGraph so that every dependency comes
// before the shapes that depend on it.
//
// Traversal is a post-order depth-first search seeded from the graph's keys
// in insertion order, with dependencies visited in list order. The seed order
// decides where independent shapes land, so the result is the same on every
// run for the same graph. The search keeps an explicit work stack, so schema
// depth is not bounded by the goroutine stack.
//
// A shape that depends on itself is fine: a class may refer to itself. Any
// longer cycle fails with ErrCyclicShapes unless AllowCycles is set, in
// which case the traversal order is returned as is (some dependency in the
// cycle will follow its dependent) and the cycle is logged.
type Orderer struct {
	AllowCycles bool
	Logger      *zap.SugaredLogger
}

// TopologicalOrder orders g with cycle rejection enabled.
func TopologicalOrder(g *DependencyGraph) ([]string, error) {
	return Orderer{}.Order(g)
}

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

type frame struct {
	name string
	deps []string
	next int
}

// Order returns every key of g exactly once, plus any dependency that is not
// a key (an implicit leaf), in dependency order.
func (o Orderer) Order(g *DependencyGraph) ([]string, error) {
	log := o.Logger
	if log == nil {
		log = logger.ComponentLogger("typegen.order")
	}

	state := make(map[string]visitState, g.Len())
	order := make([]string, 0, g.Len())

	for _, seed := range g.Names() {
		if state[seed] != unvisited {
			continue
		}

		state[seed] = inProgress
		stack := []frame{{name: seed, deps: g.Dependencies(seed)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(top.deps) {
				dep := top.deps[top.next]
				top.next++

				switch state[dep] {
				case unvisited:
					state[dep] = inProgress
					stack = append(stack, frame{name: dep, deps: g.Dependencies(dep)})
				case inProgress:
					if dep == top.name {
						continue
					}
					path := cyclePath(stack, dep)
					if !o.AllowCycles {
						return nil, errors.NewCycleError(path)
					}
					log.Warnw("Cyclic shape reference, order is partial for this cycle",
						logger.FieldCycle, path)
				}
				continue
			}

			order = append(order, top.name)
			state[top.name] = done
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}

// cyclePath returns the stack segment from dep to the top, closed with dep.
func cyclePath(stack []frame, dep string) []string {
	start := 0
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].name == dep {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.name)
	}
	return append(path, dep)
}
