package solver

import (
	"context"

	"github.com/alexiusacademia/gobiot/internal/physics"
	"github.com/alexiusacademia/gobiot/internal/wire"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solver evaluates the Biot-Savart law for a collection of wires.
//
// The zero configuration runs serially. With more than one worker the
// observation points are split into contiguous chunks; each point still
// accumulates its elements in the same order, so the result does not depend
// on the worker count.
type Solver struct {
	workers int
	logger  *zap.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers sets the number of goroutines sharing the observation points.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for per-wire diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Solver configured by opts.
func New(opts ...Option) *Solver {
	s := &Solver{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve returns the field of all wires at every point using a serial solver.
func Solve(wires *wire.Collection, points []r3.Vec) Field {
	f, _ := New().Solve(context.Background(), wires, points)
	return f
}

// Solve returns the field of all wires at every point. Each wire is solved
// on its own and the results are superposed in collection order.
func (s *Solver) Solve(ctx context.Context, wires *wire.Collection, points []r3.Vec) (Field, error) {
	total := make(Field, len(points))
	for _, w := range wires.Wires() {
		f, err := s.SolveWire(ctx, w, points)
		if err != nil {
			return nil, err
		}
		for i := range total {
			total[i] = total[i].Add(f[i])
		}
	}

	if bad := total.NonFinite(); len(bad) > 0 {
		s.logger.Warn("non-finite field samples; observation points may lie on a wire",
			zap.Int("count", len(bad)), zap.Int("first", bad[0]))
	}
	return total, nil
}

// element is one straight current element: its length vector and the
// midpoint used as its position.
type element struct {
	dl  r3.Vec
	mid r3.Vec
}

func newElement(from, to r3.Vec) element {
	return element{
		dl:  r3.Sub(to, from),
		mid: r3.Scale(0.5, r3.Add(from, to)),
	}
}

// elements returns the current elements of w.
//
// Segments are taken from their end vertex back to their start, so a wire
// solved on whole segments (circles) carries current against its vertex
// order. With a discretization length each segment is split by Discretize
// starting at that end vertex, and the pieces are paired back towards it,
// so a split wire carries current in vertex order. With a positive current
// the on-axis field of a circle, or of a square with a discretization
// length, points along the loop normal. A square on whole segments points
// the other way.
func elements(w *wire.Wire) []element {
	pts := w.Points()
	if len(pts) < 2 {
		return nil
	}

	elems := make([]element, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i], pts[i-1]
		if w.DL <= 0 {
			elems = append(elems, newElement(a, b))
			continue
		}
		sub := Discretize(a, b, w.DL)
		for k := 1; k < len(sub); k++ {
			elems = append(elems, newElement(sub[k], sub[k-1]))
		}
	}
	return elems
}

// SolveWire returns the field of a single wire at every point.
func (s *Solver) SolveWire(ctx context.Context, w *wire.Wire, points []r3.Vec) (Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current := w.EffectiveCurrent().Complex()
	elems := elements(w)
	out := make(Field, len(points))

	s.logger.Debug("solving wire",
		zap.String("wire", w.Name),
		zap.Stringer("shape", w.Shape),
		zap.Int("elements", len(elems)),
		zap.Int("points", len(points)),
		zap.Int("workers", s.workers))

	if s.workers <= 1 || len(points) < 2 {
		accumulate(out, points, 0, len(points), elems, current)
		return out, nil
	}

	chunk := (len(points) + s.workers - 1) / s.workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(points); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(points))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			accumulate(out, points, lo, hi, elems, current)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// accumulate adds the contribution of every element to out[lo:hi].
func accumulate(out Field, points []r3.Vec, lo, hi int, elems []element, current complex128) {
	for _, e := range elems {
		for j := lo; j < hi; j++ {
			out[j] = out[j].Add(contribution(e, points[j], current))
		}
	}
}

// contribution is the Biot-Savart field of one element at p:
//
//	dB = μ₀/4π · I · (dl × r) / |r|³,  r = p − midpoint
func contribution(e element, p r3.Vec, current complex128) Vec3C {
	r := r3.Sub(p, e.mid)
	mag := r3.Norm(r)
	db := r3.Scale(physics.BiotSavartFactor/(mag*mag*mag), r3.Cross(e.dl, r))
	return Vec3C{
		X: current * complex(db.X, 0),
		Y: current * complex(db.Y, 0),
		Z: current * complex(db.Z, 0),
	}
}
