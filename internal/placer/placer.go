package placer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/allcolors/internal/canvas"
	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/evaluator"
	"github.com/ironsheep/allcolors/internal/geometry"
)

// State is the lifecycle stage of a Placer.
type State int

const (
	StateInit State = iota
	StateGrowing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateGrowing:
		return "growing"
	case StateDone:
		return "done"
	default:
		return "init"
	}
}

// ErrAlreadyRun is returned when Run is called on a placer that has left
// StateInit.
var ErrAlreadyRun = errors.New("placer already run")

// parallelThreshold is the smallest open set worth splitting across workers.
var parallelThreshold = 512

// Progress reports how far a run has come.
type Progress struct {
	Placed   int           `json:"placed"`
	Total    int           `json:"total"`
	Frontier int           `json:"frontier"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Options configures a Placer.
type Options struct {
	// Bits is the number of bits per color channel (1-8).
	Bits int

	// Strict sizes the canvas to exactly hold every color and seeds the
	// first placement at a random position. Otherwise the canvas is
	// oversized and the first color goes to the center.
	Strict bool

	// Seed drives both the color shuffle and the strict-mode seed point.
	Seed int64

	// Evaluator scores candidate positions. Defaults to evaluator.Default.
	Evaluator evaluator.Evaluator

	// Workers splits each open-set scan across this many goroutines.
	// Values below 2 scan serially. Output is identical either way.
	Workers int

	// BlackIsUnset ignores placed black neighbors while scoring, matching
	// generators that use packed 0 as the "empty" marker.
	BlackIsUnset bool

	// Progress, if set, is called every ProgressEvery placements and once
	// when the run completes.
	Progress      func(Progress)
	ProgressEvery int
}

// Result describes a finished run.
type Result struct {
	Canvas      *canvas.Canvas `json:"-"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Colors      int            `json:"colors"`
	Bits        int            `json:"bits"`
	Strict      bool           `json:"strict"`
	Seed        int64          `json:"seed"`
	Evaluator   string         `json:"evaluator"`
	Start       geometry.Pixel `json:"start"`
	MaxFrontier int            `json:"max_frontier"`
	Duration    time.Duration  `json:"duration"`
}

// Placer grows an all-colors image outward from a seed point.
//
// A Placer runs once: New prepares the canvas, Run shuffles the color space
// and places every color at the open position where the evaluator scores it
// lowest. Ties go to the position that comes first in row-major order, so a
// run is fully determined by its options.
type Placer struct {
	opts  Options
	eval  evaluator.Evaluator
	rng   *rand.Rand
	state State

	canvas *canvas.Canvas
	open   *frontier
	closed int

	width, height int
}

// New validates opts and prepares an empty canvas.
func New(opts Options) (*Placer, error) {
	if err := colorspace.ValidateBits(opts.Bits); err != nil {
		return nil, err
	}

	eval := opts.Evaluator
	if eval == nil {
		var err error
		if eval, err = evaluator.Lookup(evaluator.Default); err != nil {
			return nil, err
		}
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Workers > runtime.NumCPU()*4 {
		opts.Workers = runtime.NumCPU() * 4
	}

	w, h := colorspace.Dimensions(opts.Bits, opts.Strict)
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = max(1, colorspace.Count(opts.Bits)/100)
	}

	return &Placer{
		opts:   opts,
		eval:   eval,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		canvas: canvas.New(w, h),
		open:   newFrontier(),
		width:  w,
		height: h,
	}, nil
}

// State returns the current lifecycle stage.
func (p *Placer) State() State { return p.state }

// Canvas returns the canvas being filled.
func (p *Placer) Canvas() *canvas.Canvas { return p.canvas }

// OpenLen returns the size of the frontier.
func (p *Placer) OpenLen() int { return p.open.Len() }

// ClosedLen returns the number of placed pixels.
func (p *Placer) ClosedLen() int { return p.closed }

// InOpen reports whether px is on the frontier.
func (p *Placer) InOpen(px geometry.Pixel) bool { return p.open.Contains(px) }

// Open returns the frontier in row-major order.
func (p *Placer) Open() []geometry.Pixel { return p.open.Sorted() }

// Run places every color and returns the result. It stops early with the
// context's error if ctx is cancelled; the canvas then holds a partial image.
func (p *Placer) Run(ctx context.Context) (*Result, error) {
	if p.state != StateInit {
		return nil, ErrAlreadyRun
	}
	start := time.Now()

	colors, err := colorspace.All(p.opts.Bits)
	if err != nil {
		return nil, err
	}
	colorspace.Shuffle(colors, p.rng)

	logger := log.WithFields(log.Fields{
		"bits":      p.opts.Bits,
		"strict":    p.opts.Strict,
		"evaluator": p.eval.Name(),
		"seed":      p.opts.Seed,
		"canvas":    fmt.Sprintf("%dx%d", p.width, p.height),
		"workers":   p.opts.Workers,
	})
	logger.Debug("placement started")

	p.state = StateGrowing
	res := &Result{
		Canvas:    p.canvas,
		Width:     p.width,
		Height:    p.height,
		Colors:    len(colors),
		Bits:      p.opts.Bits,
		Strict:    p.opts.Strict,
		Seed:      p.opts.Seed,
		Evaluator: p.eval.Name(),
	}

	s := newScanner(p)
	for i, c := range colors {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("placement interrupted after %d of %d colors: %w", i, len(colors), err)
		}

		var target geometry.Pixel
		if p.open.Len() == 0 {
			target = p.seedPoint()
			if i == 0 {
				res.Start = target
			}
		} else {
			target = s.best(c)
		}

		if err := p.place(target, c); err != nil {
			return nil, err
		}
		res.MaxFrontier = max(res.MaxFrontier, p.open.Len())

		if p.opts.Progress != nil && (i+1)%p.opts.ProgressEvery == 0 && i+1 < len(colors) {
			p.opts.Progress(Progress{Placed: i + 1, Total: len(colors), Frontier: p.open.Len(), Elapsed: time.Since(start)})
		}
	}

	p.state = StateDone
	res.Duration = time.Since(start)
	if p.opts.Progress != nil {
		p.opts.Progress(Progress{Placed: len(colors), Total: len(colors), Frontier: p.open.Len(), Elapsed: res.Duration})
	}
	logger.WithField("duration", res.Duration).Debug("placement finished")

	return res, nil
}

// seedPoint picks the position for a placement with an empty frontier.
func (p *Placer) seedPoint() geometry.Pixel {
	if p.opts.Strict {
		x := p.rng.Intn(p.width)
		y := p.rng.Intn(p.height)
		return geometry.Pixel{X: x, Y: y}
	}
	return geometry.Pixel{X: p.width / 2, Y: p.height / 2}
}

// place writes c at px, moves px from open to closed and opens its unplaced
// neighbors.
func (p *Placer) place(px geometry.Pixel, c colorspace.Color) error {
	if err := p.canvas.Place(px, c); err != nil {
		return err
	}
	p.open.Remove(px)
	p.closed++

	var buf [8]geometry.Pixel
	for _, n := range geometry.AppendNeighbors(buf[:0], px, p.width, p.height) {
		if !p.canvas.IsPlaced(n) {
			p.open.Add(n)
		}
	}
	return nil
}

// candidate is a scored open position.
type candidate struct {
	px    geometry.Pixel
	score int
	ok    bool
}

// better reports whether a beats b: lower score, then row-major position.
func (a candidate) better(b candidate) bool {
	if !b.ok {
		return a.ok
	}
	if !a.ok {
		return false
	}
	if a.score != b.score {
		return a.score < b.score
	}
	return a.px.Less(b.px)
}

// scanner evaluates the open set. Each worker owns its scratch buffers.
type scanner struct {
	p       *Placer
	buffers []scratch
}

type scratch struct {
	neighbors []geometry.Pixel
	colors    []colorspace.Color
}

func newScanner(p *Placer) *scanner {
	s := &scanner{p: p, buffers: make([]scratch, p.opts.Workers)}
	for i := range s.buffers {
		s.buffers[i] = scratch{
			neighbors: make([]geometry.Pixel, 0, 8),
			colors:    make([]colorspace.Color, 0, 8),
		}
	}
	return s
}

// best returns the open position where c scores lowest.
func (s *scanner) best(c colorspace.Color) geometry.Pixel {
	items := s.p.open.items
	workers := s.p.opts.Workers
	if workers < 2 || len(items) < parallelThreshold {
		return s.scan(c, items, &s.buffers[0]).px
	}

	chunk := (len(items) + workers - 1) / workers
	results := make([]candidate, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(items) {
			break
		}
		hi := min(lo+chunk, len(items))
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			results[w] = s.scan(c, items[lo:hi], &s.buffers[w])
		}(w, lo, hi)
	}
	wg.Wait()

	winner := candidate{}
	for _, r := range results {
		if r.better(winner) {
			winner = r
		}
	}
	return winner.px
}

func (s *scanner) scan(c colorspace.Color, items []geometry.Pixel, buf *scratch) candidate {
	p := s.p
	winner := candidate{score: math.MaxInt}
	for _, px := range items {
		buf.neighbors = geometry.AppendNeighbors(buf.neighbors[:0], px, p.width, p.height)
		buf.colors = buf.colors[:0]
		for _, n := range buf.neighbors {
			col, ok := p.canvas.Get(n)
			if !ok || (p.opts.BlackIsUnset && col == 0) {
				continue
			}
			buf.colors = append(buf.colors, col)
		}

		cand := candidate{px: px, score: p.eval.Evaluate(c, buf.colors), ok: true}
		if cand.better(winner) {
			winner = cand
		}
	}
	return winner
}
