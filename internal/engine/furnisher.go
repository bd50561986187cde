package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"

	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/room"
)

var (
	// ErrUnknownFittingModel is returned when a requested model id is not in
	// the catalog.
	ErrUnknownFittingModel = errors.New("unknown fitting model")
	// ErrNilRoom is returned when Generate is called without a room.
	ErrNilRoom = errors.New("room is nil")
)

// Result is the outcome of one placement request. Placements is either
// complete, one per requested model in request order, or empty.
type Result struct {
	Placements  []model.FittingPlacement `json:"placements"`
	Diagnostics []Diagnostic             `json:"diagnostics,omitempty"`
	Stats       SearchStats              `json:"stats"`
	Seed        int64                    `json:"seed"`
}

// Complete reports whether the request produced a layout.
func (r Result) Complete() bool { return len(r.Placements) > 0 }

// DiagnosticStrings renders every diagnostic for storage in a layout.
func (r Result) DiagnosticStrings() []string {
	out := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = d.String()
	}
	return out
}

// Option configures a Furnisher.
type Option func(*Furnisher)

// WithLogger sets the logger used for progress output.
func WithLogger(log logr.Logger) Option {
	return func(f *Furnisher) { f.log = log }
}

// Furnisher places fittings from a catalog into rooms. It holds no per
// request state and is safe for concurrent use as long as the catalog is
// not modified.
type Furnisher struct {
	catalog  *model.Catalog
	settings model.Settings
	log      logr.Logger
}

func New(catalog *model.Catalog, settings model.Settings, opts ...Option) *Furnisher {
	f := &Furnisher{catalog: catalog, settings: settings, log: logr.Discard()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Furnisher) Settings() model.Settings { return f.settings }
func (f *Furnisher) Catalog() *model.Catalog  { return f.catalog }

// GeneratePlacements places the requested models in r and returns only the
// placements. An empty slice means no layout was found.
func (f *Furnisher) GeneratePlacements(r *room.Room, modelIDs []string, seed int64) ([]model.FittingPlacement, error) {
	res, err := f.Generate(r, modelIDs, seed)
	if err != nil {
		return nil, err
	}
	return res.Placements, nil
}

// GenerateInEmptyRoom places the requested models in a bare rectangular room.
func (f *Furnisher) GenerateInEmptyRoom(width, depth, height float64, modelIDs []string, seed int64) (Result, error) {
	r, err := room.NewEmpty(width, depth, height, f.settings.CellSize)
	if err != nil {
		return Result{}, err
	}
	return f.Generate(r, modelIDs, seed)
}

// Generate places one fitting per requested model id in r. A seed of 0 falls
// back to the configured seed, and then to the clock. The caller's room is
// never modified.
func (f *Furnisher) Generate(r *room.Room, modelIDs []string, seed int64) (Result, error) {
	if r == nil {
		return Result{}, ErrNilRoom
	}
	models, err := f.lookupModels(modelIDs)
	if err != nil {
		return Result{}, err
	}

	if seed == 0 {
		seed = f.settings.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	res := Result{Placements: []model.FittingPlacement{}, Seed: seed}
	if len(models) == 0 {
		return res, nil
	}

	rng := rand.New(rand.NewSource(seed))
	s := newSession(f.catalog, models, rng)
	s.resolve()
	units := s.liveUnits()

	var empty *room.Room
	if f.settings.StaticPrefilter {
		empty = r.Clone()
	}
	for _, u := range units {
		id := u.Members()[0].Model.ID
		trim := u.SetDomain(r)
		if trim.Conflict {
			s.report(DiagWallConflict, id, "contradictory wall constraints dropped")
		}
		u.shuffleDomain(rng)
		if empty != nil {
			prefilter(u, empty)
		}
	}

	for _, u := range units {
		if len(u.domain) == 0 {
			s.report(DiagEmptyDomain, u.Members()[0].Model.ID,
				"no candidate position fits %d fitting(s) of %.2fx%.2f m", len(u.members), u.XLength(), u.YLength())
			res.Diagnostics = s.diags
			res.Stats.Units = len(units)
			f.log.V(1).Info("no layout", "reason", "empty domain", "seed", seed)
			return res, nil
		}
	}

	if f.settings.OrderByDomainSize {
		sort.SliceStable(units, func(i, j int) bool { return len(units[i].domain) < len(units[j].domain) })
	}

	search := newSearcher(r.Clone(), units, f.settings.SearchLimit)
	ok := search.run()
	res.Stats = search.stats
	switch {
	case ok:
		for _, fit := range s.fittings {
			res.Placements = append(res.Placements, fit.Placement())
		}
	case search.aborted:
		s.report(DiagSearchLimit, "", "search stopped after %d candidates", search.stats.Candidates)
	default:
		s.report(DiagNoLayout, "", "no combination of candidates fits the room")
	}
	res.Diagnostics = s.diags

	f.log.V(1).Info("generated layout",
		"seed", seed,
		"fittings", len(models),
		"units", len(units),
		"placed", len(res.Placements),
		"candidates", res.Stats.Candidates,
		"backtracks", res.Stats.Backtracks,
		"diagnostics", len(res.Diagnostics))
	return res, nil
}

func (f *Furnisher) lookupModels(ids []string) ([]*model.FittingModel, error) {
	models := make([]*model.FittingModel, 0, len(ids))
	var errs error
	for _, id := range ids {
		m, ok := f.catalog.FittingModel(id)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrUnknownFittingModel, id))
			continue
		}
		models = append(models, m)
	}
	if errs != nil {
		return nil, errs
	}
	return models, nil
}
