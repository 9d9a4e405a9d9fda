// Package session ties a dataset, its derived graphs, the layout engine, and
// the viewport into one unit of interactive state. Every dataset load or
// layout-mode switch replaces the derived state as a whole; filters and
// strength changes mutate the current state in place without recomputation.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/dataset"
	"github.com/cinegraph/cinegraph/errors"
	"github.com/cinegraph/cinegraph/graph"
	"github.com/cinegraph/cinegraph/layout"
	"github.com/cinegraph/cinegraph/viewport"
)

// RenderTarget receives frames and user-facing messages. The HTML exporter
// and the CLI both implement it; tests use the nop target.
type RenderTarget interface {
	RenderFrame(nodes []*graph.Node, links []*graph.Link, t viewport.Transform)
	ShowMessage(text string)
}

type nopTarget struct{}

func (nopTarget) RenderFrame([]*graph.Node, []*graph.Link, viewport.Transform) {}
func (nopTarget) ShowMessage(string)                                           {}

// Session owns the active dataset and everything derived from it. All
// mutating methods take the session lock; the simulation itself is stepped
// from a single goroutine via Run.
type Session struct {
	ID string

	cfg       *Config
	logger    *zap.SugaredLogger
	loader    *dataset.Loader
	cache     *dataset.Cache
	prefsPath string
	target    RenderTarget

	mu         sync.Mutex
	ds         *dataset.Dataset
	entity     *graph.Graph
	movieNodes []*graph.Node
	linkCache  *graph.LinkCache
	engine     *layout.Engine
	view       *viewport.Viewport
	mode       graph.Mode
	filter     graph.NodeType
	dragging   *graph.Node
}

// New creates a session from configuration. The last used layout mode is
// restored from the preferences file; a missing or invalid file falls back
// to similarity.
func New(cfg *Config, logger *zap.SugaredLogger) (*Session, error) {
	var cache *dataset.Cache
	if cfg.Dataset.CachePath != "" {
		var err error
		cache, err = dataset.OpenCache(cfg.Dataset.CachePath, logger)
		if err != nil {
			logger.Warnw("Fetch cache unavailable, continuing without it", "error", err)
			cache = nil
		}
	}

	prefsPath := PrefsPath()
	prefs, err := LoadPrefs(prefsPath)
	if err != nil {
		logger.Warnw("Failed to load preferences, using defaults", "error", err)
		prefs = DefaultPrefs()
	}

	layoutCfg := layout.DefaultConfig()
	layoutCfg.Width = cfg.Viewport.Width
	layoutCfg.Height = cfg.Viewport.Height
	if cfg.Graph.LinkStrength > 0 {
		layoutCfg.BaseLinkStrength = cfg.Graph.LinkStrength
	}

	s := &Session{
		ID:        uuid.New().String(),
		cfg:       cfg,
		logger:    logger.Named("session"),
		loader:    dataset.NewLoader(cfg.Dataset.PrimaryURL, cfg.Dataset.FallbackPath, cache, logger),
		cache:     cache,
		prefsPath: prefsPath,
		target:    nopTarget{},
		linkCache: graph.NewLinkCache(),
		engine:    layout.NewEngine(layoutCfg, logger),
		view:      viewport.New(cfg.Viewport.Width, cfg.Viewport.Height),
		mode:      graph.Mode(prefs.LayoutMode),
	}
	return s, nil
}

// SetRenderTarget installs the frame sink. Nil restores the nop target.
func (s *Session) SetRenderTarget(t RenderTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == nil {
		t = nopTarget{}
	}
	s.target = t
}

// Mode returns the active layout mode.
func (s *Session) Mode() graph.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Dataset returns the loaded dataset, nil before the first successful load.
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds
}

// Load resolves a dataset from the configured sources and installs it. When
// every source fails the previous state is kept and the no-data message is
// surfaced through the render target.
func (s *Session) Load(ctx context.Context) error {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		if errors.IsNoDataError(err) {
			s.target.ShowMessage("No data available")
		}
		return err
	}
	s.install(ds)
	return nil
}

// LoadFile installs a dataset from a user-selected file. An unreadable or
// malformed file keeps the previous state.
func (s *Session) LoadFile(path string) error {
	ds, err := s.loader.LoadFile(path)
	if err != nil {
		if errors.IsInvalidDatasetError(err) {
			s.target.ShowMessage("Selected file is not a valid dataset")
		}
		return err
	}
	s.install(ds)
	return nil
}

// install replaces all derived state with structures built from ds, then
// re-enters the current layout mode over the fresh graph.
func (s *Session) install(ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ds = ds
	s.entity = graph.BuildEntityGraph(ds.Movies)
	s.movieNodes = graph.BuildMovieNodes(ds.Movies)
	s.linkCache = graph.NewLinkCache()
	s.filter = ""
	s.dragging = nil

	s.logger.Infow("Dataset installed",
		"movies", len(ds.Movies),
		"entity_nodes", len(s.entity.Nodes),
		"entity_links", len(s.entity.Links),
	)

	s.enterMode(s.mode, true)
	s.view.Reset()
}

// SwitchMode transitions the layout-mode state machine. Switching between
// the entity view and the movie-only views swaps the node set; within the
// movie-only family the simulation is reconfigured live.
func (s *Session) SwitchMode(mode graph.Mode) error {
	if !mode.Valid() {
		return errors.NewUnknownModeError(string(mode))
	}

	s.mu.Lock()
	prev := s.mode
	s.mode = mode
	if s.ds != nil {
		rebuild := (prev == graph.ModeEntity) != (mode == graph.ModeEntity) || s.engine.Simulation() == nil
		s.enterMode(mode, rebuild)
	}
	s.mu.Unlock()

	if err := SavePrefs(s.prefsPath, Prefs{LayoutMode: string(mode)}); err != nil {
		s.logger.Warnw("Failed to persist layout mode", "error", err)
	}
	return nil
}

// enterMode installs mode over the appropriate node set. Callers hold the
// session lock. rebuild forces a fresh simulation, used when the node set
// changes.
func (s *Session) enterMode(mode graph.Mode, rebuild bool) {
	nodes := s.nodesForMode(mode)
	if rebuild {
		s.engine.Configure(nodes)
		s.installConvergenceHook(nodes)
	}
	s.engine.SetMode(mode, s.linksForMode(mode))
	s.applyFilterLocked()
}

// installConvergenceHook zooms to fit once the simulation settles. A
// degenerate bounding box leaves the viewport untouched.
func (s *Session) installConvergenceHook(nodes []*graph.Node) {
	s.engine.Simulation().OnConverge(func() {
		if s.view.ZoomToFit(nodes) {
			s.renderLocked()
		}
	})
}

func (s *Session) nodesForMode(mode graph.Mode) []*graph.Node {
	if mode == graph.ModeEntity {
		return s.entity.Nodes
	}
	return s.movieNodes
}

// linksForMode computes (or replays from cache) the link set for mode.
// Indices are rebuilt on every computation; only the resulting links are
// cached, so repeated visits to a mode replay instantly.
func (s *Session) linksForMode(mode graph.Mode) []*graph.Link {
	switch mode {
	case graph.ModeSimilarity:
		return s.linkCache.GetOrCompute(mode, func() []*graph.Link {
			idx := graph.BuildFeatureIndex(s.movieNodes)
			adj := graph.SimilarityAdjacency(s.movieNodes, idx)
			return graph.TopKLinks(s.movieNodes, adj, s.topK(), graph.LinkSimilarity)
		})
	case graph.ModeCoActor:
		return s.linkCache.GetOrCompute(mode, func() []*graph.Link {
			idx := graph.BuildFeatureIndex(s.movieNodes)
			adj := graph.CoActorAdjacency(idx)
			return graph.TopKLinks(s.movieNodes, adj, s.topK(), graph.LinkCoActor)
		})
	case graph.ModeEntity:
		return s.entity.Links
	default: // timeline has no links
		return nil
	}
}

func (s *Session) topK() int {
	if s.cfg.Graph.TopK > 0 {
		return s.cfg.Graph.TopK
	}
	return graph.DefaultTopK
}

// SetLinkStrength adjusts edge attraction without recomputing any links.
// Inert in timeline mode.
func (s *Session) SetLinkStrength(strength float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetBaseStrength(strength)
}

// SetTypeFilter restricts the entity view to one satellite type, or "" for
// all. Filtering only toggles visibility; nothing is recomputed, and
// clearing the filter restores the full graph. Movie nodes stay visible
// throughout.
func (s *Session) SetTypeFilter(t graph.NodeType) error {
	switch t {
	case "", graph.NodeGenre, graph.NodePerson, graph.NodeKeyword:
	default:
		return errors.Newf("unknown node type filter: %q", t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = t
	s.applyFilterLocked()
	s.renderLocked()
	return nil
}

// Filter returns the active type filter, "" when unfiltered.
func (s *Session) Filter() graph.NodeType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

var filterLinkType = map[graph.NodeType]graph.LinkType{
	graph.NodeGenre:   graph.LinkGenre,
	graph.NodePerson:  graph.LinkCast,
	graph.NodeKeyword: graph.LinkKeyword,
}

func (s *Session) applyFilterLocked() {
	if s.entity == nil {
		return
	}
	for _, n := range s.entity.Nodes {
		n.Visible = s.filter == "" || n.Type == graph.NodeMovie || n.Type == s.filter
	}
	keep := filterLinkType[s.filter]
	for _, l := range s.entity.Links {
		l.Hidden = s.filter != "" && l.Type != keep
	}
}

// Step advances the simulation one tick and pushes a frame. Returns false
// once the simulation has converged.
func (s *Session) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine.Simulation() == nil {
		return false
	}
	active := s.engine.Simulation().Step()
	s.renderLocked()
	return active
}

// Run steps the simulation to convergence, rendering each frame, until the
// context is cancelled or alpha decays below the floor.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !s.Step() {
			return nil
		}
	}
}

// DragStart pins the node with the given ID and raises the simulation
// target energy so the layout responds while the drag lasts.
func (s *Session) DragStart(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds == nil || s.engine.Simulation() == nil {
		return
	}
	n := s.findNode(nodeID)
	if n == nil {
		return
	}
	s.dragging = n
	s.engine.Simulation().DragStart(n)
}

// Drag moves the pinned node to graph coordinates (x, y).
func (s *Session) Drag(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragging == nil {
		return
	}
	s.engine.Simulation().Drag(s.dragging, x, y)
}

// DragEnd releases the pinned node back to the simulation.
func (s *Session) DragEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragging == nil {
		return
	}
	s.engine.Simulation().DragEnd(s.dragging)
	s.dragging = nil
}

// Viewport controls.

func (s *Session) ZoomIn()  { s.withView((*viewport.Viewport).ZoomIn) }
func (s *Session) ZoomOut() { s.withView((*viewport.Viewport).ZoomOut) }
func (s *Session) ResetView() {
	s.withView((*viewport.Viewport).Reset)
}

// ZoomToFit frames the current node set. Reports whether the viewport
// changed; an empty or degenerate layout leaves it untouched.
func (s *Session) ZoomToFit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds == nil {
		return false
	}
	changed := s.view.ZoomToFit(s.nodesForMode(s.mode))
	if changed {
		s.renderLocked()
	}
	return changed
}

// Pan shifts the viewport by screen-space (dx, dy).
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Pan(dx, dy)
	s.renderLocked()
}

// ViewTransform returns the current viewport transform.
func (s *Session) ViewTransform() viewport.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Transform()
}

func (s *Session) withView(fn func(*viewport.Viewport)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.view)
	s.renderLocked()
}

func (s *Session) findNode(id string) *graph.Node {
	for _, n := range s.nodesForMode(s.mode) {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (s *Session) renderLocked() {
	if s.ds == nil {
		return
	}
	s.target.RenderFrame(s.nodesForMode(s.mode), s.engine.Links(), s.view.Transform())
}

// Close releases the fetch cache.
func (s *Session) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}
