package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/errors"
	"github.com/cinegraph/cinegraph/graph"
	"github.com/cinegraph/cinegraph/render"
)

const testDatasetJSON = `{
	"source": "test",
	"movies": [
		{
			"id": 1, "title": "Alpha", "release_date": "1999-03-31",
			"genres": [{"id": 18, "name": "Drama"}],
			"cast": [{"id": 7, "name": "Ada"}],
			"keywords": [{"id": 100, "name": "heist"}]
		},
		{
			"id": 2, "title": "Beta", "release_date": "2004-07-01",
			"genres": [{"id": 18, "name": "Drama"}],
			"cast": [{"id": 7, "name": "Ada"}]
		},
		{
			"id": 3, "title": "Gamma", "release_date": "2010-01-01",
			"genres": [{"id": 35, "name": "Comedy"}],
			"cast": [{"id": 8, "name": "Ben"}]
		}
	]
}`

func newTestSession(t *testing.T) *Session {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // keep prefs writes out of the real home

	cfg := &Config{
		Viewport: ViewportConfig{Width: 1000, Height: 800},
		Graph:    GraphConfig{TopK: 6, LinkStrength: 0.5},
	}
	s, err := New(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func loadTestDataset(t *testing.T, s *Session) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(testDatasetJSON), 0o644))
	require.NoError(t, s.LoadFile(path))
}

func TestSessionLoadFile(t *testing.T) {
	s := newTestSession(t)
	loadTestDataset(t, s)

	ds := s.Dataset()
	require.NotNil(t, ds)
	assert.Len(t, ds.Movies, 3)
	assert.Equal(t, graph.ModeSimilarity, s.Mode(), "first run defaults to similarity")
}

func TestSessionLoadFileInvalidKeepsState(t *testing.T) {
	s := newTestSession(t)
	recorder := render.NewRecorder()
	s.SetRenderTarget(recorder)
	loadTestDataset(t, s)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{broken"), 0o644))

	err := s.LoadFile(bad)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidDatasetError(err))

	// Previous dataset survives and the user sees a message
	require.NotNil(t, s.Dataset())
	assert.Len(t, s.Dataset().Movies, 3)
	assert.Contains(t, recorder.Messages(), "Selected file is not a valid dataset")
}

func TestSessionLoadNoSources(t *testing.T) {
	s := newTestSession(t)
	recorder := render.NewRecorder()
	s.SetRenderTarget(recorder)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNoDataError(err))
	assert.Contains(t, recorder.Messages(), "No data available")
	assert.Nil(t, s.Dataset())
}

func TestSessionRunToConvergence(t *testing.T) {
	s := newTestSession(t)
	recorder := render.NewRecorder()
	s.SetRenderTarget(recorder)
	loadTestDataset(t, s)

	require.NoError(t, s.Run(context.Background()))
	assert.Greater(t, recorder.FrameCount(), 100, "each step renders a frame")

	frame := recorder.Frame()
	assert.Len(t, frame.Nodes, 3, "similarity mode runs over movie nodes only")
	// Alpha and Beta share Drama; Gamma is disconnected
	require.Len(t, frame.Links, 1)
	assert.Equal(t, graph.LinkSimilarity, frame.Links[0].Type)
}

func TestSessionSwitchMode(t *testing.T) {
	s := newTestSession(t)
	recorder := render.NewRecorder()
	s.SetRenderTarget(recorder)
	loadTestDataset(t, s)

	require.NoError(t, s.SwitchMode(graph.ModeCoActor))
	require.NoError(t, s.Run(context.Background()))
	frame := recorder.Frame()
	// Alpha and Beta share one actor at weight 0.5
	require.Len(t, frame.Links, 1)
	assert.Equal(t, 0.5, frame.Links[0].Weight)

	require.NoError(t, s.SwitchMode(graph.ModeTimeline))
	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, recorder.Frame().Links, "timeline mode carries no links")

	require.NoError(t, s.SwitchMode(graph.ModeEntity))
	require.NoError(t, s.Run(context.Background()))
	frame = recorder.Frame()
	// 3 movies + 2 genres + 2 people + 1 keyword
	assert.Len(t, frame.Nodes, 8)
	assert.NotEmpty(t, frame.Links)
}

func TestSessionSwitchModeUnknown(t *testing.T) {
	s := newTestSession(t)
	err := s.SwitchMode(graph.Mode("orbit"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownMode))
}

func TestSessionModePersistedAcrossSessions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{Viewport: ViewportConfig{Width: 1000, Height: 800}}
	s, err := New(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, s.SwitchMode(graph.ModeCoActor))
	s.Close()

	s2, err := New(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, graph.ModeCoActor, s2.Mode(), "layout mode survives restart")
}

func TestSessionTypeFilter(t *testing.T) {
	s := newTestSession(t)
	loadTestDataset(t, s)
	require.NoError(t, s.SwitchMode(graph.ModeEntity))

	require.NoError(t, s.SetTypeFilter(graph.NodeGenre))

	ds := s.Dataset()
	entity := s.entity
	require.NotNil(t, ds)
	for _, n := range entity.Nodes {
		switch n.Type {
		case graph.NodeMovie, graph.NodeGenre:
			assert.True(t, n.Visible, "node %s should stay visible", n.ID)
		default:
			assert.False(t, n.Visible, "node %s should be filtered out", n.ID)
		}
	}
	for _, l := range entity.Links {
		if l.Type == graph.LinkGenre {
			assert.False(t, l.Hidden)
		} else {
			assert.True(t, l.Hidden, "link %s-%s should hide under genre filter", l.Source, l.Target)
		}
	}

	// Clearing restores everything without a rebuild
	require.NoError(t, s.SetTypeFilter(""))
	for _, n := range entity.Nodes {
		assert.True(t, n.Visible)
	}
	for _, l := range entity.Links {
		assert.False(t, l.Hidden)
	}
}

func TestSessionTypeFilterUnknown(t *testing.T) {
	s := newTestSession(t)
	require.Error(t, s.SetTypeFilter(graph.NodeType("studio")))
}

func TestSessionLinkCacheReusedAcrossModeSwitches(t *testing.T) {
	s := newTestSession(t)
	loadTestDataset(t, s)

	require.NoError(t, s.SwitchMode(graph.ModeCoActor))
	first, ok := s.linkCache.Get(graph.ModeCoActor)
	require.True(t, ok)

	require.NoError(t, s.SwitchMode(graph.ModeTimeline))
	require.NoError(t, s.SwitchMode(graph.ModeCoActor))

	second, ok := s.linkCache.Get(graph.ModeCoActor)
	require.True(t, ok)
	assert.Equal(t, len(first), len(second))
	if len(first) > 0 {
		assert.Same(t, first[0], second[0], "cached links must be replayed, not recomputed")
	}
}

func TestSessionZoomToFitBeforeLoad(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.ZoomToFit(), "no dataset, nothing to frame")
}

func TestSessionZoomToFitAfterRun(t *testing.T) {
	s := newTestSession(t)
	loadTestDataset(t, s)
	require.NoError(t, s.Run(context.Background()))

	assert.True(t, s.ZoomToFit())
	tr := s.ViewTransform()
	assert.Greater(t, tr.K, 0.0)
}

func TestSessionDragPinsNode(t *testing.T) {
	s := newTestSession(t)
	loadTestDataset(t, s)

	s.DragStart("movie-1")
	s.Drag(250, 250)
	s.Step()

	frame := s.engine.Simulation().Nodes()
	var pinned *struct{ X, Y float64 }
	for _, n := range frame {
		if n.ID == "movie-1" {
			pinned = &struct{ X, Y float64 }{n.X, n.Y}
			require.NotNil(t, n.FX, "dragged node must be pinned")
		}
	}
	require.NotNil(t, pinned)
	assert.Equal(t, 250.0, pinned.X)
	assert.Equal(t, 250.0, pinned.Y)

	s.DragEnd()
	for _, n := range frame {
		if n.ID == "movie-1" {
			assert.Nil(t, n.FX, "pin must release on drag end")
		}
	}
}
