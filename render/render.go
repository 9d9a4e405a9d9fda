// Package render turns computed layouts into something a person can look
// at: a frame recorder for headless use and a self-contained interactive
// HTML export.
package render

import (
	"sync"

	"github.com/cinegraph/cinegraph/graph"
	"github.com/cinegraph/cinegraph/viewport"
)

// Frame is one rendered snapshot: the node set with simulation positions,
// the active link set, and the viewport transform.
type Frame struct {
	Nodes     []*graph.Node      `json:"nodes"`
	Links     []*graph.Link      `json:"links"`
	Transform viewport.Transform `json:"transform"`
}

// Clone deep-copies the frame. Simulation state keeps evolving in place, so
// a frame kept across a mode switch must be cloned first.
func (f Frame) Clone() Frame {
	out := Frame{
		Nodes:     make([]*graph.Node, len(f.Nodes)),
		Links:     make([]*graph.Link, len(f.Links)),
		Transform: f.Transform,
	}
	for i, n := range f.Nodes {
		c := *n
		out.Nodes[i] = &c
	}
	for i, l := range f.Links {
		c := *l
		out.Links[i] = &c
	}
	return out
}

// Recorder is a render target that keeps the most recent frame and any
// surfaced messages. The CLI renders from it after the simulation settles;
// tests assert on it.
type Recorder struct {
	mu       sync.Mutex
	frame    Frame
	frames   int
	messages []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RenderFrame stores the frame, replacing any previous one.
func (r *Recorder) RenderFrame(nodes []*graph.Node, links []*graph.Link, t viewport.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = Frame{Nodes: nodes, Links: links, Transform: t}
	r.frames++
}

// ShowMessage appends a user-facing message.
func (r *Recorder) ShowMessage(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

// Frame returns the most recent frame.
func (r *Recorder) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// FrameCount returns how many frames have been rendered.
func (r *Recorder) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Messages returns all surfaced messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
