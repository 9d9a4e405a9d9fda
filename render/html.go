package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cinegraph/cinegraph/errors"
	"github.com/cinegraph/cinegraph/graph"
)

// HTMLOptions configures the interactive export.
type HTMLOptions struct {
	Title string
	Path  string
	// Frames holds one settled layout per mode. Modes absent from the map
	// do not get a tab.
	Frames map[graph.Mode]Frame
	// ActiveMode selects the tab shown on open.
	ActiveMode graph.Mode
}

// WriteHTML writes a self-contained interactive HTML file: every mode's
// settled layout is embedded as JSON, and a small canvas viewer handles
// mode tabs, type filtering, pan, and zoom without recomputing anything.
// Returns the path written.
func WriteHTML(opts HTMLOptions) (string, error) {
	if len(opts.Frames) == 0 {
		return "", errors.Wrap(errors.ErrNoDataset, "nothing to export")
	}

	payload := struct {
		Frames map[graph.Mode]Frame `json:"frames"`
		Active graph.Mode           `json:"active"`
	}{Frames: opts.Frames, Active: opts.ActiveMode}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode graph data")
	}

	title := opts.Title
	if title == "" {
		title = "CineGraph"
	}

	outputPath := opts.Path
	if outputPath == "" {
		outputPath = fmt.Sprintf("cinegraph_%s.html", time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath += ".html"
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "failed to create output directory")
		}
	}

	html := buildHTML(title, string(data))
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write html file")
	}
	return outputPath, nil
}

func buildHTML(title, dataJSON string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
  :root {
    --bg: #1b1d26; --panel: #262934; --fg: #e8e8e4; --muted: #8a8fa3;
    --movie: #e2b34f; --genre: #5fa8d3; --person: #d36f5f; --keyword: #7dc27d;
    --edge: rgba(160,165,185,0.35); --accent: #a07ce0;
  }
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: ui-monospace, monospace; background: var(--bg); color: var(--fg);
         height: 100vh; display: flex; flex-direction: column; overflow: hidden; }
  header { background: var(--panel); padding: 0.5rem 1rem; display: flex;
           justify-content: space-between; align-items: center; border-bottom: 2px solid var(--accent); }
  h1 { font-size: 1rem; font-weight: 600; }
  .toolbar { display: flex; gap: 0.5rem; align-items: center; }
  button, select { font-family: inherit; font-size: 0.7rem; padding: 0.35rem 0.6rem;
                   border: 1px solid var(--muted); border-radius: 4px; background: var(--bg);
                   color: var(--fg); cursor: pointer; }
  button.active { background: var(--accent); border-color: var(--accent); color: var(--bg); }
  #canvas-wrap { flex: 1; position: relative; }
  canvas { position: absolute; inset: 0; }
  #status { position: absolute; bottom: 0.5rem; left: 0.75rem; font-size: 0.65rem; color: var(--muted); }
  #tooltip { position: absolute; display: none; background: var(--panel); color: var(--fg);
             font-size: 0.7rem; padding: 0.3rem 0.5rem; border-radius: 4px; pointer-events: none;
             border: 1px solid var(--accent); }
</style>
</head>
<body>
<header>
  <h1>%s</h1>
  <div class="toolbar">
    <span id="mode-tabs"></span>
    <select id="filter" title="Entity type filter">
      <option value="">all types</option>
      <option value="genre">genres</option>
      <option value="person">cast</option>
      <option value="keyword">keywords</option>
    </select>
    <button id="zoom-in">+</button>
    <button id="zoom-out">&minus;</button>
    <button id="zoom-fit">fit</button>
    <button id="zoom-reset">reset</button>
  </div>
</header>
<div id="canvas-wrap">
  <canvas id="graph"></canvas>
  <div id="status"></div>
  <div id="tooltip"></div>
</div>
<script>
const DATA = %s;
const MODE_LABELS = { similarity: "similarity", coactor: "co-actor", timeline: "timeline", entity: "entity" };
const COLORS = { movie: "#e2b34f", genre: "#5fa8d3", person: "#d36f5f", keyword: "#7dc27d" };
const RADII = { movie: 7, genre: 4, person: 4, keyword: 4 };

const canvas = document.getElementById("graph");
const ctx = canvas.getContext("2d");
const tooltip = document.getElementById("tooltip");
const status = document.getElementById("status");

let mode = DATA.active in DATA.frames ? DATA.active : Object.keys(DATA.frames)[0];
let filter = "";
let view = { x: 0, y: 0, k: 1 };
let dragging = null;

function frame() { return DATA.frames[mode]; }

function visible(n) {
  if (filter === "" || mode !== "entity") return true;
  return n.type === "movie" || n.type === filter;
}

function linkVisible(l, byId) {
  if (mode === "entity" && filter !== "") {
    const keep = { genre: "genre", person: "cast", keyword: "keyword" }[filter];
    if (l.type !== keep) return false;
  }
  const s = byId[l.source], t = byId[l.target];
  return s && t && visible(s) && visible(t);
}

function draw() {
  const f = frame();
  const w = canvas.width = canvas.clientWidth;
  const h = canvas.height = canvas.clientHeight;
  ctx.clearRect(0, 0, w, h);
  ctx.save();
  ctx.translate(view.x, view.y);
  ctx.scale(view.k, view.k);

  const byId = {};
  for (const n of f.nodes) byId[n.id] = n;

  ctx.strokeStyle = "rgba(160,165,185,0.35)";
  for (const l of f.links) {
    if (l.hidden || !linkVisible(l, byId)) continue;
    const s = byId[l.source], t = byId[l.target];
    ctx.lineWidth = Math.max(0.4, (l.value || 1) * 1.5) / view.k;
    ctx.beginPath();
    ctx.moveTo(s.x, s.y);
    ctx.lineTo(t.x, t.y);
    ctx.stroke();
  }

  let shown = 0;
  for (const n of f.nodes) {
    if (!visible(n)) continue;
    shown++;
    ctx.fillStyle = COLORS[n.type] || "#999";
    ctx.beginPath();
    ctx.arc(n.x, n.y, RADII[n.type] || 4, 0, 2 * Math.PI);
    ctx.fill();
  }
  ctx.restore();
  status.textContent = MODE_LABELS[mode] + " / " + shown + " nodes / zoom " + view.k.toFixed(2) + "x";
}

function bbox() {
  const f = frame();
  let x0 = Infinity, y0 = Infinity, x1 = -Infinity, y1 = -Infinity;
  for (const n of f.nodes) {
    if (!visible(n)) continue;
    x0 = Math.min(x0, n.x); y0 = Math.min(y0, n.y);
    x1 = Math.max(x1, n.x); y1 = Math.max(y1, n.y);
  }
  return { x0, y0, x1, y1 };
}

function zoomToFit() {
  const b = bbox();
  const w = canvas.clientWidth, h = canvas.clientHeight;
  const bw = b.x1 - b.x0, bh = b.y1 - b.y0;
  if (!isFinite(bw) || !isFinite(bh) || (bw === 0 && bh === 0)) return;
  const pad = 40;
  const k = Math.min(2, Math.min((w - 2 * pad) / Math.max(bw, 1), (h - 2 * pad) / Math.max(bh, 1)));
  view.k = Math.max(0.2, Math.min(4, k));
  view.x = w / 2 - view.k * (b.x0 + bw / 2);
  view.y = h / 2 - view.k * (b.y0 + bh / 2);
  draw();
}

function zoomBy(factor) {
  const w = canvas.clientWidth / 2, h = canvas.clientHeight / 2;
  const k = Math.max(0.2, Math.min(4, view.k * factor));
  view.x = w - (w - view.x) * (k / view.k);
  view.y = h - (h - view.y) * (k / view.k);
  view.k = k;
  draw();
}

const tabs = document.getElementById("mode-tabs");
for (const m of ["similarity", "coactor", "timeline", "entity"]) {
  if (!(m in DATA.frames)) continue;
  const b = document.createElement("button");
  b.textContent = MODE_LABELS[m];
  b.dataset.mode = m;
  if (m === mode) b.classList.add("active");
  b.onclick = () => {
    mode = m;
    for (const o of tabs.children) o.classList.toggle("active", o.dataset.mode === m);
    zoomToFit();
  };
  tabs.appendChild(b);
}

document.getElementById("filter").onchange = (e) => { filter = e.target.value; draw(); };
document.getElementById("zoom-in").onclick = () => zoomBy(1.3);
document.getElementById("zoom-out").onclick = () => zoomBy(1 / 1.3);
document.getElementById("zoom-fit").onclick = zoomToFit;
document.getElementById("zoom-reset").onclick = () => { view = { x: 0, y: 0, k: 1 }; draw(); };

canvas.addEventListener("wheel", (e) => { e.preventDefault(); zoomBy(e.deltaY < 0 ? 1.1 : 1 / 1.1); });
canvas.addEventListener("mousedown", (e) => { dragging = { x: e.clientX, y: e.clientY }; });
window.addEventListener("mouseup", () => { dragging = null; });
canvas.addEventListener("mousemove", (e) => {
  if (dragging) {
    view.x += e.clientX - dragging.x;
    view.y += e.clientY - dragging.y;
    dragging = { x: e.clientX, y: e.clientY };
    draw();
    return;
  }
  const f = frame();
  const gx = (e.offsetX - view.x) / view.k, gy = (e.offsetY - view.y) / view.k;
  let hit = null;
  for (const n of f.nodes) {
    if (!visible(n)) continue;
    const r = (RADII[n.type] || 4) + 2;
    if ((n.x - gx) * (n.x - gx) + (n.y - gy) * (n.y - gy) <= r * r) { hit = n; break; }
  }
  if (hit) {
    tooltip.style.display = "block";
    tooltip.style.left = (e.offsetX + 12) + "px";
    tooltip.style.top = (e.offsetY + 12) + "px";
    tooltip.textContent = hit.label + (hit.year ? " (" + hit.year + ")" : "");
  } else {
    tooltip.style.display = "none";
  }
});
window.addEventListener("resize", draw);

zoomToFit();
</script>
</body>
</html>
`, title, title, dataJSON)
}
