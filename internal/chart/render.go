package chart

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
)

// Format is the encoded image type.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" and "png"; anything else is SVG.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(PNG)) {
		return PNG
	}
	return SVG
}

func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Options controls one rendering.
type Options struct {
	Dark   bool
	Hidden []catalog.Complexity
	Width  int
	Height int
	Format Format
	// Labels draws project names next to their bubbles.
	Labels bool
}

func (o Options) hidden(c catalog.Complexity) bool {
	return slices.Contains(o.Hidden, c)
}

type palette struct {
	background, title, axis, grid drawing.Color
	fill                          map[catalog.Complexity]drawing.Color
}

var seriesFill = map[catalog.Complexity]drawing.Color{
	catalog.Beginner:     {R: 16, G: 185, B: 129, A: 179},
	catalog.Intermediate: {R: 245, G: 158, B: 11, A: 179},
	catalog.Advanced:     {R: 239, G: 68, B: 68, A: 179},
}

func paletteFor(dark bool) palette {
	if dark {
		return palette{
			background: drawing.ColorFromHex("1e293b"),
			title:      drawing.ColorFromHex("e2e8f0"),
			axis:       drawing.ColorFromHex("cbd5e1"),
			grid:       drawing.ColorFromHex("334155"),
			fill:       seriesFill,
		}
	}
	return palette{
		background: drawing.ColorWhite,
		title:      drawing.ColorFromHex("334155"),
		axis:       drawing.ColorFromHex("475569"),
		grid:       drawing.ColorFromHex("cbd5e1"),
		fill:       seriesFill,
	}
}

// Build assembles the chart definition for the given series.
func Build(series []Series, opts Options) gochart.Chart {
	pal := paletteFor(opts.Dark)
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var plotted []gochart.Series
	var labels []gochart.Value2
	for _, s := range series {
		if opts.hidden(s.Level) || len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.X, p.Y
			labels = append(labels, gochart.Value2{XValue: p.X, YValue: p.Y, Label: p.Label})
		}
		plotted = append(plotted, gochart.ContinuousSeries{
			Name: string(s.Level),
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    Radius(s.Level),
				DotColor:    pal.fill[s.Level],
			},
			XValues: xs,
			YValues: ys,
		})
	}
	visible := len(plotted) > 0
	if !visible {
		// go-chart refuses to render without a visible series.
		plotted = append(plotted, placeholder())
	}
	if opts.Labels && len(labels) > 0 {
		plotted = append(plotted, gochart.AnnotationSeries{
			Style: gochart.Style{
				FontColor:   pal.title,
				FillColor:   pal.background,
				StrokeColor: pal.grid,
			},
			Annotations: labels,
		})
	}

	axisStyle := gochart.Style{FontColor: pal.axis, StrokeColor: pal.grid}
	gridStyle := gochart.Style{StrokeColor: pal.grid, StrokeWidth: 1}

	ch := gochart.Chart{
		Title:      "Project Complexity vs. Time (Weeks)",
		TitleStyle: gochart.Style{FontColor: pal.title},
		Width:      width,
		Height:     height,
		Background: gochart.Style{
			FillColor: pal.background,
			Padding:   gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: gochart.Style{FillColor: pal.background},
		XAxis: gochart.XAxis{
			Name:           "Estimated Time (Weeks)",
			NameStyle:      gochart.Style{FontColor: pal.axis},
			Style:          axisStyle,
			Range:          &gochart.ContinuousRange{Min: 0, Max: 7},
			Ticks:          weekTicks(),
			GridMajorStyle: gridStyle,
		},
		YAxis: gochart.YAxis{
			Name:           "Complexity Level",
			NameStyle:      gochart.Style{FontColor: pal.axis},
			Style:          axisStyle,
			Range:          &gochart.ContinuousRange{Min: 0, Max: 4},
			Ticks:          levelTicks(),
			GridMajorStyle: gridStyle,
		},
		Series: plotted,
	}
	if visible {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch, gochart.Style{
			FillColor:   pal.background,
			FontColor:   pal.axis,
			StrokeColor: pal.grid,
		})}
	}
	return ch
}

// placeholder is a visible series that draws nothing.
func placeholder() gochart.Series {
	return gochart.ContinuousSeries{
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			StrokeColor: drawing.ColorTransparent,
			DotWidth:    gochart.Disabled,
		},
		XValues: []float64{0},
		YValues: []float64{0},
	}
}

func weekTicks() []gochart.Tick {
	ticks := make([]gochart.Tick, 0, 8)
	for w := 0; w <= 7; w++ {
		ticks = append(ticks, gochart.Tick{Value: float64(w), Label: fmt.Sprintf("%d", w)})
	}
	return ticks
}

func levelTicks() []gochart.Tick {
	ticks := []gochart.Tick{{Value: 0, Label: ""}}
	for _, lvl := range catalog.Levels {
		ticks = append(ticks, gochart.Tick{Value: float64(lvl.Rank()), Label: string(lvl)})
	}
	return append(ticks, gochart.Tick{Value: 4, Label: ""})
}

// Renderer produces chart instances backed by pooled buffers.
type Renderer struct {
	pool sync.Pool
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.pool.New = func() any { return new(bytes.Buffer) }
	return r
}

// Acquire renders projects into a new instance. The caller must Close it.
func (r *Renderer) Acquire(projects []catalog.Project, opts Options) (*Instance, error) {
	if opts.Format == "" {
		opts.Format = SVG
	}
	buf := r.pool.Get().(*bytes.Buffer)
	buf.Reset()

	provider := gochart.SVG
	if opts.Format == PNG {
		provider = gochart.PNG
	}
	ch := Build(Plot(projects), opts)
	if err := ch.Render(provider, buf); err != nil {
		r.pool.Put(buf)
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return &Instance{renderer: r, buf: buf, format: opts.Format}, nil
}

// Instance is one rendered chart. It owns its buffer until Close.
type Instance struct {
	renderer *Renderer
	buf      *bytes.Buffer
	format   Format
	mu       sync.Mutex
}

func (i *Instance) ContentType() string {
	return i.format.ContentType()
}

// Bytes returns the encoded image; nil after Close.
func (i *Instance) Bytes() []byte {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.buf == nil {
		return nil
	}
	return i.buf.Bytes()
}

func (i *Instance) WriteTo(w io.Writer) (int64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.buf == nil {
		return 0, fmt.Errorf("chart instance closed")
	}
	n, err := w.Write(i.buf.Bytes())
	return int64(n), err
}

// Close releases the instance. Further calls are no-ops.
func (i *Instance) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.buf == nil {
		return nil
	}
	i.buf.Reset()
	i.renderer.pool.Put(i.buf)
	i.buf = nil
	return nil
}

// Closed reports whether Close has run.
func (i *Instance) Closed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.buf == nil
}
