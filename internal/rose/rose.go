// Package rose renders wind-rose charts: a PNG polar rose via gonum/plot and
// an interactive HTML companion via go-echarts.
package rose

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/atmos-data/windrose.report/internal/wind"
)

// Config controls rose geometry and speed banding.
type Config struct {
	SectorCount   int       // angular sectors, default wind.DefaultSectorCount
	SpeedBinEdges []float64 // ascending upper band edges in m/s; last band open
	CalmThreshold float64   // speeds <= threshold count as calm, excluded from wedges
}

func (c Config) withDefaults() Config {
	if c.SectorCount <= 0 {
		c.SectorCount = wind.DefaultSectorCount
	}
	if len(c.SpeedBinEdges) == 0 {
		c.SpeedBinEdges = []float64{2, 4, 6, 8, 10}
	}
	return c
}

// bandIndex maps a speed to its color band. Band i covers
// (edge[i-1], edge[i]]; the last band is open-ended.
func (c Config) bandIndex(speed float64) int {
	for i, edge := range c.SpeedBinEdges {
		if speed <= edge {
			return i
		}
	}
	return len(c.SpeedBinEdges)
}

func (c Config) bandLabel(i int) string {
	if i == 0 {
		return fmt.Sprintf("≤ %g m/s", c.SpeedBinEdges[0])
	}
	if i == len(c.SpeedBinEdges) {
		return fmt.Sprintf("> %g m/s", c.SpeedBinEdges[len(c.SpeedBinEdges)-1])
	}
	return fmt.Sprintf("%g–%g m/s", c.SpeedBinEdges[i-1], c.SpeedBinEdges[i])
}

// counts bins observations into sector × speed-band cells. Calm observations
// are tallied separately and excluded from the wedges.
func (c Config) counts(obs []wind.Observation) (cells [][]int, calm int) {
	bands := len(c.SpeedBinEdges) + 1
	cells = make([][]int, c.SectorCount)
	for i := range cells {
		cells[i] = make([]int, bands)
	}
	for _, o := range obs {
		if o.SpeedMps <= c.CalmThreshold {
			calm++
			continue
		}
		sector := wind.SectorIndex(o.DirectionDeg, c.SectorCount)
		cells[sector][c.bandIndex(o.SpeedMps)]++
	}
	return cells, calm
}

// WritePNG renders the wind rose as stacked sector wedges (radius =
// cumulative frequency, color = speed band) and saves it to path.
// Compass-oriented: north up, angles clockwise.
func WritePNG(path, title string, obs []wind.Observation, cfg Config) error {
	cfg = cfg.withDefaults()
	cells, calm := cfg.counts(obs)

	total := calm
	maxSectorCount := 0
	for _, bands := range cells {
		sectorTotal := 0
		for _, n := range bands {
			sectorTotal += n
		}
		total += sectorTotal
		if sectorTotal > maxSectorCount {
			maxSectorCount = sectorTotal
		}
	}
	if total == 0 {
		return fmt.Errorf("no observations to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = ""
	p.Y.Label.Text = ""
	hideAxes(p)

	maxFreq := float64(maxSectorCount) / float64(total)
	if maxFreq == 0 {
		maxFreq = 1
	}

	palette := bandPalette(len(cfg.SpeedBinEdges) + 1)

	// Wedges span 80% of the sector width so neighbours stay separated.
	width := 360.0 / float64(cfg.SectorCount)
	gap := width * 0.1

	// Draw outer bands first so the legend reads inner-to-outer.
	for sector := 0; sector < cfg.SectorCount; sector++ {
		low, _ := wind.SectorBounds(sector, cfg.SectorCount)
		a0 := low + gap
		a1 := low + width - gap

		cum := 0.0
		for band, n := range cells[sector] {
			if n == 0 {
				continue
			}
			r0 := cum
			cum += float64(n) / float64(total)
			r1 := cum

			poly, err := plotter.NewPolygon(wedgePoints(a0, a1, r0, r1))
			if err != nil {
				return fmt.Errorf("failed to build wedge: %w", err)
			}
			poly.Color = palette[band]
			poly.LineStyle.Color = color.RGBA{A: 0}
			p.Add(poly)
		}
	}

	// Legend entries, one polygon per band.
	for band := 0; band < len(cfg.SpeedBinEdges)+1; band++ {
		thumb, err := plotter.NewPolygon(wedgePoints(0, 90, 0.1, 0.2))
		if err != nil {
			return fmt.Errorf("failed to build legend thumb: %w", err)
		}
		thumb.Color = palette[band]
		p.Legend.Add(cfg.bandLabel(band), thumb)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	addFrequencyRings(p, maxFreq)
	addCompassLabels(p, maxFreq)

	pad := maxFreq * 1.25
	p.X.Min, p.X.Max = -pad, pad
	p.Y.Min, p.Y.Max = -pad, pad

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save wind rose: %w", err)
	}
	return nil
}

// wedgePoints traces an annular sector between bearings a0..a1 (degrees,
// compass convention) and radii r0..r1.
func wedgePoints(a0, a1, r0, r1 float64) plotter.XYs {
	const steps = 12
	pts := make(plotter.XYs, 0, 2*steps+3)

	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/steps
		x, y := compassXY(a, r1)
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	for i := steps; i >= 0; i-- {
		a := a0 + (a1-a0)*float64(i)/steps
		x, y := compassXY(a, r0)
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

// compassXY converts a compass bearing (degrees clockwise from north) and
// radius to plot coordinates with north up.
func compassXY(bearingDeg, r float64) (x, y float64) {
	rad := bearingDeg * math.Pi / 180
	return r * math.Sin(rad), r * math.Cos(rad)
}

func hideAxes(p *plot.Plot) {
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	p.X.Color = color.RGBA{A: 0}
	p.Y.Color = color.RGBA{A: 0}
}

// addFrequencyRings draws dashed concentric circles at quarter fractions of
// the maximum sector frequency.
func addFrequencyRings(p *plot.Plot, maxFreq float64) {
	const circleSteps = 90
	for ring := 1; ring <= 4; ring++ {
		r := maxFreq * float64(ring) / 4
		pts := make(plotter.XYs, circleSteps+1)
		for i := 0; i <= circleSteps; i++ {
			a := 360 * float64(i) / circleSteps
			x, y := compassXY(a, r)
			pts[i] = plotter.XY{X: x, Y: y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			continue
		}
		line.Color = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		line.Width = vg.Points(0.5)
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(line)
	}
}

// addCompassLabels marks the four cardinal directions just outside the rose.
func addCompassLabels(p *plot.Plot, maxFreq float64) {
	r := maxFreq * 1.12
	labels := []struct {
		bearing float64
		text    string
	}{
		{0, "N"}, {90, "E"}, {180, "S"}, {270, "W"},
	}

	pts := make([]plotter.XY, len(labels))
	texts := make([]string, len(labels))
	for i, l := range labels {
		x, y := compassXY(l.bearing, r)
		pts[i] = plotter.XY{X: x, Y: y}
		texts[i] = l.text
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: texts})
	if err != nil {
		return
	}
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].XAlign = draw.XCenter
		lbls.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(lbls)
}

// bandPalette produces distinct fill colors for the speed bands, calm blues
// through storm reds.
func bandPalette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		// Hue walks from 0.61 (blue) down to 0.0 (red).
		hue := 0.61 * (1 - float64(i)/math.Max(float64(n-1), 1))
		r, g, b := hslToRGB(hue, 0.65, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
