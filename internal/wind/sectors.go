package wind

import "fmt"

// DefaultSectorCount is the usual compass rose resolution.
const DefaultSectorCount = 16

// compassLabels are the 16-point compass names, sector 0 spanning [0°, 22.5°).
var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// SectorIndex maps a direction in [0,360) to one of n sectors using the
// half-open convention [low, high): a direction exactly on a boundary belongs
// to the higher sector. The mapping is total for any finite direction.
func SectorIndex(directionDeg float64, n int) int {
	width := 360.0 / float64(n)
	idx := int(directionDeg/width) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// SectorLabel names a sector. With 16 sectors the compass names are used;
// otherwise sectors are labelled "S00", "S01", ...
func SectorLabel(index, n int) string {
	if n == len(compassLabels) {
		return compassLabels[index]
	}
	return fmt.Sprintf("S%02d", index)
}

// SectorBounds returns the [low, high) angular range of a sector in degrees.
func SectorBounds(index, n int) (low, high float64) {
	width := 360.0 / float64(n)
	return float64(index) * width, float64(index+1) * width
}

// BinBySector partitions observation speeds into n sectors keyed by sector
// index. Every cleaned observation lands in exactly one bin.
func BinBySector(obs []Observation, n int) map[int][]float64 {
	bins := make(map[int][]float64, n)
	for _, o := range obs {
		idx := SectorIndex(o.DirectionDeg, n)
		bins[idx] = append(bins[idx], o.SpeedMps)
	}
	return bins
}
