package generation

import "math"

// NoiseConfig tunes the terrain noise field
type NoiseConfig struct {
	Octaves      int     `json:"octaves"`
	Lacunarity   float64 `json:"lacunarity"`
	Gain         float64 `json:"gain"`
	WarpStrength float64 `json:"warp_strength"`
	WarpScale    float64 `json:"warp_scale"`
	Blur         float64 `json:"blur"`
	FeatureScale float64 `json:"feature_scale"`
}

// NoiseSource yields a terrain scalar per grid coordinate and classifies it
// into a zone. The solver depends on this interface so tests can substitute
// synthetic fields.
type NoiseSource interface {
	// Sample returns a value in [0,1], a pure function of (row, lane, seed).
	Sample(row, lane int) float64
	// ZoneOf maps a noise value to a zone index.
	ZoneOf(v float64) int
	// ZoneCenter returns the midpoint of a zone's threshold band.
	ZoneCenter(zone int) float64
	// ZoneCount returns the number of configured zones.
	ZoneCount() int
}

// perlin implements 2D Perlin noise with a seeded permutation table.
type perlin struct {
	perm [512]int
}

func newPerlin(seed uint64) *perlin {
	p := &perlin{}

	var base [256]int
	for i := range base {
		base[i] = i
	}

	// Fisher-Yates shuffle driven by the same LCG the solver RNG uses
	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 16) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	for i := 0; i < 256; i++ {
		p.perm[i] = base[i]
		p.perm[i+256] = base[i]
	}
	return p
}

// fade applies the smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad2D(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

// noise2D returns Perlin noise at (x, y), roughly in [-1, 1].
func (p *perlin) noise2D(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := p.perm[p.perm[xi]+yi]
	ab := p.perm[p.perm[xi]+yi+1]
	ba := p.perm[p.perm[xi+1]+yi]
	bb := p.perm[p.perm[xi+1]+yi+1]

	x1 := lerp(u, grad2D(aa, xf, yf), grad2D(ba, xf-1, yf))
	x2 := lerp(u, grad2D(ab, xf, yf-1), grad2D(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

// NoiseField is the deterministic domain-warped FBM field that classifies
// terrain zones. Sampling has no side effects and never touches the grid, so
// it is callable before any cell exists.
type NoiseField struct {
	cfg   NoiseConfig
	zones ZoneConfig

	base  *perlin
	warpX *perlin
	warpY *perlin
}

// ZoneConfig partitions the noise range into ordered bands, each mapped to a
// dominant surface tile.
type ZoneConfig struct {
	// Thresholds are ascending upper bounds over [0,1). The last zone is
	// the catch-all for values at or above the final threshold.
	Thresholds []float64 `json:"thresholds"`
	// DominantTiles maps each zone index to one surface tile ID.
	DominantTiles []string `json:"dominant_tiles"`
	// InteriorRadius is how far (in cells) a cell must sit from any other
	// zone for the solver to pre-collapse it to the dominant tile.
	InteriorRadius int `json:"interior_radius"`
	// AffinityFalloff is the noise distance over which a candidate's zone
	// affinity decays to zero when weighting boundary cells.
	AffinityFalloff float64 `json:"affinity_falloff"`
}

// NewNoiseField builds a noise field from a seed and configs. The warp
// channels use independently derived permutation tables so the two warp
// samples are uncorrelated.
func NewNoiseField(seed uint64, cfg NoiseConfig, zones ZoneConfig) *NoiseField {
	return &NoiseField{
		cfg:   cfg,
		zones: zones,
		base:  newPerlin(seed),
		warpX: newPerlin(mix64(seed ^ 0x77616c70)),
		warpY: newPerlin(mix64(seed ^ 0x6e6f6973)),
	}
}

// Sample returns the terrain scalar for (row, lane), in [0,1]
func (nf *NoiseField) Sample(row, lane int) float64 {
	scale := nf.cfg.FeatureScale
	if scale <= 0 {
		scale = 1.0
	}
	x := float64(row) * scale
	y := float64(lane) * scale

	// Domain warp: two independent samples offset the input coordinate.
	if nf.cfg.WarpStrength > 0 {
		ws := nf.cfg.WarpScale
		if ws <= 0 {
			ws = 1.0
		}
		wx := nf.warpX.noise2D(x*ws, y*ws)
		wy := nf.warpY.noise2D(x*ws, y*ws)
		x += wx * nf.cfg.WarpStrength
		y += wy * nf.cfg.WarpStrength
	}

	v := nf.fbm(x, y)

	if nf.cfg.Blur > 0 {
		v = nf.blurred(x, y, v)
	}
	return clampFloat(v, 0, 1)
}

// fbm sums octaves of rotated-and-offset Perlin noise, normalized by total
// amplitude and mapped to [0,1].
func (nf *NoiseField) fbm(x, y float64) float64 {
	octaves := nf.cfg.Octaves
	if octaves < 1 {
		octaves = 1
	}
	lac := nf.cfg.Lacunarity
	if lac <= 0 {
		lac = 2.0
	}
	gain := nf.cfg.Gain
	if gain <= 0 {
		gain = 0.5
	}

	// Each octave rotates the sample coordinate and shifts it by an
	// octave-dependent offset, which breaks up axis-aligned artifacts.
	const rot = 0.6180339887 // radians per octave
	sum := 0.0
	amp := 1.0
	freq := 1.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		angle := rot * float64(i)
		c, s := math.Cos(angle), math.Sin(angle)
		ox := float64(i) * 13.137
		oy := float64(i) * 7.463
		rx := x*c - y*s + ox
		ry := x*s + y*c + oy
		sum += nf.base.noise2D(rx*freq, ry*freq) * amp
		norm += amp
		amp *= gain
		freq *= lac
	}
	if norm == 0 {
		return 0.5
	}
	// noise2D is in [-1,1]; remap the normalized sum to [0,1]
	return sum/norm*0.5 + 0.5
}

// blurred averages four offset re-samples of the FBM with the unblurred
// value, interpolated by the blur factor.
func (nf *NoiseField) blurred(x, y, v float64) float64 {
	const step = 0.5
	avg := (nf.fbm(x+step, y) + nf.fbm(x-step, y) + nf.fbm(x, y+step) + nf.fbm(x, y-step) + v) / 5.0
	return lerp(clampFloat(nf.cfg.Blur, 0, 1), v, avg)
}

// ZoneOf returns the index of the first threshold exceeding v; the last zone
// is the catch-all.
func (nf *NoiseField) ZoneOf(v float64) int {
	return zoneOf(nf.zones.Thresholds, v)
}

// ZoneCenter returns the midpoint of the zone's band
func (nf *NoiseField) ZoneCenter(zone int) float64 {
	return zoneCenter(nf.zones.Thresholds, zone)
}

// ZoneCount returns the number of configured zones
func (nf *NoiseField) ZoneCount() int {
	return len(nf.zones.Thresholds)
}

func zoneOf(thresholds []float64, v float64) int {
	for i, th := range thresholds {
		if v < th {
			return i
		}
	}
	if len(thresholds) == 0 {
		return 0
	}
	return len(thresholds) - 1
}

func zoneCenter(thresholds []float64, zone int) float64 {
	if len(thresholds) == 0 {
		return 0.5
	}
	zone = clampInt(zone, 0, len(thresholds)-1)
	lo := 0.0
	if zone > 0 {
		lo = thresholds[zone-1]
	}
	hi := thresholds[zone]
	return (lo + hi) / 2
}
