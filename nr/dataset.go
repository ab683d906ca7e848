package nr

import (
	"fmt"
	"slices"
)

// FLowerAttr is the root attribute holding the lowest usable starting
// frequency, in Hz, of the hybrid at a total mass of one solar mass.
const FLowerAttr = "f_lower_at_1MSUN"

// SplineData is one entry of a mode dataset: the degree, knots and values of
// an interpolating spline in dimensionless time t/M.
type SplineData struct {
	Degree int       `json:"deg"`
	Knots  []float64 `json:"knots"`
	Data   []float64 `json:"data"`
}

// Dataset is a read-only table of spherical-harmonic mode splines keyed by
// AmpKey/PhaseKey names.
type Dataset interface {
	// Attr returns a root-level scalar attribute.
	Attr(name string) (float64, error)

	// Has reports whether an entry exists.
	Has(key string) bool

	// Spline reads one entry.
	Spline(key string) (*SplineData, error)

	Close() error
}

// Opener opens the dataset stored at path.
type Opener func(path string) (Dataset, error)

// AmpKey names the amplitude entry of mode (l, m).
func AmpKey(l, m int) string {
	return fmt.Sprintf("amp_l%d_m%d", l, m)
}

// PhaseKey names the phase entry of mode (l, m).
func PhaseKey(l, m int) string {
	return fmt.Sprintf("phase_l%d_m%d", l, m)
}

// Mode is a spherical-harmonic (l, m) pair
type Mode struct {
	L int `json:"l"`
	M int `json:"m"`
}

func (m Mode) String() string {
	return fmt.Sprintf("(%d,%d)", m.L, m.M)
}

// Modes lists the modes with both an amplitude and a phase entry, l from 2 to
// maxL, in the order the reconstructor sums them.
func Modes(ds Dataset, maxL int) []Mode {
	var out []Mode
	for l := 2; l <= maxL; l++ {
		for m := -l; m <= l; m++ {
			if ds.Has(AmpKey(l, m)) && ds.Has(PhaseKey(l, m)) {
				out = append(out, Mode{L: l, M: m})
			}
		}
	}
	return out
}

// MemoryDataset is a Dataset held in memory.
type MemoryDataset struct {
	Attrs   map[string]float64
	Entries map[string]*SplineData
	closed  bool
}

// NewMemoryDataset creates an empty dataset whose f_lower_at_1MSUN is fLowerAt1MSun.
func NewMemoryDataset(fLowerAt1MSun float64) *MemoryDataset {
	return &MemoryDataset{
		Attrs:   map[string]float64{FLowerAttr: fLowerAt1MSun},
		Entries: make(map[string]*SplineData),
	}
}

// SetMode stores the amplitude and phase splines of mode (l, m).
func (d *MemoryDataset) SetMode(l, m int, amp, phase *SplineData) {
	d.Entries[AmpKey(l, m)] = amp
	d.Entries[PhaseKey(l, m)] = phase
}

func (d *MemoryDataset) Attr(name string) (float64, error) {
	v, ok := d.Attrs[name]
	if !ok {
		return 0, fmt.Errorf("%w: attribute %q", ErrMissingEntry, name)
	}
	return v, nil
}

func (d *MemoryDataset) Has(key string) bool {
	_, ok := d.Entries[key]
	return ok
}

func (d *MemoryDataset) Spline(key string) (*SplineData, error) {
	e, ok := d.Entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingEntry, key)
	}
	return e, nil
}

// Keys returns the entry names in sorted order
func (d *MemoryDataset) Keys() []string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (d *MemoryDataset) Close() error {
	d.closed = true
	return nil
}

// Closed reports whether Close has been called
func (d *MemoryDataset) Closed() bool {
	return d.closed
}
