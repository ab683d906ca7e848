// Package h5dataset reads and writes Mode Dataset files in HDF5 format.
//
// Layout: a root attribute f_lower_at_1MSUN and one group per entry
// (amp_l2_m2, phase_l2_m2, ...) holding three datasets: deg (scalar integer),
// knots and data (1-D float64).
package h5dataset

import (
	"fmt"
	"sync"

	"gonum.org/v1/hdf5"

	"github.com/RyanBlaney/sonido-gw/nr"
)

const (
	degName   = "deg"
	knotsName = "knots"
	dataName  = "data"
)

// File is an open Mode Dataset file. It implements nr.Dataset.
type File struct {
	mu   sync.Mutex
	path string
	f    *hdf5.File
}

// Open opens path read-only. It has the nr.Opener signature.
func Open(path string) (nr.Dataset, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("h5dataset: open %s: %w", path, err)
	}
	return &File{path: path, f: f}, nil
}

// Attr reads a scalar float attribute of the root group.
func (d *File) Attr(name string) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	root, err := d.f.OpenGroup("/")
	if err != nil {
		return 0, fmt.Errorf("h5dataset: %s: open root: %w", d.path, err)
	}
	defer root.Close()

	attr, err := root.OpenAttribute(name)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %q in %s", nr.ErrMissingEntry, name, d.path)
	}
	defer attr.Close()

	var v float64
	if err := attr.Read(&v, hdf5.T_NATIVE_DOUBLE); err != nil {
		return 0, fmt.Errorf("h5dataset: read attribute %q: %w", name, err)
	}
	return v, nil
}

func (d *File) Has(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.LinkExists(key)
}

// Spline reads the deg, knots and data members of group key.
func (d *File) Spline(key string) (*nr.SplineData, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.f.LinkExists(key) {
		return nil, fmt.Errorf("%w: %q in %s", nr.ErrMissingEntry, key, d.path)
	}
	g, err := d.f.OpenGroup(key)
	if err != nil {
		return nil, fmt.Errorf("h5dataset: open group %q: %w", key, err)
	}
	defer g.Close()

	var deg int64
	if err := readScalar(g, degName, &deg); err != nil {
		return nil, fmt.Errorf("h5dataset: %s/%s: %w", key, degName, err)
	}
	knots, err := readVector(g, knotsName)
	if err != nil {
		return nil, fmt.Errorf("h5dataset: %s/%s: %w", key, knotsName, err)
	}
	data, err := readVector(g, dataName)
	if err != nil {
		return nil, fmt.Errorf("h5dataset: %s/%s: %w", key, dataName, err)
	}

	return &nr.SplineData{Degree: int(deg), Knots: knots, Data: data}, nil
}

func (d *File) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

func readScalar(g *hdf5.Group, name string, dst *int64) error {
	if !g.LinkExists(name) {
		return nr.ErrMissingEntry
	}
	ds, err := g.OpenDataset(name)
	if err != nil {
		return err
	}
	defer ds.Close()
	return ds.Read(dst)
}

func readVector(g *hdf5.Group, name string) ([]float64, error) {
	if !g.LinkExists(name) {
		return nil, nr.ErrMissingEntry
	}
	ds, err := g.OpenDataset(name)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1-D dataset, got rank %d", len(dims))
	}

	out := make([]float64, dims[0])
	if len(out) == 0 {
		return out, nil
	}
	if err := ds.Read(&out); err != nil {
		return nil, err
	}
	return out, nil
}
