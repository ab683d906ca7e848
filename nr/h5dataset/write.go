package h5dataset

import (
	"fmt"

	"gonum.org/v1/hdf5"

	"github.com/RyanBlaney/sonido-gw/nr"
)

// Write stores ds at path in the layout Open reads, truncating any existing file.
func Write(path string, ds *nr.MemoryDataset) (err error) {
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("h5dataset: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("h5dataset: close %s: %w", path, cerr)
		}
	}()

	root, err := f.OpenGroup("/")
	if err != nil {
		return fmt.Errorf("h5dataset: open root: %w", err)
	}
	defer root.Close()

	for name, v := range ds.Attrs {
		if err := writeAttr(root, name, v); err != nil {
			return fmt.Errorf("h5dataset: attribute %q: %w", name, err)
		}
	}

	for _, key := range ds.Keys() {
		if err := writeEntry(f, key, ds.Entries[key]); err != nil {
			return fmt.Errorf("h5dataset: entry %q: %w", key, err)
		}
	}
	return nil
}

func writeAttr(g *hdf5.Group, name string, v float64) error {
	space, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer space.Close()

	attr, err := g.CreateAttribute(name, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return err
	}
	defer attr.Close()
	return attr.Write(&v, hdf5.T_NATIVE_DOUBLE)
}

func writeEntry(f *hdf5.File, key string, sd *nr.SplineData) error {
	g, err := f.CreateGroup(key)
	if err != nil {
		return err
	}
	defer g.Close()

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer scalar.Close()

	degSet, err := g.CreateDataset(degName, hdf5.T_NATIVE_INT64, scalar)
	if err != nil {
		return err
	}
	deg := int64(sd.Degree)
	werr := degSet.Write(&deg)
	if cerr := degSet.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return werr
	}

	if err := writeVector(g, knotsName, sd.Knots); err != nil {
		return err
	}
	return writeVector(g, dataName, sd.Data)
}

func writeVector(g *hdf5.Group, name string, v []float64) error {
	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(v))}, nil)
	if err != nil {
		return err
	}
	defer space.Close()

	set, err := g.CreateDataset(name, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return err
	}
	defer set.Close()

	if len(v) == 0 {
		return nil
	}
	return set.Write(&v)
}
