// Package params resolves template parameters from the different shapes
// callers hand them over in: plain maps, structs with tagged fields, or
// objects that derive an end time.
package params

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
)

var (
	// ErrMissingParam is returned when no lookup route yields the parameter.
	ErrMissingParam = errors.New("params: parameter not found")

	// ErrNotNumeric is returned by Float when the value cannot be read as a float64.
	ErrNotNumeric = errors.New("params: parameter is not numeric")
)

// Recognized parameter names
const (
	Mass1        = "mass1"
	Mass2        = "mass2"
	Spin1z       = "spin1z"
	Spin2z       = "spin2z"
	Inclination  = "inclination"
	CoaPhase     = "coa_phase"
	Distance     = "distance"
	FLower       = "f_lower"
	DeltaT       = "delta_t"
	DeltaF       = "delta_f"
	Tc           = "tc"
	RA           = "ra"
	Dec          = "dec"
	Polarization = "polarization"
	EndTime      = "end_time"
	NumRelData   = "numrel_data"
	Approximant  = "approximant"
)

// Values is a resolved parameter set keyed by parameter name.
type Values map[string]any

// Get implements KeyGetter.
func (v Values) Get(name string) (any, bool) {
	val, ok := v[name]
	return val, ok
}

// EndTimer is implemented by parameter sources that derive the merger time.
type EndTimer interface {
	End() float64
}

// KeyGetter is implemented by dictionary-like parameter sources.
type KeyGetter interface {
	Get(name string) (any, bool)
}

// DefaultWaveformParams returns the defaults applied to intrinsic and
// orientation parameters a caller leaves out.
func DefaultWaveformParams() Values {
	return Values{
		Spin1z:      0.0,
		Spin2z:      0.0,
		Inclination: 0.0,
		CoaPhase:    0.0,
		Distance:    1.0,
		FLower:      0.0,
		EndTime:     0.0,
	}
}

// DefaultLocationParams returns the defaults for sky location and timing.
func DefaultLocationParams() Values {
	return Values{
		Tc:           0.0,
		RA:           0.0,
		Dec:          0.0,
		Polarization: 0.0,
	}
}

var recognized = map[string]struct{}{
	Mass1: {}, Mass2: {}, Spin1z: {}, Spin2z: {}, Inclination: {}, CoaPhase: {},
	Distance: {}, FLower: {}, DeltaT: {}, DeltaF: {}, Tc: {}, RA: {}, Dec: {},
	Polarization: {}, EndTime: {}, NumRelData: {}, Approximant: {},
}

// IsRecognized reports whether name is a known parameter.
func IsRecognized(name string) bool {
	_, ok := recognized[name]
	return ok
}

// Resolve merges defaults with overrides; later overrides win.
func Resolve(defaults Values, overrides ...Values) Values {
	out := make(Values, len(defaults))
	maps.Copy(out, defaults)
	for _, o := range overrides {
		maps.Copy(out, o)
	}
	return out
}

// Props returns the waveform defaults overlaid with the recognized entries of
// overrides. Unrecognized names are dropped.
func Props(overrides Values) Values {
	out := DefaultWaveformParams()
	for k, v := range overrides {
		if IsRecognized(k) {
			out[k] = v
		}
	}
	return out
}

// Get resolves name from src. The lookup order is:
//  1. for "end_time", src.End() when src implements EndTimer
//  2. an exported struct field tagged `param:"name"` or named name case-insensitively
//  3. key lookup through KeyGetter, map[string]any or map[string]float64
func Get(src any, name string) (any, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: %q (nil source)", ErrMissingParam, name)
	}

	if name == EndTime {
		if et, ok := src.(EndTimer); ok {
			return et.End(), nil
		}
	}

	if v, ok := fieldByName(src, name); ok {
		return v, nil
	}

	switch s := src.(type) {
	case KeyGetter:
		if v, ok := s.Get(name); ok {
			return v, nil
		}
	case map[string]any:
		if v, ok := s[name]; ok {
			return v, nil
		}
	case map[string]float64:
		if v, ok := s[name]; ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrMissingParam, name)
}

// Float resolves name from src and converts it to float64.
func Float(src any, name string) (float64, error) {
	v, err := Get(src, name)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: %q is %T", ErrNotNumeric, name, v)
	}
	return f, nil
}

// String resolves name from src as a string.
func String(src any, name string) (string, error) {
	v, err := Get(src, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("params: %q is %T, want string", name, v)
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() float64 }:
		return n.Float64(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	}
	return 0, false
}

// fieldByName looks for an exported struct field matching name, either by
// `param` tag or by case-insensitive field name with underscores removed.
func fieldByName(src any, name string) (any, bool) {
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	plain := strings.ReplaceAll(name, "_", "")
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, ok := f.Tag.Lookup("param"); ok {
			if tag == name {
				return rv.Field(i).Interface(), true
			}
			continue
		}
		if strings.EqualFold(f.Name, plain) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

// Overlay layers fixed values over another source. Lookups on the overlay
// return the fixed value when present and fall back to Get on the source.
type Overlay struct {
	Source any
	Fixed  Values
}

// Get implements KeyGetter.
func (o Overlay) Get(name string) (any, bool) {
	if v, ok := o.Fixed[name]; ok {
		return v, true
	}
	v, err := Get(o.Source, name)
	return v, err == nil
}
