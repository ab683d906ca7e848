package bbhx

import "errors"

var (
	// ErrChannelCount means the generator returned fewer than three channels.
	ErrChannelCount = errors.New("bbhx: generator returned too few channels")

	// ErrNoFactory means no generator factory was configured.
	ErrNoFactory = errors.New("bbhx: no generator factory configured")

	// ErrInvalidGrid means delta_f or the Nyquist bound cannot produce a frequency grid.
	ErrInvalidGrid = errors.New("bbhx: invalid frequency grid")
)
