package nr

import "errors"

var (
	// ErrKnotBounds means a query grid reaches outside a spline's knots: the
	// template parameters do not match the dataset.
	ErrKnotBounds = errors.New("nr: query times outside spline knots")

	// ErrWaveformTooShort means the dataset cannot reach the requested lower frequency.
	ErrWaveformTooShort = errors.New("nr: waveform is not long enough to reach f_lower")

	// ErrMissingEntry means a required dataset entry or attribute is absent.
	ErrMissingEntry = errors.New("nr: dataset entry not found")

	// ErrNoOpener means the reconstructor was asked to open a file without an Opener.
	ErrNoOpener = errors.New("nr: no dataset opener configured")

	// ErrInvalidParams means the resolved parameters cannot describe a waveform.
	ErrInvalidParams = errors.New("nr: invalid template parameters")
)
