package params

// Template is the struct form of a template parameter set. Tagged fields are
// found by Get; End supplies the derived merger time.
type Template struct {
	Mass1        float64 `param:"mass1" json:"mass1" yaml:"mass1"`
	Mass2        float64 `param:"mass2" json:"mass2" yaml:"mass2"`
	Spin1z       float64 `param:"spin1z" json:"spin1z" yaml:"spin1z"`
	Spin2z       float64 `param:"spin2z" json:"spin2z" yaml:"spin2z"`
	Inclination  float64 `param:"inclination" json:"inclination" yaml:"inclination"`
	CoaPhase     float64 `param:"coa_phase" json:"coa_phase" yaml:"coa_phase"`
	Distance     float64 `param:"distance" json:"distance" yaml:"distance"` // Mpc
	FLower       float64 `param:"f_lower" json:"f_lower" yaml:"f_lower"`
	DeltaT       float64 `param:"delta_t" json:"delta_t" yaml:"delta_t"`
	DeltaF       float64 `param:"delta_f" json:"delta_f" yaml:"delta_f"`
	Tc           float64 `param:"tc" json:"tc" yaml:"tc"`
	RA           float64 `param:"ra" json:"ra" yaml:"ra"`
	Dec          float64 `param:"dec" json:"dec" yaml:"dec"`
	Polarization float64 `param:"polarization" json:"polarization" yaml:"polarization"`

	// EndTimeSeconds and EndTimeNanoseconds split the merger time the way
	// GPS times are stored; End recombines them.
	EndTimeSeconds     int64 `json:"end_time_s" yaml:"end_time_s"`
	EndTimeNanoseconds int64 `json:"end_time_ns" yaml:"end_time_ns"`
}

// End returns the merger time in seconds.
func (t Template) End() float64 {
	return float64(t.EndTimeSeconds) + 1e-9*float64(t.EndTimeNanoseconds)
}

// Values flattens the template into a Values map.
func (t Template) Values() Values {
	return Values{
		Mass1:        t.Mass1,
		Mass2:        t.Mass2,
		Spin1z:       t.Spin1z,
		Spin2z:       t.Spin2z,
		Inclination:  t.Inclination,
		CoaPhase:     t.CoaPhase,
		Distance:     t.Distance,
		FLower:       t.FLower,
		DeltaT:       t.DeltaT,
		DeltaF:       t.DeltaF,
		Tc:           t.Tc,
		RA:           t.RA,
		Dec:          t.Dec,
		Polarization: t.Polarization,
		EndTime:      t.End(),
	}
}
