// Package rdc reduces a triple-evolution history to a flat table: one record
// per snapshot, physical quantities in display units and classification tags
// replaced by their integer codes.
package rdc

import (
	"fmt"
	"math"

	"tres-rdc/internal/triple"
	"tres-rdc/internal/units"
)

// Flattener maps snapshots to records for one layout.
type Flattener struct {
	layout Layout
}

// NewFlattener returns a Flattener for the layout.
func NewFlattener(layout Layout) *Flattener {
	return &Flattener{layout: layout}
}

// Layout returns the flattener's layout.
func (f *Flattener) Layout() Layout {
	return f.layout
}

// Columns returns the field names of every record, in order.
func (f *Flattener) Columns() []string {
	return f.layout.Columns()
}

// Flatten reads the fixed hierarchy (outer star in child1, inner binary of
// two stars in child2) and returns its record. The first missing attribute,
// unknown tag or misplaced node aborts with a *FieldError.
func (f *Flattener) Flatten(s *triple.Snapshot) (Record, error) {
	if s == nil {
		return Record{}, &FieldError{Path: "triple", Err: ErrUnexpectedShape}
	}
	outer, ok := s.OuterStar()
	if !ok {
		return Record{}, shapeError("child1", "star", s.Child1)
	}
	inner, ok := s.InnerBinary()
	if !ok {
		return Record{}, shapeError("child2", "binary", s.Child2)
	}
	primary, ok := inner.Primary()
	if !ok {
		return Record{}, shapeError("child2.child1", "star", inner.Child1)
	}
	secondary, ok := inner.Secondary()
	if !ok {
		return Record{}, shapeError("child2.child2", "star", inner.Child2)
	}

	b := builder{rec: newRecord()}

	b.code(ColSystemID, "number", s.Number)
	b.quantity(ColTimeMyr, "time", s.Time, units.Myr)
	b.binType(ColTripleBinType, "bin_type", s.BinType)
	b.flag(ColTripleMTStable, "is_mt_stable", s.IsMTStable)
	b.quantity(ColTripleA3RSun, "semimajor_axis", s.SemimajorAxis, units.RSun)
	b.float(ColTripleE3, "eccentricity", s.Eccentricity)
	b.float(ColTripleOmega3, "argument_of_pericenter", s.ArgumentOfPericenter)
	b.float(ColTripleG3, "longitude_of_ascending_node", s.LongitudeOfAscendingNode)
	b.quantity(ColTripleMDotMSunYr, "mass_transfer_rate", s.MassTransferRate, units.MSunPerYr)
	b.float(ColTripleIRel, "relative_inclination", s.RelativeInclination)

	b.binType(ColBinaryType, "child2.bin_type", inner.BinType)
	b.flag(ColBinaryStabMTQ, "child2.is_mt_stable", inner.IsMTStable)
	b.quantity(ColBinaryARSun, "child2.semimajor_axis", inner.SemimajorAxis, units.RSun)
	b.float(ColBinaryE, "child2.eccentricity", inner.Eccentricity)
	b.float(ColBinaryomega, "child2.argument_of_pericenter", inner.ArgumentOfPericenter)
	b.float(ColBinaryOmega, "child2.longitude_of_ascending_node", inner.LongitudeOfAscendingNode)

	b.star("child2.child1", primary, starColumns{ColDonor1Q, ColType1, ColMass1MSun, ColSpin1MyrInv, ColR1RSun, ColMCore1MSun})
	b.star("child2.child2", secondary, starColumns{ColDonor2Q, ColType2, ColMass2MSun, ColSpin2MyrInv, ColR2RSun, ColMCore2MSun})
	b.star("child1", outer, starColumns{ColDonor3Q, ColType3, ColMass3MSun, ColSpin3MyrInv, ColR3RSun, f.layout.outerCoreMassColumn()})

	b.flag(ColDynInst, "dynamical_instability", s.DynamicalInstability)
	b.code(ColKozaiType, "kozai_type", s.KozaiType)
	b.code(ColErrorFlag, "error_flag_secular", s.ErrorFlagSecular)
	b.float(ColCPUTime, "CPU_time", s.CPUTime)

	if b.err != nil {
		return Record{}, b.err
	}
	return b.rec, nil
}

func shapeError(path, want string, got triple.Node) error {
	desc := "nothing"
	switch got.(type) {
	case *triple.Star:
		desc = "a star"
	case *triple.Binary:
		desc = "a binary"
	}
	return &FieldError{Path: path, Err: fmt.Errorf("%w: want a %s, found %s", ErrUnexpectedShape, want, desc)}
}

type starColumns struct {
	donor, stellarType, mass, spin, radius, coreMass string
}

// builder appends fields in order and keeps the first error.
type builder struct {
	rec Record
	err error
}

func (b *builder) fail(path string, err error) {
	b.err = &FieldError{Path: path, Err: err}
}

func (b *builder) star(prefix string, st *triple.Star, cols starColumns) {
	b.flag(cols.donor, prefix+".is_donor", st.IsDonor)
	b.stellarType(cols.stellarType, prefix+".stellar_type", st.StellarType)
	b.quantity(cols.mass, prefix+".mass", st.Mass, units.MSun)
	b.quantity(cols.spin, prefix+".spin_angular_frequency", st.SpinAngularFrequency, units.PerMyr)
	b.quantity(cols.radius, prefix+".radius", st.Radius, units.RSun)
	b.quantity(cols.coreMass, prefix+".core_mass", st.CoreMass, units.MSun)
}

func (b *builder) quantity(col, path string, q *units.Quantity, to units.Unit) {
	if b.err != nil {
		return
	}
	if q == nil {
		b.fail(path, ErrMissingAttribute)
		return
	}
	v, err := q.In(to)
	if err != nil {
		b.fail(path, err)
		return
	}
	b.rec.set(col, v)
}

func (b *builder) stellarType(col, path string, q *units.Quantity) {
	if b.err != nil {
		return
	}
	if q == nil {
		b.fail(path, ErrMissingAttribute)
		return
	}
	v, err := q.In(units.StellarType)
	if err != nil {
		b.fail(path, err)
		return
	}
	if v != math.Trunc(v) {
		b.fail(path, fmt.Errorf("stellar type %v is not an integer", v))
		return
	}
	b.rec.set(col, int64(v))
}

func (b *builder) float(col, path string, v *float64) {
	if b.err != nil {
		return
	}
	if v == nil {
		b.fail(path, ErrMissingAttribute)
		return
	}
	b.rec.set(col, *v)
}

func (b *builder) flag(col, path string, v *triple.Flag) {
	if b.err != nil {
		return
	}
	if v == nil {
		b.fail(path, ErrMissingAttribute)
		return
	}
	b.rec.set(col, v.Int())
}

func (b *builder) code(col, path string, v *triple.Code) {
	if b.err != nil {
		return
	}
	if v == nil {
		b.fail(path, ErrMissingAttribute)
		return
	}
	b.rec.set(col, int64(*v))
}

func (b *builder) binType(col, path string, v *string) {
	if b.err != nil {
		return
	}
	if v == nil {
		b.fail(path, ErrMissingAttribute)
		return
	}
	c, err := BinType(*v).Code()
	if err != nil {
		b.fail(path, err)
		return
	}
	b.rec.set(col, c)
}
