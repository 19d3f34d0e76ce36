// Package triple holds the hierarchical triple-star snapshots recorded by the
// evolution code: an outer star orbiting an inner binary of two stars.
package triple

import "tres-rdc/internal/units"

// Node is either a *Star or a *Binary.
type Node interface {
	isNode()
}

// Star is a leaf of the hierarchy.
type Star struct {
	StellarType          *units.Quantity `json:"stellar_type"`
	Mass                 *units.Quantity `json:"mass"`
	CoreMass             *units.Quantity `json:"core_mass"`
	Radius               *units.Quantity `json:"radius"`
	SpinAngularFrequency *units.Quantity `json:"spin_angular_frequency"`
	IsDonor              *Flag           `json:"is_donor"`
}

// Orbit carries the attributes shared by every internal node: its
// mass-transfer classification and orbital elements.
type Orbit struct {
	BinType                  *string         `json:"bin_type"`
	IsMTStable               *Flag           `json:"is_mt_stable"`
	SemimajorAxis            *units.Quantity `json:"semimajor_axis"`
	Eccentricity             *float64        `json:"eccentricity"`
	ArgumentOfPericenter     *float64        `json:"argument_of_pericenter"`
	LongitudeOfAscendingNode *float64        `json:"longitude_of_ascending_node"`
}

// Binary is an internal node with exactly two children.
type Binary struct {
	Orbit
	Child1 Node `json:"-"`
	Child2 Node `json:"-"`
}

// Snapshot is one recorded state of a triple. Child1 is the outer star and
// Child2 the inner binary.
type Snapshot struct {
	Number *Code           `json:"number"`
	Time   *units.Quantity `json:"time"`
	Orbit
	MassTransferRate     *units.Quantity `json:"mass_transfer_rate"`
	RelativeInclination  *float64        `json:"relative_inclination"`
	DynamicalInstability *Flag           `json:"dynamical_instability"`
	KozaiType            *Code           `json:"kozai_type"`
	ErrorFlagSecular     *Code           `json:"error_flag_secular"`
	CPUTime              *float64        `json:"CPU_time"`

	Child1 Node `json:"-"`
	Child2 Node `json:"-"`
}

func (*Star) isNode()   {}
func (*Binary) isNode() {}

// OuterStar returns the tertiary, if child1 is a star.
func (s *Snapshot) OuterStar() (*Star, bool) {
	st, ok := s.Child1.(*Star)
	return st, ok && st != nil
}

// InnerBinary returns the inner binary, if child2 is a binary.
func (s *Snapshot) InnerBinary() (*Binary, bool) {
	b, ok := s.Child2.(*Binary)
	return b, ok && b != nil
}

// Primary returns child1 of the binary, if it is a star.
func (b *Binary) Primary() (*Star, bool) {
	st, ok := b.Child1.(*Star)
	return st, ok && st != nil
}

// Secondary returns child2 of the binary, if it is a star.
func (b *Binary) Secondary() (*Star, bool) {
	st, ok := b.Child2.(*Star)
	return st, ok && st != nil
}
