package rdc

import (
	"tres-rdc/internal/triple"
	"tres-rdc/internal/units"
)

func ptr[T any](v T) *T { return &v }

func flag(b bool) *triple.Flag {
	f := triple.Flag(b)
	return &f
}

func code(n int64) *triple.Code {
	c := triple.Code(n)
	return &c
}

func star(mass, core, radius float64, stype int64, donor bool) *triple.Star {
	return &triple.Star{
		StellarType:          units.Q(float64(stype), "stellar_type"),
		Mass:                 units.Q(mass, "MSun"),
		CoreMass:             units.Q(core, "MSun"),
		Radius:               units.Q(radius, "RSun"),
		SpinAngularFrequency: units.Q(10, "1/Myr"),
		IsDonor:              flag(donor),
	}
}

// canonicalSnapshot is a detached triple with distinct values in every field.
func canonicalSnapshot(timeMyr float64) *triple.Snapshot {
	return &triple.Snapshot{
		Number: code(42),
		Time:   units.Q(timeMyr, "Myr"),
		Orbit: triple.Orbit{
			BinType:                  ptr("detached"),
			IsMTStable:               flag(true),
			SemimajorAxis:            units.Q(5000, "RSun"),
			Eccentricity:             ptr(0.4),
			ArgumentOfPericenter:     ptr(0.5),
			LongitudeOfAscendingNode: ptr(0.6),
		},
		MassTransferRate:     units.Q(0, "MSun/yr"),
		RelativeInclination:  ptr(1.1),
		DynamicalInstability: flag(false),
		KozaiType:            code(1),
		ErrorFlagSecular:     code(0),
		CPUTime:              ptr(0.75),
		Child1:               star(5, 0.5, 3, 1, false),
		Child2: &triple.Binary{
			Orbit: triple.Orbit{
				BinType:                  ptr("stable_mass_transfer"),
				IsMTStable:               flag(true),
				SemimajorAxis:            units.Q(20, "RSun"),
				Eccentricity:             ptr(0.3),
				ArgumentOfPericenter:     ptr(0.2),
				LongitudeOfAscendingNode: ptr(0.1),
			},
			Child1: star(8, 1.2, 4, 1, true),
			Child2: star(6, 0.9, 2.5, 2, false),
		},
	}
}
