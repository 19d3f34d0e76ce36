package rdc

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tres-rdc/internal/triple"
	"tres-rdc/internal/units"
)

func TestFlattenSchema(t *testing.T) {
	for _, layout := range []Layout{LayoutStandard, LayoutLegacy} {
		rec, err := NewFlattener(layout).Flatten(canonicalSnapshot(0))
		if err != nil {
			t.Fatalf("%s: Flatten: %v", layout, err)
		}
		if diff := cmp.Diff(layout.Columns(), rec.Keys()); diff != "" {
			t.Fatalf("%s: record keys mismatch (-want +got):\n%s", layout, diff)
		}
	}
	if n := len(LayoutStandard.Columns()); n != 38 {
		t.Fatalf("standard layout has %d columns, want 38", n)
	}
	if n := len(LayoutLegacy.Columns()); n != 37 {
		t.Fatalf("legacy layout has %d columns, want 37", n)
	}
}

func TestFlattenLiteralValues(t *testing.T) {
	s := canonicalSnapshot(0)
	s.Time = units.Q(2, "Gyr")
	s.MassTransferRate = units.Q(3, "MSun/Myr")
	outer, _ := s.OuterStar()
	outer.Mass = units.Q(5, "MSun")
	outer.SpinAngularFrequency = units.Q(2, "1/yr")
	inner, _ := s.InnerBinary()
	inner.Eccentricity = ptr(0.3)
	inner.SemimajorAxis = units.Q(1, "AU")

	rec, err := NewFlattener(LayoutStandard).Flatten(s)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	exact := map[string]any{
		ColSystemID:       int64(42),
		ColMass3MSun:      5.0,
		ColBinaryE:        0.3,
		ColType1:          int64(1),
		ColType2:          int64(2),
		ColTripleBinType:  int64(4),
		ColBinaryType:     int64(9),
		ColTripleMTStable: int64(1),
		ColDonor1Q:        int64(1),
		ColDonor2Q:        int64(0),
		ColDynInst:        int64(0),
		ColKozaiType:      int64(1),
		ColErrorFlag:      int64(0),
		ColCPUTime:        0.75,
		ColTripleIRel:     1.1,
		ColMCore3MSun:     0.5,
		ColMCore2MSun:     0.9,
	}
	for col, want := range exact {
		got, ok := rec.Get(col)
		if !ok {
			t.Fatalf("missing column %s", col)
		}
		if got != want {
			t.Errorf("%s = %v (%T), want %v (%T)", col, got, got, want, want)
		}
	}

	approx := map[string]float64{
		ColTimeMyr:          2000,
		ColTripleMDotMSunYr: 3e-6,
		ColSpin3MyrInv:      2e6,
		ColBinaryARSun:      215.093991,
	}
	for col, want := range approx {
		got, ok := rec.Float(col)
		if !ok {
			t.Fatalf("missing column %s", col)
		}
		if math.Abs(got-want) > 1e-6*math.Abs(want) {
			t.Errorf("%s = %v, want %v", col, got, want)
		}
	}
}

func TestFlattenLegacyCoreMassCollision(t *testing.T) {
	rec, err := NewFlattener(LayoutLegacy).Flatten(canonicalSnapshot(0))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	got, _ := rec.Get(ColMCore2MSun)
	if got != 0.5 {
		t.Fatalf("legacy %s = %v, want outer core mass 0.5", ColMCore2MSun, got)
	}
	if _, ok := rec.Get(ColMCore3MSun); ok {
		t.Fatalf("legacy record must not carry %s", ColMCore3MSun)
	}
	keys := rec.Keys()
	if keys[27] != ColMCore2MSun || keys[28] != ColDonor3Q {
		t.Fatalf("collision moved %s: %v", ColMCore2MSun, keys[26:30])
	}
}

func TestClassificationCodes(t *testing.T) {
	tags := BinTypes()
	if len(tags) != 19 {
		t.Fatalf("got %d tags, want 19", len(tags))
	}
	for want, tag := range tags {
		got, err := tag.Code()
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if got != int64(want) {
			t.Errorf("%s = %d, want %d", tag, got, want)
		}
	}
	for tag, want := range map[BinType]int64{BinRLOF: 8, BinCEJ: 15, BinDCE: 18, BinUnknown: 0} {
		if got, _ := tag.Code(); got != want {
			t.Errorf("%s = %d, want %d", tag, got, want)
		}
	}
	if _, err := BinType("Detached").Code(); !errors.Is(err, ErrUnknownClassification) {
		t.Fatalf("expected ErrUnknownClassification, got %v", err)
	}
}

func TestFlattenErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*triple.Snapshot)
		path   string
		want   error
	}{
		{
			name:   "unknown inner bin type",
			mutate: func(s *triple.Snapshot) { s.Child2.(*triple.Binary).BinType = ptr("spiralling") },
			path:   "child2.bin_type",
			want:   ErrUnknownClassification,
		},
		{
			name:   "missing eccentricity",
			mutate: func(s *triple.Snapshot) { s.Child2.(*triple.Binary).Eccentricity = nil },
			path:   "child2.eccentricity",
			want:   ErrMissingAttribute,
		},
		{
			name:   "missing outer core mass",
			mutate: func(s *triple.Snapshot) { s.Child1.(*triple.Star).CoreMass = nil },
			path:   "child1.core_mass",
			want:   ErrMissingAttribute,
		},
		{
			name:   "bare number mass",
			mutate: func(s *triple.Snapshot) { s.Child1.(*triple.Star).Mass = units.Q(5, "") },
			path:   "child1.mass",
			want:   units.ErrIncompatible,
		},
		{
			name:   "outer node is a binary",
			mutate: func(s *triple.Snapshot) { s.Child1 = &triple.Binary{} },
			path:   "child1",
			want:   ErrUnexpectedShape,
		},
		{
			name:   "inner node is a star",
			mutate: func(s *triple.Snapshot) { s.Child2 = star(1, 0, 1, 1, false) },
			path:   "child2",
			want:   ErrUnexpectedShape,
		},
		{
			name:   "quadruple",
			mutate: func(s *triple.Snapshot) { s.Child2.(*triple.Binary).Child2 = &triple.Binary{} },
			path:   "child2.child2",
			want:   ErrUnexpectedShape,
		},
		{
			name:   "missing primary",
			mutate: func(s *triple.Snapshot) { s.Child2.(*triple.Binary).Child1 = nil },
			path:   "child2.child1",
			want:   ErrUnexpectedShape,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := canonicalSnapshot(0)
			tc.mutate(s)
			_, err := NewFlattener(LayoutStandard).Flatten(s)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FieldError, got %T", err)
			}
			if fe.Path != tc.path {
				t.Fatalf("path = %q, want %q", fe.Path, tc.path)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	for in, want := range map[string]Layout{"": LayoutStandard, "standard": LayoutStandard, "legacy": LayoutLegacy} {
		got, err := ParseLayout(in)
		if err != nil || got != want {
			t.Errorf("ParseLayout(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLayout("pandas"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestColumnKind(t *testing.T) {
	if ColumnKind(ColType3) != KindInt || ColumnKind(ColMass3MSun) != KindFloat {
		t.Fatalf("unexpected column kinds")
	}
}
