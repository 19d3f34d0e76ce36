package rdc

import "fmt"

// Column names of the reduced table.
const (
	ColSystemID         = "SystemID"
	ColTimeMyr          = "TimeMyr"
	ColTripleBinType    = "TripleBinType"
	ColTripleMTStable   = "TripleMTStable"
	ColTripleA3RSun     = "TripleA3RSun"
	ColTripleE3         = "TripleE3"
	ColTripleOmega3     = "TripleOmega3"
	ColTripleG3         = "TripleG3"
	ColTripleMDotMSunYr = "TripleMDotMSunYr"
	ColTripleIRel       = "TrileIRel" // historic spelling, downstream scripts read it
	ColBinaryType       = "BinaryType"
	ColBinaryStabMTQ    = "BinaryStabMTQ"
	ColBinaryARSun      = "BinaryARSun"
	ColBinaryE          = "BinaryE"
	ColBinaryomega      = "Binaryomega"
	ColBinaryOmega      = "BinaryOmega"
	ColDonor1Q          = "Donor1Q"
	ColType1            = "Type1"
	ColMass1MSun        = "Mass1MSun"
	ColSpin1MyrInv      = "Spin1MyrInv"
	ColR1RSun           = "R1RSun"
	ColMCore1MSun       = "MCore1MSun"
	ColDonor2Q          = "Donor2Q"
	ColType2            = "Type2"
	ColMass2MSun        = "Mass2MSun"
	ColSpin2MyrInv      = "Spin2MyrInv"
	ColR2RSun           = "R2RSun"
	ColMCore2MSun       = "MCore2MSun"
	ColDonor3Q          = "Donor3Q"
	ColType3            = "Type3"
	ColMass3MSun        = "Mass3MSun"
	ColSpin3MyrInv      = "Spin3MyrInv"
	ColR3RSun           = "R3RSun"
	ColMCore3MSun       = "MCore3MSun"
	ColDynInst          = "DynInst"
	ColKozaiType        = "KozaiType"
	ColErrorFlag        = "ErrorFlag"
	ColCPUTime          = "CPUTime"
)

// Layout selects the column set.
type Layout string

const (
	// LayoutStandard writes the outer star's core mass to MCore3MSun.
	LayoutStandard Layout = "standard"
	// LayoutLegacy reproduces tables written by the earlier reduction
	// script: the outer star's core mass lands in MCore2MSun, replacing the
	// inner secondary's, and MCore3MSun does not exist.
	LayoutLegacy Layout = "legacy"
)

// ParseLayout validates a layout name. The empty string is standard.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutStandard:
		return LayoutStandard, nil
	case LayoutLegacy:
		return LayoutLegacy, nil
	}
	return "", fmt.Errorf("unknown layout %q (want %q or %q)", s, LayoutStandard, LayoutLegacy)
}

// Kind is the value type of a column.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
)

var columnKinds = map[string]Kind{
	ColSystemID:       KindInt,
	ColTripleBinType:  KindInt,
	ColTripleMTStable: KindInt,
	ColBinaryType:     KindInt,
	ColBinaryStabMTQ:  KindInt,
	ColDonor1Q:        KindInt,
	ColType1:          KindInt,
	ColDonor2Q:        KindInt,
	ColType2:          KindInt,
	ColDonor3Q:        KindInt,
	ColType3:          KindInt,
	ColDynInst:        KindInt,
	ColKozaiType:      KindInt,
	ColErrorFlag:      KindInt,
}

// ColumnKind returns whether a column holds int64 or float64 values.
func ColumnKind(name string) Kind {
	return columnKinds[name]
}

var standardColumns = []string{
	ColSystemID, ColTimeMyr,
	ColTripleBinType, ColTripleMTStable, ColTripleA3RSun, ColTripleE3, ColTripleOmega3, ColTripleG3,
	ColTripleMDotMSunYr, ColTripleIRel,
	ColBinaryType, ColBinaryStabMTQ, ColBinaryARSun, ColBinaryE, ColBinaryomega, ColBinaryOmega,
	ColDonor1Q, ColType1, ColMass1MSun, ColSpin1MyrInv, ColR1RSun, ColMCore1MSun,
	ColDonor2Q, ColType2, ColMass2MSun, ColSpin2MyrInv, ColR2RSun, ColMCore2MSun,
	ColDonor3Q, ColType3, ColMass3MSun, ColSpin3MyrInv, ColR3RSun, ColMCore3MSun,
	ColDynInst, ColKozaiType, ColErrorFlag, ColCPUTime,
}

// Columns returns the column order of the layout.
func (l Layout) Columns() []string {
	out := make([]string, 0, len(standardColumns))
	for _, c := range standardColumns {
		if c == ColMCore3MSun && l == LayoutLegacy {
			continue
		}
		out = append(out, c)
	}
	return out
}

// outerCoreMassColumn is where the tertiary's core mass is written.
func (l Layout) outerCoreMassColumn() string {
	if l == LayoutLegacy {
		return ColMCore2MSun
	}
	return ColMCore3MSun
}
