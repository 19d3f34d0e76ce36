// Package units converts physical quantities between the unit systems used by
// the triple-evolution history and the display units of the reduced table.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownUnit  = errors.New("unknown unit")
	ErrIncompatible = errors.New("incompatible units")
)

// dimension holds the exponents of mass, length and time.
type dimension [3]int

// Unit is a scale factor to SI plus a dimension.
type Unit struct {
	name  string
	scale float64
	dim   dimension
}

// String returns the expression the unit was parsed from.
func (u Unit) String() string {
	return u.name
}

// Compatible reports whether values in u can be expressed in o.
func (u Unit) Compatible(o Unit) bool {
	return u.dim == o.dim
}

const (
	secondsPerDay = 86400.0
	daysPerYear   = 365.242199
)

var named = map[string]Unit{
	"none":         {name: "none", scale: 1},
	"stellar_type": {name: "stellar_type", scale: 1},

	"kg":       {name: "kg", scale: 1, dim: dimension{1, 0, 0}},
	"g":        {name: "g", scale: 1e-3, dim: dimension{1, 0, 0}},
	"MSun":     {name: "MSun", scale: 1.98892e30, dim: dimension{1, 0, 0}},
	"MJupiter": {name: "MJupiter", scale: 1.8987e27, dim: dimension{1, 0, 0}},
	"MEarth":   {name: "MEarth", scale: 5.9722e24, dim: dimension{1, 0, 0}},

	"m":    {name: "m", scale: 1, dim: dimension{0, 1, 0}},
	"cm":   {name: "cm", scale: 1e-2, dim: dimension{0, 1, 0}},
	"km":   {name: "km", scale: 1e3, dim: dimension{0, 1, 0}},
	"RSun": {name: "RSun", scale: 6.955e8, dim: dimension{0, 1, 0}},
	"AU":   {name: "AU", scale: 149597870691.0, dim: dimension{0, 1, 0}},
	"pc":   {name: "pc", scale: 3.08568025e16, dim: dimension{0, 1, 0}},

	"s":   {name: "s", scale: 1, dim: dimension{0, 0, 1}},
	"day": {name: "day", scale: secondsPerDay, dim: dimension{0, 0, 1}},
	"yr":  {name: "yr", scale: daysPerYear * secondsPerDay, dim: dimension{0, 0, 1}},
	"kyr": {name: "kyr", scale: 1e3 * daysPerYear * secondsPerDay, dim: dimension{0, 0, 1}},
	"Myr": {name: "Myr", scale: 1e6 * daysPerYear * secondsPerDay, dim: dimension{0, 0, 1}},
	"Gyr": {name: "Gyr", scale: 1e9 * daysPerYear * secondsPerDay, dim: dimension{0, 0, 1}},
}

var aliases = map[string]string{
	"Msun":     "MSun",
	"msun":     "MSun",
	"Rsun":     "RSun",
	"rsun":     "RSun",
	"au":       "AU",
	"parsec":   "pc",
	"julianyr": "yr",
	"year":     "yr",
	"myr":      "Myr",
	"gyr":      "Gyr",
	"MJup":     "MJupiter",
}

// Display units of the reduced table.
var (
	None        = named["none"]
	StellarType = named["stellar_type"]
	MSun        = named["MSun"]
	RSun        = named["RSun"]
	Myr         = named["Myr"]
	MSunPerYr   = MustParse("MSun/yr")
	PerMyr      = MustParse("1/Myr")
)

// MustParse is like Parse but panics on error.
func MustParse(expr string) Unit {
	u, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return u
}

// Parse reads a unit expression such as "MSun", "MSun/yr", "1/Myr",
// "Myr**-1" or "MSun * yr^-1". The empty expression is dimensionless.
func Parse(expr string) (Unit, error) {
	s := strings.Join(strings.Fields(expr), "")
	if s == "" {
		return None, nil
	}
	if u, ok := lookup(s); ok {
		return u, nil
	}
	s = strings.ReplaceAll(s, "**", "^")

	u := Unit{name: strings.TrimSpace(expr), scale: 1}
	op := byte('*')
	for {
		tok, rest := s, ""
		if j := strings.IndexAny(s, "*/"); j >= 0 {
			tok, rest = s[:j], s[j:]
		}
		if err := u.apply(tok, op); err != nil {
			return Unit{}, fmt.Errorf("parse unit %q: %w", expr, err)
		}
		if rest == "" {
			return u, nil
		}
		op, s = rest[0], rest[1:]
		if s == "" {
			return Unit{}, fmt.Errorf("parse unit %q: trailing %q", expr, op)
		}
	}
}

func (u *Unit) apply(tok string, op byte) error {
	name, exp := tok, 1
	if k := strings.IndexByte(tok, '^'); k >= 0 {
		name = tok[:k]
		e, err := strconv.Atoi(strings.Trim(tok[k+1:], "()"))
		if err != nil {
			return fmt.Errorf("bad exponent in %q", tok)
		}
		exp = e
	}
	if op == '/' {
		exp = -exp
	}
	if name == "1" {
		return nil
	}
	base, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	u.scale *= math.Pow(base.scale, float64(exp))
	for i := range u.dim {
		u.dim[i] += base.dim[i] * exp
	}
	return nil
}

func lookup(name string) (Unit, bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	u, ok := named[name]
	return u, ok
}

// Convert expresses v, given in from, in the unit to.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.Compatible(to) {
		return 0, fmt.Errorf("%w: cannot convert %s to %s", ErrIncompatible, from.label(), to.label())
	}
	return v * (from.scale / to.scale), nil
}

func (u Unit) label() string {
	if u.name == "" {
		return "none"
	}
	return u.name
}
