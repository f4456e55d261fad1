package gtw

import "strings"

// Side identifies one of the two nuclear powers.
type Side int

const (
	SideUS Side = iota
	SideUSSR
)

func (s Side) String() string {
	if s == SideUSSR {
		return "USSR"
	}
	return "US"
}

// Enemy returns the opposing side.
func (s Side) Enemy() Side {
	if s == SideUS {
		return SideUSSR
	}
	return SideUS
}

// Class groups targets by what a strike on them destroys.
type Class int

const (
	ClassCity Class = iota
	ClassMilitary
	ClassIndustrial
)

func (c Class) String() string {
	switch c {
	case ClassMilitary:
		return "MILITARY"
	case ClassIndustrial:
		return "INDUSTRIAL"
	default:
		return "CITY"
	}
}

// Grid is an abstract theater map coordinate. Each side's theater is a
// fixed box; X grows eastward, Y southward.
type Grid struct {
	X, Y int
}

// Target is one strikeable site. Population is urban population for
// cities and zero otherwise; casualty estimates for military and
// industrial sites come from class bands instead.
type Target struct {
	Name       string
	Side       Side
	Class      Class
	Grid       Grid
	Population int
	Destroyed  bool
}

// targetTable is the Cold War era target set: per side, twenty cities,
// ten military installations and five industrial centers.
var targetTable = []Target{
	{Name: "NEW YORK", Side: SideUS, Class: ClassCity, Grid: Grid{X: 26, Y: 3}, Population: 7900000},
	{Name: "LOS ANGELES", Side: SideUS, Class: ClassCity, Grid: Grid{X: 6, Y: 5}, Population: 3500000},
	{Name: "CHICAGO", Side: SideUS, Class: ClassCity, Grid: Grid{X: 20, Y: 3}, Population: 3000000},
	{Name: "HOUSTON", Side: SideUS, Class: ClassCity, Grid: Grid{X: 16, Y: 7}, Population: 1600000},
	{Name: "PHILADELPHIA", Side: SideUS, Class: ClassCity, Grid: Grid{X: 26, Y: 4}, Population: 1700000},
	{Name: "PHOENIX", Side: SideUS, Class: ClassCity, Grid: Grid{X: 8, Y: 6}, Population: 800000},
	{Name: "SAN ANTONIO", Side: SideUS, Class: ClassCity, Grid: Grid{X: 15, Y: 7}, Population: 800000},
	{Name: "SAN DIEGO", Side: SideUS, Class: ClassCity, Grid: Grid{X: 6, Y: 6}, Population: 900000},
	{Name: "DALLAS", Side: SideUS, Class: ClassCity, Grid: Grid{X: 16, Y: 6}, Population: 1000000},
	{Name: "SAN JOSE", Side: SideUS, Class: ClassCity, Grid: Grid{X: 4, Y: 4}, Population: 600000},
	{Name: "DETROIT", Side: SideUS, Class: ClassCity, Grid: Grid{X: 22, Y: 3}, Population: 1200000},
	{Name: "SAN FRANCISCO", Side: SideUS, Class: ClassCity, Grid: Grid{X: 4, Y: 4}, Population: 700000},
	{Name: "BOSTON", Side: SideUS, Class: ClassCity, Grid: Grid{X: 28, Y: 3}, Population: 600000},
	{Name: "SEATTLE", Side: SideUS, Class: ClassCity, Grid: Grid{X: 4, Y: 1}, Population: 500000},
	{Name: "DENVER", Side: SideUS, Class: ClassCity, Grid: Grid{X: 12, Y: 4}, Population: 500000},
	{Name: "WASHINGTON DC", Side: SideUS, Class: ClassCity, Grid: Grid{X: 25, Y: 4}, Population: 700000},
	{Name: "ATLANTA", Side: SideUS, Class: ClassCity, Grid: Grid{X: 22, Y: 5}, Population: 400000},
	{Name: "MIAMI", Side: SideUS, Class: ClassCity, Grid: Grid{X: 23, Y: 8}, Population: 400000},
	{Name: "MINNEAPOLIS", Side: SideUS, Class: ClassCity, Grid: Grid{X: 17, Y: 2}, Population: 400000},
	{Name: "ST LOUIS", Side: SideUS, Class: ClassCity, Grid: Grid{X: 19, Y: 4}, Population: 500000},
	{Name: "NORAD CHEYENNE MOUNTAIN", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 12, Y: 4}},
	{Name: "OFFUTT AFB OMAHA", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 16, Y: 3}},
	{Name: "MINUTEMAN SILOS MONTANA", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 9, Y: 1}},
	{Name: "MINUTEMAN SILOS WYOMING", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 12, Y: 3}},
	{Name: "MINUTEMAN SILOS NORTH DAKOTA", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 14, Y: 1}},
	{Name: "NORFOLK NAVAL BASE", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 25, Y: 5}},
	{Name: "KINGS BAY SUBMARINE BASE", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 23, Y: 6}},
	{Name: "BANGOR SUBMARINE BASE", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 3, Y: 1}},
	{Name: "NELLIS AFB", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 7, Y: 5}},
	{Name: "WRIGHT-PATTERSON AFB", Side: SideUS, Class: ClassMilitary, Grid: Grid{X: 22, Y: 4}},
	{Name: "PITTSBURGH STEEL WORKS", Side: SideUS, Class: ClassIndustrial, Grid: Grid{X: 24, Y: 3}},
	{Name: "GARY STEEL MILLS", Side: SideUS, Class: ClassIndustrial, Grid: Grid{X: 20, Y: 3}},
	{Name: "HOUSTON REFINERIES", Side: SideUS, Class: ClassIndustrial, Grid: Grid{X: 16, Y: 7}},
	{Name: "SILICON VALLEY", Side: SideUS, Class: ClassIndustrial, Grid: Grid{X: 4, Y: 4}},
	{Name: "OAK RIDGE FACILITY", Side: SideUS, Class: ClassIndustrial, Grid: Grid{X: 22, Y: 5}},
	{Name: "MOSCOW", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 4, Y: 4}, Population: 8000000},
	{Name: "LENINGRAD", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 2, Y: 3}, Population: 4500000},
	{Name: "KIEV", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 2, Y: 6}, Population: 2500000},
	{Name: "TASHKENT", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 11, Y: 8}, Population: 2000000},
	{Name: "BAKU", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 7, Y: 8}, Population: 1700000},
	{Name: "KHARKOV", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 4, Y: 6}, Population: 1500000},
	{Name: "MINSK", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 2, Y: 5}, Population: 1400000},
	{Name: "GORKY", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 5, Y: 4}, Population: 1300000},
	{Name: "NOVOSIBIRSK", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 14, Y: 4}, Population: 1400000},
	{Name: "SVERDLOVSK", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 9, Y: 4}, Population: 1200000},
	{Name: "KUIBYSHEV", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 7, Y: 5}, Population: 1200000},
	{Name: "TBILISI", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 6, Y: 8}, Population: 1100000},
	{Name: "ODESSA", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 2, Y: 7}, Population: 1000000},
	{Name: "CHELYABINSK", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 9, Y: 4}, Population: 1000000},
	{Name: "DNEPROPETROVSK", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 3, Y: 6}, Population: 1000000},
	{Name: "KAZAN", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 7, Y: 4}, Population: 1000000},
	{Name: "VOLGOGRAD", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 6, Y: 6}, Population: 950000},
	{Name: "ALMA-ATA", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 13, Y: 8}, Population: 900000},
	{Name: "RIGA", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 1, Y: 4}, Population: 850000},
	{Name: "VLADIVOSTOK", Side: SideUSSR, Class: ClassCity, Grid: Grid{X: 25, Y: 8}, Population: 600000},
	{Name: "MOSCOW COMMAND BUNKER", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 4, Y: 4}},
	{Name: "PLESETSK COSMODROME", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 5, Y: 2}},
	{Name: "BAIKONUR COSMODROME", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 10, Y: 7}},
	{Name: "SEVEROMORSK NAVAL BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 3, Y: 1}},
	{Name: "PETROPAVLOVSK SUB BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 32, Y: 5}},
	{Name: "ENGELS AIR BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 6, Y: 5}},
	{Name: "DOMBAROVSKY ICBM BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 9, Y: 6}},
	{Name: "ALEYSK ICBM BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 14, Y: 5}},
	{Name: "KARTALY ICBM BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 9, Y: 5}},
	{Name: "TATISHCHEVO ICBM BASE", Side: SideUSSR, Class: ClassMilitary, Grid: Grid{X: 6, Y: 5}},
	{Name: "MAGNITOGORSK STEEL", Side: SideUSSR, Class: ClassIndustrial, Grid: Grid{X: 9, Y: 5}},
	{Name: "NIZHNY TAGIL TANK FACTORY", Side: SideUSSR, Class: ClassIndustrial, Grid: Grid{X: 9, Y: 4}},
	{Name: "KRASNOYARSK-26 PLANT", Side: SideUSSR, Class: ClassIndustrial, Grid: Grid{X: 17, Y: 4}},
	{Name: "CHELYABINSK-40 COMPLEX", Side: SideUSSR, Class: ClassIndustrial, Grid: Grid{X: 9, Y: 4}},
	{Name: "TOMSK-7 FACILITY", Side: SideUSSR, Class: ClassIndustrial, Grid: Grid{X: 15, Y: 4}},
}

// loadTargets returns a fresh, independently mutable copy of the
// target set for one game.
func loadTargets() []*Target {
	out := make([]*Target, len(targetTable))
	for i := range targetTable {
		t := targetTable[i]
		out[i] = &t
	}
	return out
}

// bySide filters targets belonging to one side, preserving table order.
func bySide(ts []*Target, side Side) []*Target {
	var out []*Target
	for _, t := range ts {
		if t.Side == side {
			out = append(out, t)
		}
	}
	return out
}

// findTarget resolves a cleaned name against one side's targets. An
// exact name wins outright; otherwise a substring match must be unique
// or the lookup reports ambiguity.
func findTarget(ts []*Target, side Side, name string) (t *Target, ambiguous bool) {
	var sub []*Target
	for _, cand := range ts {
		if cand.Side != side {
			continue
		}
		if cand.Name == name {
			return cand, false
		}
		if strings.Contains(cand.Name, name) {
			sub = append(sub, cand)
		}
	}
	switch len(sub) {
	case 0:
		return nil, false
	case 1:
		return sub[0], false
	default:
		return nil, true
	}
}
