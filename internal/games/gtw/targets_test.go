package gtw

import "testing"

func TestTargetTableShape(t *testing.T) {
	counts := map[Side]map[Class]int{
		SideUS:   {},
		SideUSSR: {},
	}
	names := map[string]bool{}
	for _, tgt := range targetTable {
		counts[tgt.Side][tgt.Class]++
		if names[tgt.Name] {
			t.Errorf("duplicate target name %q", tgt.Name)
		}
		names[tgt.Name] = true

		if tgt.Grid.X < 0 || tgt.Grid.X >= theaterWidth || tgt.Grid.Y < 0 || tgt.Grid.Y >= theaterHeight {
			t.Errorf("%s grid %+v outside theater bounds", tgt.Name, tgt.Grid)
		}
		if tgt.Class == ClassCity && tgt.Population <= 0 {
			t.Errorf("city %s has no population", tgt.Name)
		}
		if tgt.Class != ClassCity && tgt.Population != 0 {
			t.Errorf("%s is not a city but carries a population", tgt.Name)
		}
	}
	if len(targetTable) != 70 {
		t.Errorf("table holds %d targets, want 70", len(targetTable))
	}
	for _, side := range []Side{SideUS, SideUSSR} {
		if got := counts[side][ClassCity]; got != 20 {
			t.Errorf("%s cities = %d, want 20", side, got)
		}
		if got := counts[side][ClassMilitary]; got != 10 {
			t.Errorf("%s military = %d, want 10", side, got)
		}
		if got := counts[side][ClassIndustrial]; got != 5 {
			t.Errorf("%s industrial = %d, want 5", side, got)
		}
	}
}

func TestLoadTargetsIsolatesGames(t *testing.T) {
	first := loadTargets()
	first[0].Destroyed = true
	second := loadTargets()
	if second[0].Destroyed {
		t.Error("loadTargets must return independent copies per game")
	}
	if targetTable[0].Destroyed {
		t.Error("mutating a loaded target must not touch the table")
	}
}

func TestFindTarget(t *testing.T) {
	ts := loadTargets()

	got, ambiguous := findTarget(ts, SideUSSR, "MOSCOW")
	if ambiguous {
		t.Fatal("exact name must win over substring matches")
	}
	if got == nil || got.Name != "MOSCOW" || got.Class != ClassCity {
		t.Fatalf("findTarget(MOSCOW) = %+v, want the city", got)
	}

	got, ambiguous = findTarget(ts, SideUSSR, "BUNKER")
	if ambiguous || got == nil || got.Name != "MOSCOW COMMAND BUNKER" {
		t.Errorf("findTarget(BUNKER) = %+v (ambiguous=%v), want MOSCOW COMMAND BUNKER", got, ambiguous)
	}

	if got, ambiguous = findTarget(ts, SideUS, "MINUTEMAN"); !ambiguous || got != nil {
		t.Errorf("findTarget(MINUTEMAN) = %+v (ambiguous=%v), want ambiguous", got, ambiguous)
	}

	if got, _ = findTarget(ts, SideUS, "MOSCOW"); got != nil {
		t.Errorf("findTarget on the wrong side = %+v, want nil", got)
	}
}

func TestSideEnemy(t *testing.T) {
	if SideUS.Enemy() != SideUSSR || SideUSSR.Enemy() != SideUS {
		t.Error("Enemy must swap sides")
	}
	if SideUS.String() != "US" || SideUSSR.String() != "USSR" {
		t.Errorf("side names = %q/%q, want US/USSR", SideUS, SideUSSR)
	}
}
