package obstacle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/vi-runner/parameter"
)

func newTestGenerator(t *testing.T, cfg Config, catalog Catalog, seed uint64) *Generator {
	t.Helper()
	g, err := NewGenerator(cfg, catalog, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func smallCactusOnly() Catalog {
	return Catalog{*DefaultCatalog().Find(KindCactusSmall)}
}

func TestGapWithinBounds(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), DefaultCatalog(), 1)

	for _, speed := range []float64{6, 7.5, 9, 13} {
		for i := 0; i < 300; i++ {
			o, err := g.SpawnNext(speed)
			if err != nil {
				t.Fatalf("SpawnNext(%v): %v", speed, err)
			}
			minGap, maxGap := g.GapBounds(o.Type, o.Width, speed)
			if o.Gap < minGap || o.Gap > maxGap {
				t.Fatalf("%s size %d at speed %v: gap %d outside [%d, %d]", o.Kind(), o.Size, speed, o.Gap, minGap, maxGap)
			}
		}
	}
}

func TestGapBoundsValues(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), DefaultCatalog(), 1)
	small := DefaultCatalog().Find(KindCactusSmall)

	// round(17*6 + 120*0.6) = 174, round(174*1.5) = 261
	minGap, maxGap := g.GapBounds(small, 17, 6)
	if minGap != 174 || maxGap != 261 {
		t.Errorf("GapBounds = [%d, %d], want [174, 261]", minGap, maxGap)
	}
}

func TestMinGapMonotonicInSpeed(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), DefaultCatalog(), 1)

	for _, typ := range DefaultCatalog() {
		prev := -1
		for speed := 0.0; speed <= 20; speed += 0.25 {
			minGap, _ := g.GapBounds(&typ, typ.Width, speed)
			if minGap < prev {
				t.Fatalf("%s: min gap decreased at speed %v: %d < %d", typ.Kind, speed, minGap, prev)
			}
			prev = minGap
		}
	}
}

func TestNoTripleRepeats(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), DefaultCatalog(), 42)

	var kinds []string
	for i := 0; i < 2000; i++ {
		o, err := g.SpawnNext(10)
		if err != nil {
			t.Fatalf("SpawnNext: %v", err)
		}
		kinds = append(kinds, o.Kind())
	}

	for i := 2; i < len(kinds); i++ {
		if kinds[i] == kinds[i-1] && kinds[i] == kinds[i-2] {
			t.Fatalf("kind %s spawned three times in a row at %d", kinds[i], i)
		}
	}
}

func TestSpawnStarvation(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), smallCactusOnly(), 3)

	for i := 0; i < parameter.MaxObstacleDuplication; i++ {
		if _, err := g.SpawnNext(6); err != nil {
			t.Fatalf("spawn %d: %v", i, err)
		}
	}
	if _, err := g.SpawnNext(6); !errors.Is(err, ErrSpawnStarvation) {
		t.Errorf("expected ErrSpawnStarvation, got %v", err)
	}
}

func TestSpawnStarvationBelowMinSpeed(t *testing.T) {
	catalog := Catalog{*DefaultCatalog().Find(KindPterodactyl)}
	g := newTestGenerator(t, DefaultConfig(), catalog, 3)

	if _, err := g.SpawnNext(6); !errors.Is(err, ErrSpawnStarvation) {
		t.Errorf("expected ErrSpawnStarvation below min speed, got %v", err)
	}
	if _, err := g.SpawnNext(9); err != nil {
		t.Errorf("pterodactyl should spawn at speed 9: %v", err)
	}
}

func TestUnlimitedDuplication(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDuplication = 0
	g := newTestGenerator(t, cfg, smallCactusOnly(), 3)

	for i := 0; i < 10; i++ {
		if _, err := g.SpawnNext(6); err != nil {
			t.Fatalf("spawn %d: %v", i, err)
		}
	}
}

func TestSizeDowngradeAndBoxes(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), smallCactusOnly(), 9)
	g.cfg.MaxDuplication = 0
	g.history = NewHistory(0)

	for i := 0; i < 100; i++ {
		o, _ := g.SpawnNext(3)
		if o.Size != 1 {
			t.Fatalf("size %d below multiple speed", o.Size)
		}
	}

	sawWide := false
	for i := 0; i < 200; i++ {
		o, _ := g.SpawnNext(6)
		if o.Width != o.Type.Width*o.Size {
			t.Fatalf("width %d does not match size %d", o.Width, o.Size)
		}
		if o.Size == 1 {
			continue
		}
		sawWide = true
		last := o.Boxes[2]
		if last.X+last.Width != o.Width {
			t.Errorf("last box not flush with right edge: %+v width %d", last, o.Width)
		}
		if o.Boxes[1].Width != o.Width-o.Boxes[0].Width-o.Boxes[2].Width {
			t.Errorf("middle box width %d not spanning", o.Boxes[1].Width)
		}
		if o.Type.Boxes[1].Width != 6 || o.Type.Boxes[2].X != 10 {
			t.Fatal("instance adjustment leaked into the type template")
		}
	}
	if !sawWide {
		t.Error("expected some multi-unit obstacles at speed 6")
	}
}

func TestPterodactylPlacement(t *testing.T) {
	catalog := Catalog{*DefaultCatalog().Find(KindPterodactyl)}
	cfg := DefaultConfig()
	cfg.MaxDuplication = 0
	cfg.SmallViewport = true
	g := newTestGenerator(t, cfg, catalog, 5)

	for i := 0; i < 100; i++ {
		o, err := g.SpawnNext(10)
		if err != nil {
			t.Fatal(err)
		}
		if o.Y != 100 && o.Y != 50 {
			t.Fatalf("small viewport y %d not in small set", o.Y)
		}
		if o.SpeedOffset != 0.8 && o.SpeedOffset != -0.8 {
			t.Fatalf("unexpected speed offset %v", o.SpeedOffset)
		}
	}
}

func TestAdvanceSpawnMoveRemove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDuplication = 0
	g := newTestGenerator(t, cfg, smallCactusOnly(), 11)

	if g.Lead() != nil {
		t.Fatal("expected no lead before the first advance")
	}
	if err := g.Advance(parameter.MsPerFrame, 6); err != nil {
		t.Fatal(err)
	}
	lead := g.Lead()
	if lead == nil {
		t.Fatal("expected a spawn on an empty stream")
	}
	if lead.X != parameter.CanvasWidth+17 {
		t.Errorf("new obstacle at x %d, want %d", lead.X, parameter.CanvasWidth+17)
	}

	if err := g.Advance(parameter.MsPerFrame, 6); err != nil {
		t.Fatal(err)
	}
	if lead.X != parameter.CanvasWidth+17-6 {
		t.Errorf("expected 6px travel per frame at speed 6, x = %d", lead.X)
	}

	// Follower appears once the lead has scrolled its gap into view
	for len(g.Obstacles()) < 2 {
		before := lead.X
		if err := g.Advance(parameter.MsPerFrame, 6); err != nil {
			t.Fatal(err)
		}
		if len(g.Obstacles()) == 2 {
			if lead.X+lead.Width+lead.Gap >= parameter.CanvasWidth {
				t.Errorf("follower spawned early: x %d width %d gap %d", lead.X, lead.Width, lead.Gap)
			}
			if before+lead.Width+lead.Gap < parameter.CanvasWidth {
				t.Errorf("follower spawned late")
			}
		}
	}
	if !lead.FollowerCreated {
		t.Error("lead not marked after spawning its follower")
	}

	for i := 0; i < 200 && !lead.Remove; i++ {
		if err := g.Advance(parameter.MsPerFrame, 6); err != nil {
			t.Fatal(err)
		}
	}
	if !lead.Remove {
		t.Fatal("lead never left the canvas")
	}
	if g.Lead() == lead {
		t.Error("removed obstacle still reported as lead")
	}
	for _, o := range g.Obstacles() {
		if o.X+o.Width <= 0 {
			t.Errorf("off-canvas obstacle kept at x %d", o.X)
		}
	}
}

func TestResetKeepsHistory(t *testing.T) {
	g := newTestGenerator(t, DefaultConfig(), DefaultCatalog(), 2)
	if err := g.Advance(parameter.MsPerFrame, 6); err != nil {
		t.Fatal(err)
	}

	g.Reset()
	g.Reset()
	if len(g.Obstacles()) != 0 || g.Lead() != nil {
		t.Error("Reset left obstacles behind")
	}
	if len(g.History().Kinds()) != 1 {
		t.Errorf("expected history to survive reset, got %v", g.History().Kinds())
	}
}

func TestNewGeneratorRejectsMalformedCatalog(t *testing.T) {
	bad := DefaultCatalog()
	bad[0].Boxes = nil
	if _, err := NewGenerator(DefaultConfig(), bad, nil); !errors.Is(err, ErrMalformedObstacleType) {
		t.Errorf("expected ErrMalformedObstacleType, got %v", err)
	}
}
