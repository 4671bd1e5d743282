package entity

import (
	"math"
	"sync"
	"testing"
	"time"

	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

func TestManagerSnapshotIsByValue(t *testing.T) {
	m := NewManager()
	m.Add(NewMonster(mathutil.V(3, 4), 7))

	snap := m.VisibleEntities(mathutil.V(0, 0))
	if len(snap) != 1 {
		t.Fatalf("snapshot len = %d, want 1", len(snap))
	}
	if snap[0].Distance != 5 || snap[0].Sprite != 7 || snap[0].Kind != KindMonster {
		t.Errorf("item = %+v", snap[0])
	}

	m.Update(time.Second, Drift{Target: mathutil.V(10, 10), Speed: 2})
	if snap[0].Position != mathutil.V(3, 4) {
		t.Error("snapshot changed after the live entity moved")
	}
}

func TestManagerLoadSpawns(t *testing.T) {
	m := NewManager()
	spawns := []world.Spawn{
		{Kind: world.SpawnMonster, Position: mathutil.V(1.5, 1.5)},
		{Kind: world.SpawnMonster, Position: mathutil.V(2.5, 1.5)},
		{Kind: world.SpawnCollectible, Position: mathutil.V(3.5, 1.5)},
	}
	n := m.LoadSpawns(spawns, SpriteSet{Monsters: []SpriteID{4, 5}, Collectibles: []SpriteID{9}})
	if n != 3 || m.Len() != 3 {
		t.Fatalf("loaded %d, len %d", n, m.Len())
	}
	snap := m.VisibleEntities(mathutil.V(0, 0))
	if snap[0].Sprite != 4 || snap[1].Sprite != 5 || snap[2].Sprite != 9 {
		t.Errorf("sprites = %d %d %d", snap[0].Sprite, snap[1].Sprite, snap[2].Sprite)
	}
	if snap[2].Scale != 0.5 {
		t.Errorf("collectible scale = %v", snap[2].Scale)
	}

	m = NewManager()
	m.LoadSpawns([]world.Spawn{{Kind: world.SpawnEffect, Position: mathutil.V(1.5, 1.5)}},
		SpriteSet{Effects: []SpriteID{20}})
	fx := m.VisibleEntities(mathutil.V(0, 0))[0]
	if fx.Scale != effectScale || fx.HeightOffset != effectLift {
		t.Errorf("effect scale/lift = %v/%v", fx.Scale, fx.HeightOffset)
	}
}

func TestManagerMonstersDrift(t *testing.T) {
	tests := []struct {
		name  string
		drift Drift
		want  mathutil.Vec2
	}{
		{"still without speed", Drift{Target: mathutil.V(5, 0)}, mathutil.V(0, 0)},
		{"one second at 2 cells/s", Drift{Target: mathutil.V(5, 0), Speed: 2}, mathutil.V(2, 0)},
		{"stops short of the target", Drift{Target: mathutil.V(5, 0), Speed: 10, StopDistance: 1}, mathutil.V(4, 0)},
		{"already close enough", Drift{Target: mathutil.V(0.5, 0), Speed: 2, StopDistance: 1}, mathutil.V(0, 0)},
		{
			"no line of sight",
			Drift{Target: mathutil.V(5, 0), Speed: 2, Sees: func(from, to mathutil.Vec2) bool { return false }},
			mathutil.V(0, 0),
		},
		{
			"slide decides the step",
			Drift{Target: mathutil.V(5, 0), Speed: 2, Slide: func(pos, delta mathutil.Vec2) mathutil.Vec2 { return pos }},
			mathutil.V(0, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			m.Add(NewMonster(mathutil.V(0, 0), 0))
			m.Add(NewCollectible(mathutil.V(3, 3), 1))
			m.Update(time.Second, tt.drift)

			snap := m.VisibleEntities(mathutil.V(0, 0))
			if got := snap[0].Position; got.Dist(tt.want) > 1e-12 {
				t.Errorf("monster at %v, want %v", got, tt.want)
			}
			if got := snap[1].Position; got != mathutil.V(3, 3) {
				t.Errorf("collectible moved to %v", got)
			}
		})
	}
}

func TestManagerClosestAndCollect(t *testing.T) {
	m := NewManager()
	m.Add(NewMonster(mathutil.V(5, 0), 0))
	m.Add(NewMonster(mathutil.V(2, 0), 0))
	m.Add(NewCollectible(mathutil.V(0.3, 0), 1))
	m.Add(NewCollectible(mathutil.V(4, 0), 1))

	if d := m.ClosestDistance(KindMonster, mathutil.V(0, 0)); d != 2 {
		t.Errorf("closest monster = %v, want 2", d)
	}
	if d := m.ClosestDistance(KindEffect, mathutil.V(0, 0)); !math.IsInf(d, 1) {
		t.Errorf("closest effect = %v, want +Inf", d)
	}
	if n := m.CollectWithin(mathutil.V(0, 0), 0.5); n != 1 {
		t.Errorf("collected %d, want 1", n)
	}
	if m.Len() != 3 {
		t.Errorf("len = %d, want 3", m.Len())
	}
}

func TestManagerEffectsExpire(t *testing.T) {
	m := NewManager()
	m.Add(NewEffect(mathutil.V(1, 1), 2, 100*time.Millisecond))
	m.Add(NewEffect(mathutil.V(1, 1), 2, 0))

	m.Update(60*time.Millisecond, Drift{})
	if m.Len() != 2 {
		t.Fatalf("len = %d after 60ms", m.Len())
	}
	m.Update(60*time.Millisecond, Drift{})
	if m.Len() != 1 {
		t.Fatalf("len = %d after 120ms, want only the permanent effect", m.Len())
	}
}

func TestManagerConcurrentSnapshots(t *testing.T) {
	m := NewManager()
	m.Add(NewMonster(mathutil.V(0, 0), 0))
	drift := Drift{Target: mathutil.V(1000, 1000), Speed: 1}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			m.Update(10*time.Millisecond, drift)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := m.VisibleEntities(mathutil.V(0, 0))
			if p := snap[0].Position; p.X != p.Y {
				t.Errorf("torn read: %+v", p)
				return
			}
		}
	}()
	wg.Wait()
}
