package entity

import (
	"math"
	"sync"
	"time"

	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

// SpriteSet picks sprites for entities created from map spawns.
type SpriteSet struct {
	Monsters     []SpriteID
	Collectibles []SpriteID
	Effects      []SpriteID
}

func (s SpriteSet) pick(ids []SpriteID, i int) SpriteID {
	if len(ids) == 0 {
		return 0
	}
	return ids[i%len(ids)]
}

type entry struct {
	id   ID
	view View
}

// Manager owns the live entities. Game logic mutates it from any goroutine;
// the renderer only ever sees Snapshots.
type Manager struct {
	mu      sync.RWMutex
	entries []entry
	nextID  ID
}

func NewManager() *Manager {
	return &Manager{nextID: 1}
}

// Add registers a view and returns its id.
func (m *Manager) Add(v View) ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.entries = append(m.entries, entry{id: id, view: v})
	return id
}

// LoadSpawns creates one entity per map spawn, cycling through sprites.
func (m *Manager) LoadSpawns(spawns []world.Spawn, sprites SpriteSet) int {
	var nm, nc, ne int
	for _, s := range spawns {
		switch s.Kind {
		case world.SpawnMonster:
			m.Add(NewMonster(s.Position, sprites.pick(sprites.Monsters, nm)))
			nm++
		case world.SpawnCollectible:
			m.Add(NewCollectible(s.Position, sprites.pick(sprites.Collectibles, nc)))
			nc++
		case world.SpawnEffect:
			fx := NewEffect(s.Position, sprites.pick(sprites.Effects, ne), 0)
			m.Add(fx.WithScale(effectScale, effectLift))
			ne++
		}
	}
	return nm + nc + ne
}

// Len returns the number of live entities.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// VisibleEntities captures every entity by value, in insertion order, with
// distances measured from `from`.
func (m *Manager) VisibleEntities(from mathutil.Vec2) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(Snapshot, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, itemOf(e.id, e.view, from))
	}
	return out
}

// ClosestDistance returns the distance to the nearest entity of a kind, or
// +Inf if there is none.
func (m *Manager) ClosestDistance(kind Kind, from mathutil.Vec2) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	best := math.Inf(1)
	for _, e := range m.entries {
		if e.view.Kind() != kind {
			continue
		}
		if d := e.view.Position().Dist(from); d < best {
			best = d
		}
	}
	return best
}

// CollectWithin removes collectibles within radius of pos and returns how
// many were picked up.
func (m *Manager) CollectWithin(pos mathutil.Vec2, radius float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	r2 := radius * radius
	kept := m.entries[:0]
	n := 0
	for _, e := range m.entries {
		if e.view.Kind() == KindCollectible && e.view.Position().DistSq(pos) <= r2 {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return n
}

// Drift steers monsters toward Target during Update. A zero Speed leaves
// them in place. Slide resolves each step against walls and Sees gates the
// chase on line of sight; nil skips either check.
type Drift struct {
	Target       mathutil.Vec2
	Speed        float64 // cells per second
	StopDistance float64
	Slide        func(pos, delta mathutil.Vec2) mathutil.Vec2
	Sees         func(from, to mathutil.Vec2) bool
}

// step returns where a monster at pos ends up after dt.
func (d Drift) step(pos mathutil.Vec2, dt time.Duration) mathutil.Vec2 {
	to := d.Target.Sub(pos)
	dist := to.Len()
	if d.Speed <= 0 || dist <= d.StopDistance {
		return pos
	}
	if d.Sees != nil && !d.Sees(pos, d.Target) {
		return pos
	}
	travel := math.Min(d.Speed*dt.Seconds(), dist-d.StopDistance)
	delta := to.Scale(travel / dist)
	if d.Slide != nil {
		return d.Slide(pos, delta)
	}
	return pos.Add(delta)
}

// Update moves monsters along the drift, ages effects and drops the expired
// ones.
func (m *Manager) Update(dt time.Duration, drift Drift) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		switch v := e.view.(type) {
		case *Monster:
			v.setPosition(drift.step(v.Position(), dt))
		case *Effect:
			v.advance(dt)
			if v.Expired() {
				continue
			}
		}
		kept = append(kept, e)
	}
	m.entries = kept
}
