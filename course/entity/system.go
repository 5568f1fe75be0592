package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// System holds the gameplay entities of a course. Entities are inserted while
// the level is generated and updated later by the real-time loop.
type System struct {
	Elevators []*Elevator
	Markers   []*Marker
	Cars      []*Car
}

// NewSystem returns an empty System.
func NewSystem() *System {
	return &System{}
}

// AddElevator adds e, assigning it an ID if it has none.
func (s *System) AddElevator(e *Elevator) *Elevator {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.Elevators = append(s.Elevators, e)
	return e
}

// AddMarker adds m, assigning it an ID if it has none.
func (s *System) AddMarker(m *Marker) *Marker {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.Markers = append(s.Markers, m)
	return m
}

// AddCar adds c, assigning it an ID if it has none.
func (s *System) AddCar(c *Car) *Car {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.Cars = append(s.Cars, c)
	return c
}

// Len returns the total number of entities in the System.
func (s *System) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Elevators) + len(s.Markers) + len(s.Cars)
}

// Marker returns the first marker of the kind passed.
func (s *System) Marker(kind MarkerKind) (*Marker, bool) {
	for _, m := range s.Markers {
		if m.Kind == kind {
			return m, true
		}
	}
	return nil, false
}

// Elevator moves a kinematic platform body back and forth between Bottom and
// Top.
type Elevator struct {
	ID uuid.UUID
	// Body is the index of the platform body in the physics world.
	Body        int
	Bottom, Top mgl64.Vec2
	// Speed is the travel speed in metres per second.
	Speed float64
}

// Target returns where the platform centre should be t seconds after the
// simulation started. The platform rises from Bottom to Top and descends
// again, repeating forever.
func (e *Elevator) Target(t float64) mgl64.Vec2 {
	dist := e.Top.Sub(e.Bottom).Len()
	if dist == 0 || e.Speed <= 0 {
		return e.Bottom
	}
	period := 2 * dist / e.Speed
	phase := math.Mod(t, period) / period
	if phase < 0 {
		phase++
	}
	f := 1 - math.Abs(1-2*phase)
	return e.Bottom.Add(e.Top.Sub(e.Bottom).Mul(f))
}

// MarkerKind is the kind of a course marker.
type MarkerKind uint8

const (
	MarkerSpawn MarkerKind = iota
	MarkerFinish
)

// String ...
func (k MarkerKind) String() string {
	if k == MarkerFinish {
		return "finish"
	}
	return "spawn"
}

// Marker flags a notable location of the course, such as the start or the
// finish line.
type Marker struct {
	ID   uuid.UUID
	Kind MarkerKind
	Pos  mgl64.Vec2
	// Width is the horizontal extent of the marker's trigger area.
	Width float64
}

// Contains reports if pos lies within the marker's trigger area.
func (m *Marker) Contains(pos mgl64.Vec2) bool {
	return math.Abs(pos[0]-m.Pos[0]) <= m.Width/2
}

// Car is the player's vehicle.
type Car struct {
	ID  uuid.UUID
	Pos mgl64.Vec2
	// Particles are the indices of the car's particles, the first being the
	// chassis centre.
	Particles []int
}
