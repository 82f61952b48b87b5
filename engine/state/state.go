// Package state implements the mutable game-state store: named flags,
// named counters, per-entity properties, and the player record. It is owned
// by the session; effect nodes mutate it, data resolution and branch
// predicates read it. Writes are visible to reads immediately.
package state

// Player holds the player's runtime state.
type Player struct {
	Location  string
	Inventory []string
	Gold      int
	Stats     map[string]int // hp, max_hp, attack, defense
	Needs     map[string]int // hunger, thirst, fatigue (0-100)
	Weapon    string
	Armor     string
}

// Store is the complete mutable game state shared across runs.
type Store struct {
	Player   Player
	Flags    map[string]bool
	Counters map[string]int
	Entities map[string]map[string]any
	Turn     int

	known map[string]string // entity id → category ("room", "object", ...)
}

// NewStore creates an empty store with default player stats.
func NewStore() *Store {
	return &Store{
		Player: Player{
			Inventory: []string{},
			Stats:     map[string]int{"hp": 100, "max_hp": 100, "attack": 10, "defense": 5},
			Needs:     map[string]int{},
		},
		Flags:    map[string]bool{},
		Counters: map[string]int{},
		Entities: map[string]map[string]any{},
		known:    map[string]string{},
	}
}

// AddEntity registers a world entity id with its category. Effects that
// reference an unregistered id fail as recoverable per-node faults.
func (s *Store) AddEntity(id, category string) {
	s.known[id] = category
}

// Exists reports whether an entity id was registered.
func (s *Store) Exists(id string) bool {
	_, ok := s.known[id]
	return ok
}

// Category returns the registered category of an entity.
func (s *Store) Category(id string) string {
	return s.known[id]
}

// Flag returns the value of a flag. Unset flags are false.
func (s *Store) Flag(name string) bool {
	return s.Flags[name]
}

// SetFlag sets a flag. Returns the previous value.
func (s *Store) SetFlag(name string, value bool) bool {
	prev := s.Flags[name]
	s.Flags[name] = value
	return prev
}

// Counter returns the value of a counter. Unset counters are 0.
func (s *Store) Counter(name string) int {
	return s.Counters[name]
}

// SetCounter sets a counter to an absolute value.
func (s *Store) SetCounter(name string, value int) {
	s.Counters[name] = value
}

// AddCounter adjusts a counter and returns the new value.
func (s *Store) AddCounter(name string, delta int) int {
	s.Counters[name] += delta
	return s.Counters[name]
}

// Prop returns a named property of an entity.
func (s *Store) Prop(entity, name string) (any, bool) {
	props, ok := s.Entities[entity]
	if !ok {
		return nil, false
	}
	v, ok := props[name]
	return v, ok
}

// SetProp sets a named property on an entity.
func (s *Store) SetProp(entity, name string, value any) {
	props, ok := s.Entities[entity]
	if !ok {
		props = map[string]any{}
		s.Entities[entity] = props
	}
	props[name] = value
}

// HasItem reports whether the player carries the given object.
func (s *Store) HasItem(id string) bool {
	for _, it := range s.Player.Inventory {
		if it == id {
			return true
		}
	}
	return false
}

// GiveItem adds an object to the player's inventory.
func (s *Store) GiveItem(id string) {
	s.Player.Inventory = append(s.Player.Inventory, id)
}

// RemoveItem removes one instance of an object from the inventory.
// Returns false if the player does not carry it.
func (s *Store) RemoveItem(id string) bool {
	for i, it := range s.Player.Inventory {
		if it == id {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Stat returns a player stat. Unset stats are 0.
func (s *Store) Stat(name string) int {
	return s.Player.Stats[name]
}

// SetStat sets a player stat.
func (s *Store) SetStat(name string, value int) {
	if s.Player.Stats == nil {
		s.Player.Stats = map[string]int{}
	}
	s.Player.Stats[name] = value
}

// Need returns a need level. Unset needs are 0.
func (s *Store) Need(name string) int {
	return s.Player.Needs[name]
}

// SetNeed sets a need level, clamped to 0-100.
func (s *Store) SetNeed(name string, value int) int {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	if s.Player.Needs == nil {
		s.Player.Needs = map[string]int{}
	}
	s.Player.Needs[name] = value
	return value
}
