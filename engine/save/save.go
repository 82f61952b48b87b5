// Package save implements JSON serialization of a session: game state, the
// RNG replay position, and fired Once gates. Entity registrations and graphs
// come from game content, not the save; hosts reload the bundle first and
// apply the save on top. Suspended runs are not persisted.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nholm/graphquest/engine"
	"github.com/nholm/graphquest/engine/state"
)

// Data is the JSON-serializable save format.
type Data struct {
	Version     int                       `json:"version"`
	Game        string                    `json:"game"`
	Turn        int                       `json:"turn"`
	Player      state.Player              `json:"player"`
	Flags       map[string]bool           `json:"flags"`
	Counters    map[string]int            `json:"counters"`
	Entities    map[string]map[string]any `json:"entities"`
	RNGSeed     int64                     `json:"rng_seed"`
	RNGPosition int64                     `json:"rng_position"`
	Once        []string                  `json:"once"`
}

const formatVersion = 1

// Save serializes the session to JSON bytes.
func Save(eng *engine.Engine, game string) ([]byte, error) {
	s := eng.Store()
	data := Data{
		Version:     formatVersion,
		Game:        game,
		Turn:        s.Turn,
		Player:      s.Player,
		Flags:       s.Flags,
		Counters:    s.Counters,
		Entities:    s.Entities,
		RNGSeed:     eng.RNG().Seed(),
		RNGPosition: eng.RNG().Position(),
		Once:        eng.FiredOnce(),
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into save data.
func Load(data []byte) (*Data, error) {
	var sd Data
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Version != formatVersion {
		return nil, fmt.Errorf("unsupported save version %d", sd.Version)
	}
	// Maps are never nil after load.
	if sd.Flags == nil {
		sd.Flags = map[string]bool{}
	}
	if sd.Counters == nil {
		sd.Counters = map[string]int{}
	}
	if sd.Entities == nil {
		sd.Entities = map[string]map[string]any{}
	}
	if sd.Player.Inventory == nil {
		sd.Player.Inventory = []string{}
	}
	if sd.Player.Stats == nil {
		sd.Player.Stats = map[string]int{}
	}
	if sd.Player.Needs == nil {
		sd.Player.Needs = map[string]int{}
	}
	return &sd, nil
}

// Apply restores loaded save data onto a running session. Pending runs are
// dropped: their continuations refer to the replaced state.
func Apply(eng *engine.Engine, sd *Data) {
	s := eng.Store()
	s.Player = sd.Player
	s.Flags = sd.Flags
	s.Counters = sd.Counters
	s.Entities = sd.Entities
	s.Turn = sd.Turn

	eng.SetRNG(engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition))
	eng.RestoreFiredOnce(sd.Once)
	eng.DropPending()
}
