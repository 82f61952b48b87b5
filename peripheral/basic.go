package peripheral

import (
	"fmt"

	"github.com/nholm/graphquest/engine/state"
)

// Basic returns a Set of the in-memory implementations over one store.
func Basic(s *state.Store) Set {
	return Set{
		Combat:   &BasicCombat{store: s},
		Trade:    &BasicTrade{store: s},
		Dialogue: &BasicDialogue{},
	}
}

// BasicCombat tracks one enemy at a time and applies damage directly to
// hp stats: the player's in the store, the enemy's as an entity property.
type BasicCombat struct {
	store  *state.Store
	active bool
	enemy  string
}

func (c *BasicCombat) Start(enemyID string) error {
	if !c.store.Exists(enemyID) {
		return fmt.Errorf("combat: unknown enemy %q", enemyID)
	}
	c.active = true
	c.enemy = enemyID
	return nil
}

func (c *BasicCombat) End(reason string) error {
	c.active = false
	c.enemy = ""
	return nil
}

func (c *BasicCombat) Damage(target string, amount int) (CombatOutcome, error) {
	if amount < 0 {
		amount = 0
	}
	if target == "player" {
		hp := c.store.Stat("hp") - amount
		if hp < 0 {
			hp = 0
		}
		c.store.SetStat("hp", hp)
		if hp <= 0 {
			return CombatTargetDied, nil
		}
		return CombatOK, nil
	}

	if !c.store.Exists(target) {
		return CombatOK, fmt.Errorf("combat: unknown target %q", target)
	}
	hp := c.enemyHP(target) - amount
	if hp < 0 {
		hp = 0
	}
	c.store.SetProp(target, "hp", hp)
	if hp <= 0 {
		c.store.SetProp(target, "alive", false)
		if c.enemy == target {
			c.active = false
			c.enemy = ""
		}
		return CombatTargetDied, nil
	}
	return CombatOK, nil
}

func (c *BasicCombat) Heal(target string, amount int) error {
	if amount < 0 {
		amount = 0
	}
	if target == "player" {
		hp := c.store.Stat("hp") + amount
		if max := c.store.Stat("max_hp"); max > 0 && hp > max {
			hp = max
		}
		c.store.SetStat("hp", hp)
		return nil
	}
	if !c.store.Exists(target) {
		return fmt.Errorf("combat: unknown target %q", target)
	}
	c.store.SetProp(target, "hp", c.enemyHP(target)+amount)
	return nil
}

func (c *BasicCombat) Equip(slot, objectID string) error {
	if !c.store.HasItem(objectID) {
		return fmt.Errorf("combat: player does not carry %q", objectID)
	}
	switch slot {
	case "weapon":
		c.store.Player.Weapon = objectID
	case "armor":
		c.store.Player.Armor = objectID
	default:
		return fmt.Errorf("combat: unknown equip slot %q", slot)
	}
	return nil
}

func (c *BasicCombat) Active() bool    { return c.active }
func (c *BasicCombat) EnemyID() string { return c.enemy }

// enemyHP reads the enemy hp property, defaulting to 10 for enemies whose
// scripts never set one.
func (c *BasicCombat) enemyHP(id string) int {
	if v, ok := c.store.Prop(id, "hp"); ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return 10
}

// BasicTrade moves gold and items between player and merchant.
type BasicTrade struct {
	store    *state.Store
	active   bool
	merchant string
}

func (t *BasicTrade) Open(merchantID string) error {
	if !t.store.Exists(merchantID) {
		return fmt.Errorf("trade: unknown merchant %q", merchantID)
	}
	t.active = true
	t.merchant = merchantID
	return nil
}

func (t *BasicTrade) Close() error {
	t.active = false
	t.merchant = ""
	return nil
}

func (t *BasicTrade) Buy(objectID string, price int) (TradeOutcome, error) {
	if !t.store.Exists(objectID) {
		return TradeOK, fmt.Errorf("trade: unknown object %q", objectID)
	}
	if t.store.Player.Gold < price {
		return TradeNotEnoughGold, nil
	}
	t.store.Player.Gold -= price
	t.store.GiveItem(objectID)
	return TradeOK, nil
}

func (t *BasicTrade) Sell(objectID string, price int) (TradeOutcome, error) {
	if !t.store.RemoveItem(objectID) {
		return TradeOK, fmt.Errorf("trade: player does not carry %q", objectID)
	}
	t.store.Player.Gold += price
	return TradeOK, nil
}

func (t *BasicTrade) Active() bool     { return t.active }
func (t *BasicTrade) Merchant() string { return t.merchant }

// BasicDialogue only tracks which NPC the player is talking to.
type BasicDialogue struct {
	npc string
}

func (d *BasicDialogue) Start(npcID string) error {
	d.npc = npcID
	return nil
}

func (d *BasicDialogue) End()         { d.npc = "" }
func (d *BasicDialogue) Active() bool { return d.npc != "" }
func (d *BasicDialogue) NPC() string  { return d.npc }
