// Package peripheral defines the collaborator contracts the engine invokes
// from effect nodes (combat, trade, conversation) plus basic in-memory
// implementations backed by the game-state store. The engine only knows how
// to invoke these and map their outcomes onto execution outputs; the real
// rules (damage formulas, pricing) live behind the interfaces.
package peripheral

// CombatOutcome is the result of one combat operation.
type CombatOutcome int

const (
	CombatOK CombatOutcome = iota
	CombatTargetDied
)

// Combat is the combat subsystem boundary.
type Combat interface {
	Start(enemyID string) error
	End(reason string) error
	Damage(target string, amount int) (CombatOutcome, error)
	Heal(target string, amount int) error
	Equip(slot, objectID string) error
	Active() bool
	EnemyID() string
}

// TradeOutcome is the result of one trade operation.
type TradeOutcome int

const (
	TradeOK TradeOutcome = iota
	TradeNotEnoughGold
)

// Trade is the trade subsystem boundary.
type Trade interface {
	Open(merchantID string) error
	Close() error
	Buy(objectID string, price int) (TradeOutcome, error)
	Sell(objectID string, price int) (TradeOutcome, error)
	Active() bool
	Merchant() string
}

// Dialogue is the conversation subsystem boundary. Conversation content
// itself runs as dialogue graphs; Start only marks the session.
type Dialogue interface {
	Start(npcID string) error
	End()
	Active() bool
	NPC() string
}

// Set bundles the three collaborators handed to the engine.
type Set struct {
	Combat   Combat
	Trade    Trade
	Dialogue Dialogue
}
