package engine

// Character is a unit on the board. The set of implementations is closed:
// Soldier, Sniper and Medic, each owning its own attack rules.
type Character interface {
	Type() CharacterType
	Team() Team
	Stats() Stats

	// Reload adds the variant's reload amount to the ammo.
	Reload()
	// TakeDamage lowers health by amount and reports whether the
	// character is now dead. Removing it from the board is the caller's job.
	TakeDamage(amount int) bool
	IsEnemy(team Team) bool
	LegalMove(distance int) bool

	// AttackInRange returns ErrOutOfRange when dst cannot be reached from src.
	AttackInRange(src, dst GridPoint) error
	// Attack resolves an attack from src on dst. Checks run in the order
	// range, ammo, target; a rejected attack leaves the board untouched.
	Attack(board *Board, src, dst GridPoint) error

	Clone() Character
}

// NewCharacter builds a character of the given type
func NewCharacter(t CharacterType, team Team, health, ammo, attackRange, power int) (Character, error) {
	if team != Powerlifters && team != Crossfitters {
		return nil, ErrIllegalArgument
	}
	switch t {
	case Soldier:
		return NewSoldier(team, health, ammo, attackRange, power)
	case Sniper:
		return NewSniper(team, health, ammo, attackRange, power)
	case Medic:
		return NewMedic(team, health, ammo, attackRange, power)
	}
	return nil, ErrIllegalArgument
}

// unit holds the state shared by every variant
type unit struct {
	health, ammo, attackRange, power        int
	movementRange, reloadAmount, attackCost int
	team                                    Team
}

func newUnit(team Team, health, ammo, attackRange, power, movementRange, reloadAmount, attackCost int) (unit, error) {
	if health <= 0 || ammo < 0 || attackRange < 0 || power < 0 {
		return unit{}, ErrIllegalArgument
	}
	return unit{
		health:        health,
		ammo:          ammo,
		attackRange:   attackRange,
		power:         power,
		movementRange: movementRange,
		reloadAmount:  reloadAmount,
		attackCost:    attackCost,
		team:          team,
	}, nil
}

func (u *unit) Team() Team {
	return u.team
}

func (u *unit) Stats() Stats {
	return Stats{
		Health:        u.health,
		Ammo:          u.ammo,
		Range:         u.attackRange,
		Power:         u.power,
		MovementRange: u.movementRange,
		ReloadAmount:  u.reloadAmount,
		AttackCost:    u.attackCost,
	}
}

func (u *unit) Reload() {
	u.ammo += u.reloadAmount
}

func (u *unit) TakeDamage(amount int) bool {
	u.health -= amount
	return u.health <= 0
}

func (u *unit) IsEnemy(team Team) bool {
	return u.team != team
}

func (u *unit) LegalMove(distance int) bool {
	return distance <= u.movementRange
}

func (u *unit) AttackInRange(src, dst GridPoint) error {
	if Distance(src, dst) > u.attackRange {
		return ErrOutOfRange
	}
	return nil
}

// checkAmmo is the second gate of every attack
func (u *unit) checkAmmo() error {
	if u.ammo <= 0 {
		return ErrOutOfAmmo
	}
	return nil
}

func (u *unit) spendAmmo() {
	u.ammo -= u.attackCost
}
