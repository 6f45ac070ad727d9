package engine

// ShotCadence is how often a sniper lands a double-damage shot
const ShotCadence = 3

// SniperUnit cannot hit targets closer than half its range and deals
// double damage on every third shot
type SniperUnit struct {
	unit
	shotsFired int
}

// NewSniper creates a sniper after validating its stats
func NewSniper(team Team, health, ammo, attackRange, power int) (*SniperUnit, error) {
	u, err := newUnit(team, health, ammo, attackRange, power,
		SniperMovementRange, SniperReloadAmount, SniperAttackCost)
	if err != nil {
		return nil, err
	}
	return &SniperUnit{unit: u}, nil
}

func (s *SniperUnit) Type() CharacterType {
	return Sniper
}

func (s *SniperUnit) Clone() Character {
	c := *s
	return &c
}

// ShotsFired returns the number of shots landed since creation
func (s *SniperUnit) ShotsFired() int {
	return s.shotsFired
}

// AttackInRange also enforces the minimum range of ceil(range/2)
func (s *SniperUnit) AttackInRange(src, dst GridPoint) error {
	if err := s.unit.AttackInRange(src, dst); err != nil {
		return err
	}
	if Distance(src, dst) < ceilDiv(s.attackRange, 2) {
		return ErrOutOfRange
	}
	return nil
}

func (s *SniperUnit) Attack(board *Board, src, dst GridPoint) error {
	if err := s.AttackInRange(src, dst); err != nil {
		return err
	}
	if err := s.checkAmmo(); err != nil {
		return err
	}
	target, ok := board.At(dst)
	if !ok || !target.IsEnemy(s.team) {
		return ErrIllegalTarget
	}

	s.shotsFired++
	damage := s.power
	if s.shotsFired%ShotCadence == 0 {
		damage *= 2
	}
	if target.TakeDamage(damage) {
		board.Remove(dst)
	}

	s.spendAmmo()
	return nil
}
