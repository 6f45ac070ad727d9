package engine

// SoldierUnit fires along rows and columns and splashes everything near the impact
type SoldierUnit struct {
	unit
}

// NewSoldier creates a soldier after validating its stats
func NewSoldier(team Team, health, ammo, attackRange, power int) (*SoldierUnit, error) {
	u, err := newUnit(team, health, ammo, attackRange, power,
		SoldierMovementRange, SoldierReloadAmount, SoldierAttackCost)
	if err != nil {
		return nil, err
	}
	return &SoldierUnit{unit: u}, nil
}

func (s *SoldierUnit) Type() CharacterType {
	return Soldier
}

func (s *SoldierUnit) Clone() Character {
	c := *s
	return &c
}

// Attack hits dst for full power and every enemy within ceil(range/3) of
// dst for ceil(power/2). The target cell may be empty.
func (s *SoldierUnit) Attack(board *Board, src, dst GridPoint) error {
	if err := s.AttackInRange(src, dst); err != nil {
		return err
	}
	if err := s.checkAmmo(); err != nil {
		return err
	}
	if src.Row != dst.Row && src.Col != dst.Col {
		return ErrIllegalTarget
	}

	var kills []GridPoint
	if target, ok := board.At(dst); ok && target.IsEnemy(s.team) {
		if target.TakeDamage(s.power) {
			kills = append(kills, dst)
		}
	}

	splashRadius := ceilDiv(s.attackRange, 3)
	splashDamage := ceilDiv(s.power, 2)
	board.Each(func(p GridPoint, target Character) {
		d := Distance(dst, p)
		if d == 0 || d > splashRadius || !target.IsEnemy(s.team) {
			return
		}
		if target.TakeDamage(splashDamage) {
			kills = append(kills, p)
		}
	})

	// Removal happens only after every hit has been applied
	for _, p := range kills {
		board.Remove(p)
	}

	s.spendAmmo()
	return nil
}
