package engine

// MedicUnit damages enemies and heals friends; healing costs no ammo
type MedicUnit struct {
	unit
}

// NewMedic creates a medic after validating its stats
func NewMedic(team Team, health, ammo, attackRange, power int) (*MedicUnit, error) {
	u, err := newUnit(team, health, ammo, attackRange, power,
		MedicMovementRange, MedicReloadAmount, MedicAttackCost)
	if err != nil {
		return nil, err
	}
	return &MedicUnit{unit: u}, nil
}

func (m *MedicUnit) Type() CharacterType {
	return Medic
}

func (m *MedicUnit) Clone() Character {
	c := *m
	return &c
}

func (m *MedicUnit) Attack(board *Board, src, dst GridPoint) error {
	if err := m.AttackInRange(src, dst); err != nil {
		return err
	}
	if err := m.checkAmmo(); err != nil {
		return err
	}
	if src == dst {
		return ErrIllegalTarget
	}
	target, ok := board.At(dst)
	if !ok {
		return ErrIllegalTarget
	}

	if !target.IsEnemy(m.team) {
		// Healing is negative damage and never spends ammo
		target.TakeDamage(-m.power)
		return nil
	}

	if target.TakeDamage(m.power) {
		board.Remove(dst)
	}
	m.spendAmmo()
	return nil
}
