package engine

import (
	"errors"
	"testing"
)

// newTestGame builds a game and places characters, failing the test on error
func newTestGame(t *testing.T, height, width int) *Game {
	t.Helper()
	game, err := NewGame(height, width)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return game
}

func place(t *testing.T, game *Game, p GridPoint, charType CharacterType, team Team, health, ammo, attackRange, power int) Character {
	t.Helper()
	c, err := NewCharacter(charType, team, health, ammo, attackRange, power)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", charType, err)
	}
	if err := game.AddCharacter(p, c); err != nil {
		t.Fatalf("Failed to add %s at %s: %v", charType, p, err)
	}
	return c
}

func healthAt(t *testing.T, game *Game, p GridPoint) int {
	t.Helper()
	c, ok := game.CharacterAt(p)
	if !ok {
		t.Fatalf("Expected a character at %s", p)
	}
	return c.Stats().Health
}

func TestNewCharacter_Validation(t *testing.T) {
	tests := []struct {
		name                             string
		health, ammo, attackRange, power int
		wantErr                          bool
	}{
		{"boundary values", 1, 0, 0, 0, false},
		{"typical values", 10, 3, 3, 4, false},
		{"zero health", 0, 1, 1, 1, true},
		{"negative health", -5, 1, 1, 1, true},
		{"negative ammo", 1, -1, 1, 1, true},
		{"negative range", 1, 1, -1, 1, true},
		{"negative power", 1, 1, 1, -1, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, charType := range []CharacterType{Soldier, Sniper, Medic} {
				c, err := NewCharacter(charType, Powerlifters, test.health, test.ammo, test.attackRange, test.power)
				if test.wantErr {
					if !errors.Is(err, ErrIllegalArgument) {
						t.Errorf("%s: expected IllegalArgument, got %v", charType, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("%s: unexpected error %v", charType, err)
				}
				if c.Type() != charType {
					t.Errorf("Expected type %s, got %s", charType, c.Type())
				}
			}
		})
	}
}

func TestNewCharacter_UnknownTypeOrTeam(t *testing.T) {
	if _, err := NewCharacter(CharacterType("tank"), Powerlifters, 1, 1, 1, 1); !errors.Is(err, ErrIllegalArgument) {
		t.Errorf("Expected IllegalArgument for unknown type, got %v", err)
	}
	if _, err := NewCharacter(Soldier, Team("yoga"), 1, 1, 1, 1); !errors.Is(err, ErrIllegalArgument) {
		t.Errorf("Expected IllegalArgument for unknown team, got %v", err)
	}
}

func TestCharacter_VariantConstants(t *testing.T) {
	tests := []struct {
		charType                                CharacterType
		movementRange, reloadAmount, attackCost int
	}{
		{Soldier, 3, 3, 1},
		{Sniper, 4, 2, 1},
		{Medic, 5, 5, 1},
	}

	for _, test := range tests {
		c, err := NewCharacter(test.charType, Crossfitters, 5, 0, 2, 2)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", test.charType, err)
		}
		stats := c.Stats()
		if stats.MovementRange != test.movementRange {
			t.Errorf("%s movement range: expected %d, got %d", test.charType, test.movementRange, stats.MovementRange)
		}
		if stats.ReloadAmount != test.reloadAmount {
			t.Errorf("%s reload amount: expected %d, got %d", test.charType, test.reloadAmount, stats.ReloadAmount)
		}
		if stats.AttackCost != test.attackCost {
			t.Errorf("%s attack cost: expected %d, got %d", test.charType, test.attackCost, stats.AttackCost)
		}

		c.Reload()
		if c.Stats().Ammo != test.reloadAmount {
			t.Errorf("%s: expected ammo %d after reload, got %d", test.charType, test.reloadAmount, c.Stats().Ammo)
		}
		if !c.LegalMove(test.movementRange) || c.LegalMove(test.movementRange+1) {
			t.Errorf("%s: LegalMove boundary is wrong", test.charType)
		}
	}
}

func TestCharacter_TakeDamageAndIsEnemy(t *testing.T) {
	c, _ := NewCharacter(Medic, Crossfitters, 5, 1, 1, 2)
	if c.TakeDamage(4) {
		t.Error("Expected character to survive 4 damage with 5 health")
	}
	if !c.TakeDamage(1) {
		t.Error("Expected character to die at 0 health")
	}
	if !c.IsEnemy(Powerlifters) || c.IsEnemy(Crossfitters) {
		t.Error("IsEnemy returned the wrong answer")
	}
}

func TestCharacter_Clone(t *testing.T) {
	original, _ := NewSniper(Powerlifters, 5, 3, 4, 2)
	original.shotsFired = 2

	clone := original.Clone()
	clone.TakeDamage(3)
	clone.Reload()

	if original.Stats().Health != 5 || original.Stats().Ammo != 3 {
		t.Errorf("Clone shares state with original: %+v", original.Stats())
	}
	sniperClone, ok := clone.(*SniperUnit)
	if !ok {
		t.Fatalf("Expected *SniperUnit clone, got %T", clone)
	}
	if sniperClone.ShotsFired() != 2 {
		t.Errorf("Expected clone to keep shot counter 2, got %d", sniperClone.ShotsFired())
	}
}

func TestSoldier_AttackAdjacentMedic(t *testing.T) {
	game := newTestGame(t, 5, 5)
	soldier := place(t, game, Point(2, 2), Soldier, Powerlifters, 10, 3, 3, 4)
	place(t, game, Point(2, 3), Medic, Crossfitters, 5, 1, 1, 2)

	if err := game.Attack(Point(2, 2), Point(2, 3)); err != nil {
		t.Fatalf("Expected attack to succeed, got %v", err)
	}
	if got := healthAt(t, game, Point(2, 3)); got != 1 {
		t.Errorf("Expected medic health 1, got %d", got)
	}
	if soldier.Stats().Ammo != 2 {
		t.Errorf("Expected soldier ammo 2, got %d", soldier.Stats().Ammo)
	}
}

func TestSoldier_DiagonalTargetIsIllegal(t *testing.T) {
	game := newTestGame(t, 5, 5)
	soldier := place(t, game, Point(2, 2), Soldier, Powerlifters, 10, 3, 3, 4)
	place(t, game, Point(2, 3), Medic, Crossfitters, 5, 1, 1, 2)
	before := game.String()

	err := game.Attack(Point(2, 2), Point(3, 3))
	if !errors.Is(err, ErrIllegalTarget) {
		t.Fatalf("Expected IllegalTarget, got %v", err)
	}
	if game.String() != before {
		t.Error("Board changed after a rejected attack")
	}
	if soldier.Stats().Ammo != 3 {
		t.Errorf("Expected ammo to stay 3, got %d", soldier.Stats().Ammo)
	}
	if got := healthAt(t, game, Point(2, 3)); got != 5 {
		t.Errorf("Expected medic health 5, got %d", got)
	}
}

func TestSoldier_CheckOrder(t *testing.T) {
	game := newTestGame(t, 6, 6)
	place(t, game, Point(0, 0), Soldier, Powerlifters, 10, 0, 2, 4)

	// Out of range beats out of ammo and illegal target
	if err := game.Attack(Point(0, 0), Point(3, 3)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected OutOfRange, got %v", err)
	}
	// Out of ammo beats illegal target
	if err := game.Attack(Point(0, 0), Point(1, 1)); !errors.Is(err, ErrOutOfAmmo) {
		t.Errorf("Expected OutOfAmmo, got %v", err)
	}
}

func TestSoldier_SplashDamage(t *testing.T) {
	game := newTestGame(t, 7, 7)
	// range 6 gives a splash radius of 2, power 5 gives splash damage 3
	soldier := place(t, game, Point(3, 0), Soldier, Powerlifters, 10, 2, 6, 5)
	place(t, game, Point(3, 3), Soldier, Crossfitters, 10, 1, 1, 1) // primary
	place(t, game, Point(2, 3), Medic, Crossfitters, 10, 1, 1, 1)   // distance 1
	place(t, game, Point(4, 4), Sniper, Crossfitters, 10, 1, 1, 1)  // distance 2
	place(t, game, Point(3, 6), Medic, Crossfitters, 10, 1, 1, 1)   // distance 3, outside
	place(t, game, Point(3, 4), Medic, Powerlifters, 10, 1, 1, 1)   // friendly, inside

	if err := game.Attack(Point(3, 0), Point(3, 3)); err != nil {
		t.Fatalf("Expected attack to succeed, got %v", err)
	}

	tests := []struct {
		p        GridPoint
		expected int
	}{
		{Point(3, 3), 5},
		{Point(2, 3), 7},
		{Point(4, 4), 7},
		{Point(3, 6), 10},
		{Point(3, 4), 10},
		{Point(3, 0), 10},
	}
	for _, test := range tests {
		if got := healthAt(t, game, test.p); got != test.expected {
			t.Errorf("Health at %s: expected %d, got %d", test.p, test.expected, got)
		}
	}
	if soldier.Stats().Ammo != 1 {
		t.Errorf("Expected ammo 1, got %d", soldier.Stats().Ammo)
	}
}

func TestSoldier_SplashKillsAreRemovedTogether(t *testing.T) {
	game := newTestGame(t, 5, 5)
	soldier := place(t, game, Point(0, 2), Soldier, Crossfitters, 10, 1, 3, 4)
	place(t, game, Point(2, 2), Medic, Powerlifters, 4, 1, 1, 1) // dies to primary
	place(t, game, Point(2, 1), Medic, Powerlifters, 2, 1, 1, 1) // dies to splash
	place(t, game, Point(1, 2), Sniper, Powerlifters, 3, 1, 1, 1) // survives splash

	if err := game.Attack(Point(0, 2), Point(2, 2)); err != nil {
		t.Fatalf("Expected attack to succeed, got %v", err)
	}
	if _, ok := game.CharacterAt(Point(2, 2)); ok {
		t.Error("Expected primary target to be removed")
	}
	if _, ok := game.CharacterAt(Point(2, 1)); ok {
		t.Error("Expected splash victim to be removed")
	}
	if got := healthAt(t, game, Point(1, 2)); got != 1 {
		t.Errorf("Expected sniper health 1, got %d", got)
	}
	if soldier.Stats().Ammo != 0 {
		t.Errorf("Expected ammo deducted once, got %d", soldier.Stats().Ammo)
	}
}

func TestSoldier_EmptyTargetStillCostsAmmo(t *testing.T) {
	game := newTestGame(t, 5, 5)
	soldier := place(t, game, Point(0, 0), Soldier, Powerlifters, 10, 2, 3, 2)
	place(t, game, Point(0, 3), Medic, Crossfitters, 5, 1, 1, 1)

	if err := game.Attack(Point(0, 0), Point(0, 2)); err != nil {
		t.Fatalf("Expected attack on empty cell to succeed, got %v", err)
	}
	if soldier.Stats().Ammo != 1 {
		t.Errorf("Expected ammo 1, got %d", soldier.Stats().Ammo)
	}
	if got := healthAt(t, game, Point(0, 3)); got != 4 {
		t.Errorf("Expected splash to hit the medic for 1, got health %d", got)
	}
}

func TestSniper_MinimumRange(t *testing.T) {
	game := newTestGame(t, 6, 6)
	sniper := place(t, game, Point(0, 0), Sniper, Powerlifters, 5, 5, 4, 2)
	place(t, game, Point(0, 1), Soldier, Crossfitters, 10, 1, 1, 1) // distance 1 < ceil(4/2)
	place(t, game, Point(1, 1), Soldier, Crossfitters, 10, 1, 1, 1) // distance 2
	place(t, game, Point(3, 3), Soldier, Crossfitters, 10, 1, 1, 1) // distance 6 > 4

	if err := game.Attack(Point(0, 0), Point(0, 1)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected OutOfRange for a target too close, got %v", err)
	}
	if err := game.Attack(Point(0, 0), Point(3, 3)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected OutOfRange for a target too far, got %v", err)
	}
	if err := game.Attack(Point(0, 0), Point(1, 1)); err != nil {
		t.Errorf("Expected attack at minimum range to succeed, got %v", err)
	}
	if sniper.Stats().Ammo != 4 {
		t.Errorf("Expected ammo 4, got %d", sniper.Stats().Ammo)
	}
}

func TestSniper_EveryThirdShotDoublesDamage(t *testing.T) {
	game := newTestGame(t, 5, 5)
	sniper := place(t, game, Point(0, 0), Sniper, Powerlifters, 5, 10, 4, 2)
	place(t, game, Point(0, 3), Soldier, Crossfitters, 100, 1, 1, 1)

	expected := []int{98, 96, 92, 90, 88, 84, 82}
	for i, want := range expected {
		if err := game.Attack(Point(0, 0), Point(0, 3)); err != nil {
			t.Fatalf("Shot %d failed: %v", i+1, err)
		}
		if got := healthAt(t, game, Point(0, 3)); got != want {
			t.Errorf("After shot %d: expected health %d, got %d", i+1, want, got)
		}
	}
	if s := sniper.(*SniperUnit); s.ShotsFired() != len(expected) {
		t.Errorf("Expected %d shots fired, got %d", len(expected), s.ShotsFired())
	}
}

func TestSniper_IllegalTargets(t *testing.T) {
	game := newTestGame(t, 5, 5)
	sniper := place(t, game, Point(0, 0), Sniper, Powerlifters, 5, 3, 4, 2)
	place(t, game, Point(0, 3), Medic, Powerlifters, 5, 1, 1, 1)

	if err := game.Attack(Point(0, 0), Point(0, 3)); !errors.Is(err, ErrIllegalTarget) {
		t.Errorf("Expected IllegalTarget for a friend, got %v", err)
	}
	if err := game.Attack(Point(0, 0), Point(2, 1)); !errors.Is(err, ErrIllegalTarget) {
		t.Errorf("Expected IllegalTarget for an empty cell, got %v", err)
	}
	s := sniper.(*SniperUnit)
	if s.ShotsFired() != 0 || s.Stats().Ammo != 3 {
		t.Errorf("Rejected shots changed sniper state: shots %d ammo %d", s.ShotsFired(), s.Stats().Ammo)
	}
}

func TestSniper_KillRemovesTarget(t *testing.T) {
	game := newTestGame(t, 5, 5)
	place(t, game, Point(0, 0), Sniper, Crossfitters, 5, 3, 4, 3)
	place(t, game, Point(2, 1), Medic, Powerlifters, 3, 1, 1, 1)

	if err := game.Attack(Point(0, 0), Point(2, 1)); err != nil {
		t.Fatalf("Expected attack to succeed, got %v", err)
	}
	if _, ok := game.CharacterAt(Point(2, 1)); ok {
		t.Error("Expected dead medic to be removed")
	}
}

func TestMedic_HealFriendIsFree(t *testing.T) {
	game := newTestGame(t, 5, 5)
	medic := place(t, game, Point(1, 1), Medic, Crossfitters, 5, 1, 2, 3)
	place(t, game, Point(1, 2), Soldier, Crossfitters, 2, 1, 1, 1)

	for i := 0; i < 3; i++ {
		if err := game.Attack(Point(1, 1), Point(1, 2)); err != nil {
			t.Fatalf("Heal %d failed: %v", i+1, err)
		}
	}
	if got := healthAt(t, game, Point(1, 2)); got != 11 {
		t.Errorf("Expected friend health 11, got %d", got)
	}
	if medic.Stats().Ammo != 1 {
		t.Errorf("Expected healing to cost no ammo, got ammo %d", medic.Stats().Ammo)
	}
}

func TestMedic_AttackEnemy(t *testing.T) {
	game := newTestGame(t, 5, 5)
	medic := place(t, game, Point(1, 1), Medic, Crossfitters, 5, 2, 2, 3)
	place(t, game, Point(2, 2), Soldier, Powerlifters, 5, 1, 1, 1)

	if err := game.Attack(Point(1, 1), Point(2, 2)); err != nil {
		t.Fatalf("Expected attack to succeed, got %v", err)
	}
	if got := healthAt(t, game, Point(2, 2)); got != 2 {
		t.Errorf("Expected enemy health 2, got %d", got)
	}
	if err := game.Attack(Point(1, 1), Point(2, 2)); err != nil {
		t.Fatalf("Expected second attack to succeed, got %v", err)
	}
	if _, ok := game.CharacterAt(Point(2, 2)); ok {
		t.Error("Expected enemy to be removed")
	}
	if medic.Stats().Ammo != 0 {
		t.Errorf("Expected ammo 0, got %d", medic.Stats().Ammo)
	}
}

func TestMedic_IllegalTargets(t *testing.T) {
	game := newTestGame(t, 5, 5)
	place(t, game, Point(1, 1), Medic, Crossfitters, 5, 1, 2, 3)

	if err := game.Attack(Point(1, 1), Point(1, 1)); !errors.Is(err, ErrIllegalTarget) {
		t.Errorf("Expected IllegalTarget for self, got %v", err)
	}
	if err := game.Attack(Point(1, 1), Point(1, 2)); !errors.Is(err, ErrIllegalTarget) {
		t.Errorf("Expected IllegalTarget for an empty cell, got %v", err)
	}
}

func TestMedic_OutOfAmmoBlocksHealing(t *testing.T) {
	game := newTestGame(t, 5, 5)
	place(t, game, Point(1, 1), Medic, Crossfitters, 5, 0, 2, 3)
	place(t, game, Point(1, 2), Soldier, Crossfitters, 2, 1, 1, 1)

	if err := game.Attack(Point(1, 1), Point(1, 2)); !errors.Is(err, ErrOutOfAmmo) {
		t.Errorf("Expected OutOfAmmo, got %v", err)
	}
}
