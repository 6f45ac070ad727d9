// Package engine provides the combat rules for Grid Combat.
//
// The engine package implements:
//   - Grid coordinates and the Manhattan distance metric
//   - The three character variants (soldier, sniper, medic) and their attacks
//   - A bounded board that owns every character standing on it
//   - Validated move, attack and reload commands and win detection
//   - Scenario loading and validation
//
// Core Types:
//
// Game implements the Engine interface and owns a Board. Character is the
// closed interface implemented by SoldierUnit, SniperUnit and MedicUnit.
// Every rejected command returns a *GameError whose Kind tells the caller
// what went wrong; KindOf extracts it from wrapped errors.
//
// Usage:
//
//	game, err := engine.NewGame(5, 5)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	soldier, _ := engine.NewCharacter(engine.Soldier, engine.Powerlifters, 10, 3, 3, 4)
//	_ = game.AddCharacter(engine.Point(2, 2), soldier)
//
//	if err := game.Attack(engine.Point(2, 2), engine.Point(2, 3)); err != nil {
//		fmt.Println(engine.KindOf(err))
//	}
//
// Game Rules:
//
// Soldiers attack along their row or column and splash damage around the
// impact. Snipers have a minimum range and double their damage on every
// third shot. Medics damage enemies and heal friends for free. A command
// either fully succeeds or leaves the game unchanged. The game is over when
// only one team is left on the board.
//
// A Game is not safe for concurrent use.
package engine
