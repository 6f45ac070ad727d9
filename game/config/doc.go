// Package config provides scenario management for the grid combat game.
//
// The config package handles:
//   - Loading scenarios from JSON files
//   - Scenario validation before use
//   - Default scenario selection
//   - Scenario discovery and listing
//
// Scenario Format:
//
// Scenarios are stored as JSON files in the configs directory. Each one
// defines the board size and the starting units:
//
//	{
//	  "name": "skirmish",
//	  "description": "...",
//	  "height": 5,
//	  "width": 5,
//	  "units": [
//	    {"type": "soldier", "team": "powerlifters", "row": 2, "col": 2,
//	     "health": 10, "ammo": 3, "range": 3, "power": 4}
//	  ]
//	}
//
// The file name without its extension is the scenario ID used when
// creating sessions. Files that fail engine.ValidateScenario are skipped
// by ListScenarios and rejected by LoadScenario.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		return err
//	}
//
//	scenario, err := manager.LoadScenario("classic")
//
//	// Falls back to the built-in skirmish when the directory has nothing usable
//	def := manager.GetDefault()
//
// Files are read through an afero.Fs, so NewManagerFs(afero.NewMemMapFs(), dir)
// gives a manager with no disk access. Watch keeps the cache in step with edits
// made to the directory while a long-running server is up.
package config
