// Package session keeps the games a process is hosting.
//
// A session pairs one engine.Game with the name of the scenario it started
// from, its command history and two timestamps. Manager stores sessions in
// a map guarded by a RWMutex and implements service.SessionManager.
//
// IDs are either chosen by the caller or drawn as 4 hex characters from
// crypto/rand. They compare case-insensitively: "A1F3" and "a1f3" are the
// same session, and the ID keeps the spelling it was created with.
//
//	manager := session.NewManager()
//	game, _ := engine.NewGameFromScenario(engine.DefaultScenario())
//	sess, err := manager.Create("", game, "skirmish")
//
//	// IDs of sessions nobody touched for an hour
//	gone := manager.CleanupExpiredSessions(time.Hour)
//
// Nothing is written to disk; sessions end with the process.
package session
