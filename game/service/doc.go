// Package service provides the business logic layer for the grid combat game.
//
// The service package implements:
//   - Multi-session game management
//   - Scenario loading through a ScenarioManager
//   - Command execution with event reporting
//   - Session forking for speculative play
//   - Command history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ScenarioManager loads and lists scenario files.
//
// Architecture:
//
// The service layer sits between the transports (console and MCP) and the
// game engine. Each session owns its own engine.Game; commands are serialized
// by the service so a command always runs to completion before the next one.
//
// Usage:
//
//	sessions := session.NewManager()
//	scenarios := config.NewManager("configs")
//	svc := service.NewGameService(sessions, scenarios, logger)
//
//	info, err := svc.CreateSession(ctx, "skirmish")
//	if err != nil {
//		return err
//	}
//
//	result, err := svc.Attack(ctx, info.ID, engine.Point(2, 2), engine.Point(2, 3))
//
// Rule violations reported by the engine do not surface as Go errors. They
// come back in CommandResult with Success false and ErrorKind set, and the
// game is left unchanged.
package service
