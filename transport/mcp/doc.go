// Package mcp provides a Model Context Protocol server for the grid combat game.
//
// The mcp package implements:
//   - MCP server for AI agent integration over stdio
//   - Tool definitions for every game operation
//   - Text formatting of boards, command results and history
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_scenarios: List scenario files
//   - create_session: Create a session from a scenario
//   - new_session: Create a session with an empty board
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - fork_session: Copy a session for speculative play
//   - save_scenario: Save a session's board as a scenario file
//   - add_unit: Place a unit on the board
//   - move, attack, reload: Play game commands
//   - game_state: Get the board and unit stats
//   - history: Retrieve command history with pagination
//   - game_rules: Get the rules of every unit
//
// Session Management:
//
// Every game tool takes a session_id. Agents can run several sessions at
// once and fork a session to explore a line of play without losing the
// original position.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, version, logger)
//	if err := srv.ServeStdio(); err != nil {
//		return err
//	}
//
// Rejected commands are not tool errors: the result text carries the error
// kind and the unchanged board, so the agent can pick another move.
package mcp
