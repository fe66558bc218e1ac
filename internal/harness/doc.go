// Package harness runs match scenarios against the kxo runtime.
//
// A scenario fixes the seed, task list and keyboard input of a match, runs
// it to a game or quantum limit with a deterministic clock and game IDs,
// records finished games to an in-memory SQLite store, and evaluates
// assertions over the scheduler trace and the results.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: two_games
//	description: "Two complete games are played and recorded"
//	seed: "0x5eed"
//	games: 2
//	max_quanta: 20000
//	negamax_depth: 3
//	mcts_iterations: 50
//	keys: ""
//	assertions:
//	  - type: games
//	    count: 2
//	  - type: trace_order
//	    kind: bootstrap
//	    tasks: [ai-one, check-win, keyboard, draw]
//
// Unknown keys are rejected so typos fail loudly.
package harness
