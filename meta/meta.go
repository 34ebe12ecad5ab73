// meta/meta.go
package meta

// MAX_TURNS caps a headless simulation run.
const MAX_TURNS = 300

// DEFAULT_PLAYERS is the number of players (human included) of a new game.
const DEFAULT_PLAYERS = 4

// DEFAULT_PLAYER_NAME names the human player when none is given.
const DEFAULT_PLAYER_NAME = "Player"

// HUMAN_ID is the registry index of the human-controlled player.
const HUMAN_ID = 0

// DEFAULT_SAVES_DIR holds file snapshots.
const DEFAULT_SAVES_DIR = "conquest_saves"

// DEFAULT_METRICS_DIR holds per-run CSV records.
const DEFAULT_METRICS_DIR = "experiments"
