package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RunConfig describes one simulated game setup of an experiment.
type RunConfig struct {
	ID          int
	Players     int
	GridSide    int
	Terrain     string
	BuildChance float64
	CommitRatio float64
}

type GameRecord struct {
	ID     int
	Config int // RunConfig.ID
	GameMetric
}

type TurnRecord struct {
	Game int // GameRecord.ID
	TurnMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every table there.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfigs(configs []RunConfig) error {
	header := []string{"id", "players", "grid_side", "terrain", "build_chance", "commit_ratio"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Players),
			strconv.Itoa(config.GridSide),
			config.Terrain,
			strconv.FormatFloat(config.BuildChance, 'f', -1, 64),
			strconv.FormatFloat(config.CommitRatio, 'f', -1, 64),
		}
	}
	return w.write("run_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "config", "seed", "players", "grid_side", "terrain", "winner", "start_time", "end_time", "duration", "turns"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Config),
			strconv.FormatInt(record.Seed, 10),
			strconv.Itoa(record.Players),
			strconv.Itoa(record.GridSide),
			record.Terrain,
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalTurns),
		}
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteTurnRecords(records []TurnRecord) error {
	header := []string{"game", "turn", "duration", "attacks", "attacks_won", "naval", "cities", "idle"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			record.Duration.String(),
			strconv.Itoa(record.Attacks),
			strconv.Itoa(record.AttacksWon),
			strconv.Itoa(record.Naval),
			strconv.Itoa(record.Cities),
			strconv.Itoa(record.Idle),
		}
	}
	return w.write("turn_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	// Write each row
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
