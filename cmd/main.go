package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/Dosada05/bracket-engine/config"
	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/services"
)

// descriptorFile is the input shape of bracketgen: one tournament, its
// stages and the confirmed participants in seed order.
type descriptorFile struct {
	Tournament   models.Tournament     `json:"tournament"`
	Stages       []*models.Stage       `json:"stages"`
	Participants []*models.Participant `json:"participants"`
}

type stageOutput struct {
	StageID int             `json:"stage_id"`
	Matches []*models.Match `json:"matches"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: bracketgen <descriptor.json>")
		os.Exit(2)
	}

	input, err := readDescriptor(os.Args[1])
	if err != nil {
		logger.Error("failed to read descriptor", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("descriptor loaded",
		slog.Int("tournament_id", input.Tournament.ID),
		slog.Int("stages", len(input.Stages)),
		slog.Int("participants", len(input.Participants)))

	bracketService := services.NewBracketService(logger)

	results, err := bracketService.GenerateStageBrackets(context.Background(), &input.Tournament, input.Stages, input.Participants)
	if err != nil {
		logger.Error("bracket generation failed", slog.Any("error", err))
		os.Exit(1)
	}

	output := make([]stageOutput, 0, len(results))
	for stageID, matches := range results {
		output = append(output, stageOutput{StageID: stageID, Matches: matches})
	}
	sort.Slice(output, func(i, j int) bool { return output[i].StageID < output[j].StageID })

	encoder := json.NewEncoder(os.Stdout)
	if cfg.PrettyOutput {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		logger.Error("failed to encode output", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("brackets generated", slog.Int("stages", len(output)))
}

func readDescriptor(path string) (*descriptorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var input descriptorFile
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(input.Stages) == 0 {
		return nil, fmt.Errorf("%s contains no stages", path)
	}
	return &input, nil
}
