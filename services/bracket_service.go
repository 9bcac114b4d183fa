package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Dosada05/bracket-engine/brackets"
	"github.com/Dosada05/bracket-engine/models"
	"golang.org/x/sync/errgroup"
)

// BracketService resolves the right generator for a stage, validates the
// input against it and delegates generation. It persists nothing and emits
// no events; the returned matches are owned by the caller.
type BracketService interface {
	DetermineFormat(tournament *models.Tournament, stage *models.Stage) (string, error)
	GenerateBracketForStage(ctx context.Context, tournament *models.Tournament, stage *models.Stage, participants []*models.Participant) ([]*models.Match, error)
	GenerateStageBrackets(ctx context.Context, tournament *models.Tournament, stages []*models.Stage, participants []*models.Participant) (map[int][]*models.Match, error)
	RegisterGenerator(key string, generator brackets.Generator) error
	SupportedFormats() []string
	SupportsFormat(key string) bool
}

type bracketService struct {
	mu         sync.RWMutex
	generators map[string]brackets.Generator
	logger     *slog.Logger
}

// NewBracketService builds a service pre-populated with the four built-in
// generators plus the long-form aliases. Each call returns an isolated
// registry; there is no package-level instance.
func NewBracketService(logger *slog.Logger) BracketService {
	if logger == nil {
		logger = slog.Default()
	}

	singleElim := brackets.NewSingleEliminationGenerator()
	doubleElim := brackets.NewDoubleEliminationGenerator()

	return &bracketService{
		generators: map[string]brackets.Generator{
			singleElim.Name():    singleElim,
			"single_elimination": singleElim,
			doubleElim.Name():    doubleElim,
			"double_elimination": doubleElim,
			"round_robin":        brackets.NewRoundRobinGenerator(),
			"swiss":              brackets.NewSwissSystemGenerator(),
		},
		logger: logger,
	}
}

// normalizeFormatKey folds a user-facing format name into registry form:
// lowercase, with spaces and hyphens collapsed to underscores.
func normalizeFormatKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

func (s *bracketService) DetermineFormat(tournament *models.Tournament, stage *models.Stage) (string, error) {
	if key := normalizeFormatKey(stage.Type); key != "" && s.SupportsFormat(key) {
		return key, nil
	}
	if key := normalizeFormatKey(tournament.Format); key != "" && s.SupportsFormat(key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: stage type %q, tournament format %q; registered formats: %s",
		ErrFormatNotResolved, stage.Type, tournament.Format, strings.Join(s.SupportedFormats(), ", "))
}

func (s *bracketService) GenerateBracketForStage(ctx context.Context, tournament *models.Tournament, stage *models.Stage, participants []*models.Participant) ([]*models.Match, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w (tournament %d, stage %d)", ErrNoParticipants, tournament.ID, stage.ID)
	}

	key, err := s.DetermineFormat(tournament, stage)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	generator := s.generators[key]
	s.mu.RUnlock()

	if ok, errs := generator.Validate(tournament, stage, len(participants)); !ok {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		return nil, fmt.Errorf("%w for stage %d (%s): %s",
			ErrBracketValidationFailed, stage.ID, key, strings.Join(messages, "; "))
	}

	matches, err := generator.Generate(ctx, brackets.GenerateParams{
		Tournament:   tournament,
		Stage:        stage,
		Participants: participants,
	})
	if err != nil {
		s.logger.Error("bracket generation failed",
			slog.Int("tournament_id", tournament.ID),
			slog.Int("stage_id", stage.ID),
			slog.String("format", key),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w (tournament %d, stage %d, format %s): %w",
			ErrBracketGenerationFailed, tournament.ID, stage.ID, key, err)
	}

	s.logger.Info("bracket generated",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("stage_id", stage.ID),
		slog.String("format", key),
		slog.Int("participants", len(participants)),
		slog.Int("matches", len(matches)))
	return matches, nil
}

// GenerateStageBrackets generates every stage of a tournament concurrently.
// Generation is pure and allocation-bounded, so the stages need no
// coordination; the first failure cancels the rest.
func (s *bracketService) GenerateStageBrackets(ctx context.Context, tournament *models.Tournament, stages []*models.Stage, participants []*models.Participant) (map[int][]*models.Match, error) {
	results := make(map[int][]*models.Match, len(stages))
	var resultsMu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for _, stage := range stages {
		stage := stage
		g.Go(func() error {
			matches, err := s.GenerateBracketForStage(gCtx, tournament, stage, participants)
			if err != nil {
				return err
			}
			resultsMu.Lock()
			results[stage.ID] = matches
			resultsMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *bracketService) RegisterGenerator(key string, generator brackets.Generator) error {
	normalized := normalizeFormatKey(key)
	if normalized == "" {
		return ErrGeneratorKeyRequired
	}
	if generator == nil {
		return ErrGeneratorRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.generators[normalized]; ok {
		s.logger.Warn("replacing registered bracket generator",
			slog.String("format", normalized),
			slog.String("previous", existing.Name()),
			slog.String("replacement", generator.Name()))
	}
	s.generators[normalized] = generator
	return nil
}

func (s *bracketService) SupportedFormats() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.generators))
	for key := range s.generators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *bracketService) SupportsFormat(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.generators[normalizeFormatKey(key)]
	return ok
}
