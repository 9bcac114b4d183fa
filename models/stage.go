package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrSwissRoundsCountMissing = errors.New("swiss stage config requires rounds_count")
	ErrSwissRoundsCountInvalid = errors.New("swiss rounds_count must be an integer between 1 and 10")
)

// Stage is one phase of a tournament (group stage, playoffs, ...) with its
// own format and configuration. Type selects the bracket format; Config is a
// free-form key/value map carrying format-specific knobs, parsed into typed
// structs at the validation boundary rather than probed inside generators.
type Stage struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	Order  int            `json:"order"`
	Config map[string]any `json:"config,omitempty"`
}

// SingleElimConfig holds the single elimination knobs.
type SingleElimConfig struct {
	ThirdPlaceMatch bool
}

// DoubleElimConfig holds the double elimination knobs. GrandFinalsReset
// defaults to true: true double elimination requires the upper-bracket
// champion to be beaten twice.
type DoubleElimConfig struct {
	GrandFinalsReset bool
}

// SwissConfig holds the swiss system knobs. RoundsCount is mandatory; a
// missing or invalid value is a validation error, never a silent default.
type SwissConfig struct {
	RoundsCount int
}

func (s *Stage) SingleElimConfig() SingleElimConfig {
	return SingleElimConfig{ThirdPlaceMatch: configBool(s.Config, "third_place_match", false)}
}

func (s *Stage) DoubleElimConfig() DoubleElimConfig {
	return DoubleElimConfig{GrandFinalsReset: configBool(s.Config, "grand_finals_reset", true)}
}

func (s *Stage) SwissConfig() (SwissConfig, error) {
	raw, ok := s.Config["rounds_count"]
	if !ok {
		return SwissConfig{}, ErrSwissRoundsCountMissing
	}
	rounds, ok := configToInt(raw)
	if !ok {
		return SwissConfig{}, fmt.Errorf("%w: got %v", ErrSwissRoundsCountInvalid, raw)
	}
	if rounds < 1 || rounds > 10 {
		return SwissConfig{}, fmt.Errorf("%w: got %d", ErrSwissRoundsCountInvalid, rounds)
	}
	return SwissConfig{RoundsCount: rounds}, nil
}

func configBool(config map[string]any, key string, fallback bool) bool {
	if config == nil {
		return fallback
	}
	v, ok := config[key]
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// configToInt accepts the numeric shapes a decoded JSON config map can hold.
func configToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
