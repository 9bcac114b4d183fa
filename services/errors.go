package services

import "errors"

// Shared errors for the bracket engine service layer.
var (
	// Resolution errors
	ErrFormatNotResolved = errors.New("could not resolve a bracket format for the stage")

	// Validation and business-rule errors
	ErrBracketValidationFailed = errors.New("bracket validation failed")
	ErrNoParticipants          = errors.New("no participants provided for bracket generation")

	// Registry errors
	ErrGeneratorKeyRequired = errors.New("generator registry key is required")
	ErrGeneratorRequired    = errors.New("generator instance is required")

	// Unexpected generator failures (wrapped with tournament/stage context)
	ErrBracketGenerationFailed = errors.New("bracket generation failed")
)
