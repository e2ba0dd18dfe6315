package password

import "errors"

var (
	ErrPolicyLength     = errors.New("password length must be between 8 and 256")
	ErrPolicyMinimums   = errors.New("sum of minimum character counts exceeds password length")
	ErrNegativeMinimum  = errors.New("minimum character counts cannot be negative")
	ErrEmptyAlphabet    = errors.New("character set is empty after applying filters")
	ErrUnknownType      = errors.New("unknown password type")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrTemplatesFrozen  = errors.New("template table is frozen and cannot be extended")
	ErrRandomnessFailed = errors.New("failed to read from randomness source")
)
