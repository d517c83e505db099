package xab

import "github.com/pkg/errors"

//////
// Sentinel errors.
//////

var (
	// ErrValidation is returned when an engine can't be built from the given
	// configuration, domain or partition recipe, or when a reward isn't a
	// finite number.
	//
	// Usage:
	//
	//	_, err := NewHCT(config, nil, NewBinaryPartition)
	//	if errors.Is(err, ErrValidation) {
	//	    // fix the input, there is nothing to retry
	//	}
	ErrValidation = errors.New("validation failed")

	// ErrProtocol is returned when Pull and ReceiveReward are not called in
	// strictly alternating order with t = 1, 2, 3, ...
	//
	// A protocol error is a programming error on the caller side. The engine
	// state is left untouched so the offending call can be inspected.
	ErrProtocol = errors.New("round protocol violation")
)

// validationErrorf wraps ErrValidation with a formatted reason.
func validationErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// protocolErrorf wraps ErrProtocol with a formatted reason.
func protocolErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrProtocol, format, args...)
}
