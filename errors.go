package cardrank

import "fmt"

// Error is a sentinel error, following the same pattern as the card parsing
// and deck errors: a const string satisfying the [error] interface so that
// errors.Is comparisons work without allocation.
type Error string

// Error satisfies the [error] interface.
func (err Error) Error() string {
	return string(err)
}

// Sentinel errors for malformed input that carries no further detail.
const (
	// ErrInvalidCard is the invalid card error.
	ErrInvalidCard Error = "invalid card"
	// ErrInvalidType is the invalid game variant error.
	ErrInvalidType Error = "invalid type"
	// ErrTooManyPlayers is returned when a requested deal or traversal
	// exceeds the maximum supported player count.
	ErrTooManyPlayers Error = "too many players"
	// ErrUnsupportedGameType is returned for a recognized but
	// unimplemented game variant tag.
	ErrUnsupportedGameType Error = "unsupported game type"
	// ErrUnsupportedBoardConfiguration is returned when the board card
	// count does not match what the variant requires.
	ErrUnsupportedBoardConfiguration Error = "unsupported board configuration"
)

// MaxPlayers is the maximum number of players supported by enumeration and
// solver components.
const MaxPlayers = 12

// InvalidInputError reports a validation failure against caller-supplied
// card, pocket, or board data, with a detail describing what about the input
// was invalid.
type InvalidInputError struct {
	Detail string
}

// Error satisfies the [error] interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Detail)
}

// InvalidInput wraps detail as an [*InvalidInputError].
func InvalidInput(detail string) error {
	return &InvalidInputError{Detail: detail}
}

// InvalidCardConfigurationError reports a structurally invalid card set: a
// duplicate card, or cards that cannot coexist in the requested variant (eg,
// a standard card appearing in a short-deck hand). A wrong card count is
// reported as an [InvalidInputError].
type InvalidCardConfigurationError struct {
	Detail string
}

// Error satisfies the [error] interface.
func (e *InvalidCardConfigurationError) Error() string {
	return fmt.Sprintf("invalid card configuration: %s", e.Detail)
}

// InvalidCardConfiguration wraps detail as an [*InvalidCardConfigurationError].
func InvalidCardConfiguration(detail string) error {
	return &InvalidCardConfigurationError{Detail: detail}
}
