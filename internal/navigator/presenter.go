package navigator

import "context"

// Menu rows injected around the content
const (
	ExitText       = "[ exit ]"
	BackText       = "[ <- back ]"
	AddItemText    = "[ + add item ]"
	DeleteItemText = "[ - delete item ]"

	SaveText    = "Save"
	DiscardText = "Discard"

	deletePrefix = "-> "
)

// Presenter is the terminal boundary. Every call blocks until the operator
// answers. Implementations return an error wrapping context.Canceled when
// the operator aborts.
type Presenter interface {
	// Select shows items under title and returns the chosen index.
	Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error)
	// PromptText asks for a line of text.
	PromptText(ctx context.Context, label, initial string, allowEmpty bool) (string, error)
	// PromptInt asks for an integer.
	PromptInt(ctx context.Context, label string, initial int64) (int64, error)
}

// SaveFunc persists the whole configuration value
type SaveFunc func(value any) error
