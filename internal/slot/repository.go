package slot

import "context"

// Repository defines the storage interface for day plans.
type Repository interface {
	// GetDay retrieves the day for date (YYYY-MM-DD).
	// Returns nil, nil when no plan exists for that date.
	GetDay(ctx context.Context, date string) (*Day, error)

	// SaveDay stores the day, replacing any previous plan for its date.
	SaveDay(ctx context.Context, day *Day) error

	// ListDays returns all days between from and to (inclusive), ordered by date.
	ListDays(ctx context.Context, from, to string) ([]*Day, error)

	// DeleteDay removes the plan for date. Missing days are not an error.
	DeleteDay(ctx context.Context, date string) error

	// SaveTemplate stores a template, replacing one with the same name.
	SaveTemplate(ctx context.Context, t Template) error

	// GetTemplate retrieves a template by name.
	// Returns nil, nil when it does not exist.
	GetTemplate(ctx context.Context, name string) (*Template, error)

	// ListTemplates returns all templates ordered by name.
	ListTemplates(ctx context.Context) ([]Template, error)

	// Close releases any resources held by the repository.
	Close() error
}
