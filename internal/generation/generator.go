package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// EmptyTitleMessage is returned in place of a description when no title is given.
const EmptyTitleMessage = "Please provide a task name to generate a detailed description."

// DescriptionGenerator drafts a task description from a task title.
type DescriptionGenerator interface {
	// GenerateDescription returns a description for title. title is never
	// empty; callers handle that case with EmptyTitleMessage.
	GenerateDescription(ctx context.Context, title string) (string, error)
}

// TemplateGenerator fills a fixed sentence with the title. It never fails.
type TemplateGenerator struct{}

var _ DescriptionGenerator = TemplateGenerator{}

// GenerateDescription implements DescriptionGenerator.
func (TemplateGenerator) GenerateDescription(_ context.Context, title string) (string, error) {
	return fmt.Sprintf(
		"This task involves completing %s. Make sure to allocate sufficient time and resources to accomplish it efficiently.",
		title,
	), nil
}

// Describe applies the empty-title rule and delegates everything else to g.
func Describe(ctx context.Context, g DescriptionGenerator, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return EmptyTitleMessage, nil
	}
	return g.GenerateDescription(ctx, title)
}

type fallbackGenerator struct {
	primary  DescriptionGenerator
	fallback DescriptionGenerator
	logger   *slog.Logger
}

// WithFallback returns a generator that answers with fallback whenever
// primary fails. Context cancellation is returned as-is.
func WithFallback(primary, fallback DescriptionGenerator, log *slog.Logger) DescriptionGenerator {
	if log == nil {
		log = slog.Default()
	}
	return &fallbackGenerator{
		primary:  primary,
		fallback: fallback,
		logger:   log.With(slog.String("component", "description_generator")),
	}
}

func (g *fallbackGenerator) GenerateDescription(ctx context.Context, title string) (string, error) {
	desc, err := g.primary.GenerateDescription(ctx, title)
	if err == nil {
		return desc, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	logger.FromContextOrDefault(ctx, g.logger).Warn("primary generator failed, using fallback",
		slog.String("error", err.Error()))
	return g.fallback.GenerateDescription(ctx, title)
}
