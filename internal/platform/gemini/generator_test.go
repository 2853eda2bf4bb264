package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	prompts   []string
	model     string
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	}

	var resp *genai.GenerateContentResponse
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return resp, err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func testGenerator(models contentGenerator, retries int) *Generator {
	g := newGenerator(models, config.LLMConfig{ModelName: "gemini-test", MaxRetries: retries}, nil)
	g.baseDelay = time.Millisecond
	return g
}

func TestNewGeneratorValidatesConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewGenerator(ctx, config.LLMConfig{ModelName: "m"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGenerator(ctx, config.LLMConfig{GeminiAPIKey: "key"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateDescription(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse("  Buy two litres ", "of milk.  "),
	}}
	g := testGenerator(models, 2)

	desc, err := g.GenerateDescription(context.Background(), "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy two litres of milk.", desc)
	assert.Equal(t, 1, models.calls)
	assert.Equal(t, "gemini-test", models.model)
	require.Len(t, models.prompts, 1)
	assert.True(t, strings.HasSuffix(models.prompts[0], "Task title: Buy milk"))
}

func TestGenerateDescriptionRetries(t *testing.T) {
	t.Run("transient errors are retried", func(t *testing.T) {
		models := &fakeModels{
			errs: []error{
				genai.APIError{Code: http.StatusServiceUnavailable, Message: "overloaded"},
				errors.New("connection reset"),
				nil,
			},
			responses: []*genai.GenerateContentResponse{nil, nil, textResponse("done")},
		}
		desc, err := testGenerator(models, 3).GenerateDescription(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "done", desc)
		assert.Equal(t, 3, models.calls)
	})

	t.Run("retries are bounded", func(t *testing.T) {
		throttled := genai.APIError{Code: http.StatusTooManyRequests}
		models := &fakeModels{errs: []error{throttled, throttled, throttled}}
		_, err := testGenerator(models, 2).GenerateDescription(context.Background(), "x")
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
		assert.Equal(t, 3, models.calls)
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		models := &fakeModels{errs: []error{genai.APIError{Code: http.StatusBadRequest}}}
		_, err := testGenerator(models, 3).GenerateDescription(context.Background(), "x")
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.Equal(t, 1, models.calls)
	})

	t.Run("cancellation stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		models := &fakeModels{errs: []error{errors.New("network down")}}
		_, err := testGenerator(models, 3).GenerateDescription(ctx, "x")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, models.calls)
	})
}

func TestExtractText(t *testing.T) {
	_, err := extractText(nil)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = extractText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	blocked := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		FinishReason: genai.FinishReasonSafety,
	}}}
	_, err = extractText(blocked)
	assert.ErrorIs(t, err, generation.ErrContentBlocked)

	_, err = extractText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = extractText(textResponse("   "))
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := buildPrompt("Plan <holiday> & pack")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Task title: Plan <holiday> & pack")
}
