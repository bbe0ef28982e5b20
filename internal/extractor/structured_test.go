package extractor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
)

func newTestExtractor(t *testing.T, gen Generator, cfg Config) *Extractor {
	t.Helper()
	return New(gen, cfg, slog.Default())
}

const validReply = `{
  "title": "光合成",
  "question": "光合成で生成される気体はどれか。",
  "choices": [
    {"text": "二酸化炭素", "is_correct": false},
    {"text": "酸素", "is_correct": true},
    {"text": "窒素", "is_correct": false}
  ],
  "explanation": "光合成では酸素が放出される。",
  "difficulty": "easy"
}`

func TestExtract_ValidReply(t *testing.T) {
	t.Parallel()

	gen := replyWith(validReply, nil)
	e := newTestExtractor(t, gen, Config{Model: "test-model"})

	q, err := e.Extract(context.Background(), "問1 光合成で生成される気体はどれか。")
	require.NoError(t, err)

	assert.Equal(t, "光合成", q.Title)
	assert.Equal(t, "光合成で生成される気体はどれか。", q.Body)
	assert.Equal(t, []domain.Choice{
		{Text: "二酸化炭素", Correct: false},
		{Text: "酸素", Correct: true},
		{Text: "窒素", Correct: false},
	}, q.Choices)
	assert.Equal(t, "光合成では酸素が放出される。", q.Explanation)
	assert.Equal(t, domain.DifficultyEasy, q.Difficulty)
	assert.Equal(t, domain.ExtractionMethodLLM, q.Method)
	assert.False(t, q.LowConfidence)

	calls := gen.GenerateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "test-model", calls[0].Opts.Model)
	assert.Equal(t, DefaultMaxOutputTokens, calls[0].Opts.MaxOutputTokens)
	assert.InDelta(t, DefaultTemperature, calls[0].Opts.Temperature, 1e-9)
	assert.Contains(t, calls[0].Prompt, "問1 光合成で生成される気体はどれか。")
	assert.Contains(t, calls[0].Prompt, `"is_correct"`)
}

func TestExtract_GenerateOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        Config
		wantTemp   float64
		wantTokens int
	}{
		{name: "zero config", cfg: Config{}, wantTemp: DefaultTemperature, wantTokens: DefaultMaxOutputTokens},
		{name: "negative", cfg: Config{Temperature: -1, MaxOutputTokens: -5}, wantTemp: DefaultTemperature, wantTokens: DefaultMaxOutputTokens},
		{name: "explicit", cfg: Config{Temperature: 0.3, MaxOutputTokens: 256}, wantTemp: 0.3, wantTokens: 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := replyWith(validReply, nil)
			_, err := newTestExtractor(t, gen, tt.cfg).Extract(context.Background(), "問1 q")
			require.NoError(t, err)

			calls := gen.GenerateCalls()
			require.Len(t, calls, 1)
			assert.InDelta(t, tt.wantTemp, calls[0].Opts.Temperature, 1e-9)
			assert.Equal(t, tt.wantTokens, calls[0].Opts.MaxOutputTokens)
		})
	}
}

func TestExtract_PreservesChoiceOrderAndFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  []bool
	}{
		{
			name:  "last correct",
			reply: `{"question":"q","choices":[{"text":"a","is_correct":false},{"text":"b","is_correct":false},{"text":"c","is_correct":true}]}`,
			want:  []bool{false, false, true},
		},
		{
			name:  "single choice",
			reply: `{"question":"q","choices":[{"text":"only","is_correct":true}]}`,
			want:  []bool{true},
		},
		{
			name:  "several correct",
			reply: `{"question":"q","choices":[{"text":"a","is_correct":true},{"text":"b","is_correct":false},{"text":"c","is_correct":true},{"text":"d","is_correct":false}]}`,
			want:  []bool{true, false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestExtractor(t, replyWith(tt.reply, nil), Config{})

			q, err := e.Extract(context.Background(), "raw")
			require.NoError(t, err)
			require.Len(t, q.Choices, len(tt.want))
			for i, c := range q.Choices {
				assert.Equal(t, tt.want[i], c.Correct, "choice %d", i)
			}
		})
	}
}

func TestExtract_LowConfidenceWhenCorrectCountNotOne(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, replyWith(`{"question":"q","choices":[{"text":"a","is_correct":false},{"text":"b","is_correct":false}]}`, nil), Config{})

	q, err := e.Extract(context.Background(), "raw")
	require.NoError(t, err)
	assert.True(t, q.LowConfidence)
}

func TestExtract_CodeFencedReply(t *testing.T) {
	t.Parallel()

	replies := []string{
		"```json\n" + validReply + "\n```",
		"```\n" + validReply + "\n```",
		"  ```json\n" + validReply + "```  \n",
	}
	for _, r := range replies {
		e := newTestExtractor(t, replyWith(r, nil), Config{})
		q, err := e.Extract(context.Background(), "raw")
		require.NoError(t, err, "reply %q", r)
		assert.Len(t, q.Choices, 3)
	}
}

func TestExtract_DefaultsForOptionalFields(t *testing.T) {
	t.Parallel()

	reply := `{"question":"What is the capital of France? Choose the best answer.","choices":[{"text":"Paris","is_correct":true}],"difficulty":"legendary"}`
	e := newTestExtractor(t, replyWith(reply, nil), Config{})

	q, err := e.Extract(context.Background(), "raw")
	require.NoError(t, err)
	assert.Equal(t, "What is the capital of France?...", q.Title)
	assert.Equal(t, NoExplanation, q.Explanation)
	assert.Equal(t, domain.DifficultyMedium, q.Difficulty)
}

func TestExtract_MalformedReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "not json"},
		{name: "empty", reply: ""},
		{name: "prose around json", reply: "Here you go: " + validReply},
		{name: "top-level array", reply: `[{"question":"q"}]`},
		{name: "null", reply: "null"},
		{name: "missing question", reply: `{"choices":[{"text":"a","is_correct":true}]}`},
		{name: "blank question", reply: `{"question":"  ","choices":[{"text":"a","is_correct":true}]}`},
		{name: "missing choices", reply: `{"question":"q"}`},
		{name: "empty choices", reply: `{"question":"q","choices":[]}`},
		{name: "choices not a list", reply: `{"question":"q","choices":"a,b"}`},
		{name: "choice without text", reply: `{"question":"q","choices":[{"is_correct":true}]}`},
		{name: "choice without flag", reply: `{"question":"q","choices":[{"text":"a"}]}`},
		{name: "flag not boolean", reply: `{"question":"q","choices":[{"text":"a","is_correct":"true"}]}`},
		{name: "truncated json", reply: `{"question":"q","choices":[{"text":"a","is_cor`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestExtractor(t, replyWith(tt.reply, nil), Config{})

			q, err := e.Extract(context.Background(), "raw")
			assert.Nil(t, q)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
			assert.NotErrorIs(t, err, domain.ErrCollaboratorUnavailable)
		})
	}
}

func TestExtract_GeneratorErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	netErr := errors.New("dial tcp: connection refused")
	e := newTestExtractor(t, replyWith("", netErr), Config{})

	_, err := e.Extract(context.Background(), "raw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
	assert.ErrorIs(t, err, netErr)
	assert.NotErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestExtract_TruncationBoundary(t *testing.T) {
	t.Parallel()

	const budget = 10

	atBudget := strings.Repeat("問", budget)
	overBudget := atBudget + "X"

	gen := replyWith(validReply, nil)
	e := newTestExtractor(t, gen, Config{InputBudget: budget})

	got, cut := e.prepareInput(atBudget)
	assert.False(t, cut)
	assert.Equal(t, atBudget, got)

	got, cut = e.prepareInput(overBudget)
	assert.True(t, cut)
	assert.Equal(t, atBudget, got)

	_, err := e.Extract(context.Background(), overBudget)
	require.NoError(t, err)
	calls := gen.GenerateCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, atBudget)
	assert.NotContains(t, calls[0].Prompt, overBudget)
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```json{\"a\":1}```", want: `{"a":1}`},
		{in: "```json\n{\"a\":1}", want: `{"a":1}`},
		{in: "  \n", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in), "input %q", tt.in)
	}
}

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", deriveTitle("short", 30))
	assert.Equal(t, "first line", deriveTitle("\n  first line\nsecond line", 30))
	assert.Equal(t, "あいう...", deriveTitle("あいうえお", 3))
	assert.Equal(t, "abc", deriveTitle("abc", 3))
}
