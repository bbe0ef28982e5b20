package domain

import (
	"time"

	"github.com/google/uuid"
)

// Choice is one answer option. Slice order is display order.
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a structured multiple-choice question.
//
// Body is never empty. Exactly one correct choice is expected but not
// enforced; LowConfidence is set when that expectation is not backed by a
// reliable signal.
type Question struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	Choices       []Choice         `json:"choices"`
	Explanation   string           `json:"explanation"`
	Difficulty    Difficulty       `json:"difficulty"`
	Method        ExtractionMethod `json:"method"`
	LowConfidence bool             `json:"low_confidence"`
	Language      string           `json:"language,omitempty"`
	Source        string           `json:"source,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CorrectCount returns the number of choices flagged correct.
func (q *Question) CorrectCount() int {
	n := 0
	for _, c := range q.Choices {
		if c.Correct {
			n++
		}
	}
	return n
}

// CorrectIndex returns the index of the first correct choice, or -1.
func (q *Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c.Correct {
			return i
		}
	}
	return -1
}

// Attempt is one recorded answer to a question.
type Attempt struct {
	ID          uuid.UUID `json:"id"`
	QuestionID  uuid.UUID `json:"question_id"`
	ChoiceIndex int       `json:"choice_index"`
	Correct     bool      `json:"correct"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttemptCounts tallies the answers recorded for one question.
type AttemptCounts struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// Stats aggregates the question bank and practice history.
type Stats struct {
	Questions       int `json:"questions"`
	LowConfidence   int `json:"low_confidence"`
	Attempts        int `json:"attempts"`
	CorrectAttempts int `json:"correct_attempts"`
}

// QuestionFilter narrows List queries. Zero values mean "any".
type QuestionFilter struct {
	Difficulty    *Difficulty
	Source        *string
	LowConfidence *bool
	Limit         int
	Offset        int
}
