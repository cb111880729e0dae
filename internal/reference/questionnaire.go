package reference

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
)

// Option is one selectable answer with its integer score
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a single questionnaire item
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Questionnaire is the fixed risk-tolerance questionnaire definition
type Questionnaire struct {
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
	maxScore  int
	index     map[string]map[string]Option
}

// NewQuestionnaire indexes the questions and computes the maximum achievable score
func NewQuestionnaire(version string, questions []Question) (*Questionnaire, error) {
	q := &Questionnaire{
		Version:   version,
		Questions: questions,
		index:     make(map[string]map[string]Option, len(questions)),
	}
	for _, question := range questions {
		if _, dup := q.index[question.ID]; dup {
			return nil, fmt.Errorf("duplicate question %s", question.ID)
		}
		if len(question.Options) == 0 {
			return nil, fmt.Errorf("question %s has no options", question.ID)
		}
		opts := make(map[string]Option, len(question.Options))
		best := 0
		for _, o := range question.Options {
			opts[o.ID] = o
			if o.Score > best {
				best = o.Score
			}
		}
		q.index[question.ID] = opts
		q.maxScore += best
	}
	if q.maxScore <= 0 {
		return nil, fmt.Errorf("questionnaire %s has no positive maximum score", version)
	}
	return q, nil
}

// MaxScore is the highest raw score the questionnaire can produce
func (q *Questionnaire) MaxScore() int {
	return q.maxScore
}

// Lookup resolves a question/option pair to its option definition
func (q *Questionnaire) Lookup(questionID, optionID string) (Option, error) {
	opts, ok := q.index[questionID]
	if !ok {
		return Option{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	o, ok := opts[optionID]
	if !ok {
		return Option{}, fmt.Errorf("%w: %s for question %s", ErrUnknownOption, optionID, questionID)
	}
	return o, nil
}

// defaultQuestions is the built-in questionnaire; maximum raw score is 80
var defaultQuestions = []Question{
	{ID: "Q1", Text: "What is your primary investment goal?", Options: []Option{
		{ID: "A", Text: "Preserve capital", Score: 1},
		{ID: "B", Text: "Generate steady income", Score: 4},
		{ID: "C", Text: "Balanced growth and income", Score: 7},
		{ID: "D", Text: "Maximize long-term growth", Score: 10},
	}},
	{ID: "Q2", Text: "If your portfolio fell 20% in a month, what would you do?", Options: []Option{
		{ID: "A", Text: "Sell everything", Score: 1},
		{ID: "B", Text: "Sell some holdings", Score: 3},
		{ID: "C", Text: "Hold and wait", Score: 7},
		{ID: "D", Text: "Buy more", Score: 10},
	}},
	{ID: "Q3", Text: "How would you describe your investing experience?", Options: []Option{
		{ID: "A", Text: "None", Score: 2},
		{ID: "B", Text: "Limited", Score: 5},
		{ID: "C", Text: "Experienced", Score: 8},
		{ID: "D", Text: "Professional", Score: 10},
	}},
	{ID: "Q4", Text: "How stable is your income?", Options: []Option{
		{ID: "A", Text: "Unstable", Score: 2},
		{ID: "B", Text: "Somewhat stable", Score: 6},
		{ID: "C", Text: "Very stable", Score: 10},
	}},
	{ID: "Q5", Text: "What is the largest one-year loss you could accept?", Options: []Option{
		{ID: "A", Text: "0-5%", Score: 1},
		{ID: "B", Text: "5-15%", Score: 4},
		{ID: "C", Text: "15-25%", Score: 7},
		{ID: "D", Text: "More than 25%", Score: 10},
	}},
	{ID: "Q6", Text: "Which portfolio would you prefer?", Options: []Option{
		{ID: "A", Text: "Low return, very low volatility", Score: 1},
		{ID: "B", Text: "Moderate return, moderate volatility", Score: 5},
		{ID: "C", Text: "High return, high volatility", Score: 10},
	}},
	{ID: "Q7", Text: "How many months of expenses does your emergency fund cover?", Options: []Option{
		{ID: "A", Text: "Less than 1", Score: 1},
		{ID: "B", Text: "1-3", Score: 4},
		{ID: "C", Text: "3-6", Score: 7},
		{ID: "D", Text: "More than 6", Score: 10},
	}},
	{ID: "Q8", Text: "When do you expect to start withdrawing from this portfolio?", Options: []Option{
		{ID: "A", Text: "Within 2 years", Score: 1},
		{ID: "B", Text: "2-5 years", Score: 4},
		{ID: "C", Text: "5-10 years", Score: 7},
		{ID: "D", Text: "More than 10 years", Score: 10},
	}},
}

// DefaultQuestionnaire builds the built-in questionnaire
func DefaultQuestionnaire() *Questionnaire {
	q, err := NewQuestionnaire(TablesVersion, defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("built-in questionnaire is invalid: %v", err))
	}
	return q
}
