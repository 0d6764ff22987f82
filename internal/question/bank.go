package question

import "fmt"

// Bank is the ordered collection of all loaded questions. It is append-only:
// questions are never removed or edited in place after load.
type Bank struct {
	questions []*Question
	byID      map[string]*Question
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{byID: make(map[string]*Question)}
}

// Add appends a question. Fails if the question is structurally invalid or
// its id is already present.
func (b *Bank) Add(q *Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, exists := b.byID[q.ID]; exists {
		return fmt.Errorf("duplicate question id %q", q.ID)
	}
	b.questions = append(b.questions, q)
	b.byID[q.ID] = q
	return nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns the questions in load order. The slice is shared; callers
// must not reorder or truncate it.
func (b *Bank) All() []*Question {
	return b.questions
}

// Get looks a question up by id.
func (b *Bank) Get(id string) (*Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}
