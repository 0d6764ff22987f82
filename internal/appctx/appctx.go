// Package appctx holds the shared application state: the loaded question
// bank, the progress ledger, topic lists, and the history store. It is
// built once at startup and passed explicitly to every command handler
// and screen that needs it.
package appctx

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"peprep/internal/exam"
	"peprep/internal/history"
	"peprep/internal/ledger"
	"peprep/internal/question"
	"peprep/internal/sampler"
	"peprep/internal/topics"
)

// ErrNoSession is returned when an operation needs an active session and
// none exists.
var ErrNoSession = errors.New("no active session")

// Context is the application-wide dependency bundle.
type Context struct {
	Bank       *question.Bank
	Ledger     *ledger.Ledger
	LedgerPath string
	Topics     *topics.Set // nil when no topics file is configured
	History    *history.Store
	Session    *exam.Session
	Rng        *rand.Rand

	sessionMode string
}

// New builds a Context around an already-loaded bank and ledger. The rng
// is seeded from the clock; tests inject their own via NewWithRand.
func New(bank *question.Bank, led *ledger.Ledger, ledgerPath string) *Context {
	return NewWithRand(bank, led, ledgerPath, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand builds a Context with a caller-supplied random source.
func NewWithRand(bank *question.Bank, led *ledger.Ledger, ledgerPath string, rng *rand.Rand) *Context {
	return &Context{
		Bank:       bank,
		Ledger:     led,
		LedgerPath: ledgerPath,
		Rng:        rng,
	}
}

// StartStandard samples k unseen questions, marks them used, saves the
// ledger, and opens a new active session.
func (c *Context) StartStandard(k int) (*exam.Session, error) {
	qs, err := sampler.Standard(c.Rng, c.Bank, c.Ledger, k)
	if err != nil {
		return nil, err
	}
	return c.openSession(qs, "standard")
}

// StartTargeted samples k questions from the named topic list, ignoring
// seen state, and opens a new active session.
func (c *Context) StartTargeted(topicName string, k int) (*exam.Session, error) {
	if c.Topics == nil {
		return nil, errors.New("no topics configured")
	}
	ids, ok := c.Topics.Get(topicName)
	if !ok {
		return nil, fmt.Errorf("unknown topic %q", topicName)
	}
	qs, err := sampler.Targeted(c.Rng, c.Bank, c.Ledger, ids, k)
	if err != nil {
		return nil, err
	}
	return c.openSession(qs, "targeted:"+topicName)
}

func (c *Context) openSession(qs []*question.Question, mode string) (*exam.Session, error) {
	// Sampling already marked questions used; persist before the exam
	// starts so a crash mid-session cannot resurface them.
	if err := c.saveLedger(); err != nil {
		return nil, err
	}
	s := exam.Start(qs)
	c.Session = s
	c.sessionMode = mode
	return s, nil
}

// SubmitSession grades the active session, folds the result into the
// ledger, saves it, and records the session in history. The session stays
// attached in report stage until DiscardSession.
func (c *Context) SubmitSession() (*exam.Result, error) {
	if c.Session == nil {
		return nil, ErrNoSession
	}
	res, err := c.Session.Submit(c.Ledger)
	if err != nil {
		return nil, err
	}
	if err := c.saveLedger(); err != nil {
		return nil, err
	}
	if err := c.recordHistory(res); err != nil {
		return res, fmt.Errorf("record history: %w", err)
	}
	return res, nil
}

// DiscardSession drops the active session without grading. Questions
// sampled for it stay marked used.
func (c *Context) DiscardSession() {
	c.Session = nil
	c.sessionMode = ""
}

// SessionMode reports how the active session was started.
func (c *Context) SessionMode() string {
	return c.sessionMode
}

// Remaining is the count of bank questions never served in any session.
func (c *Context) Remaining() int {
	n := 0
	for _, q := range c.Bank.All() {
		if !c.Ledger.IsUsed(q.ID) {
			n++
		}
	}
	return n
}

// MissedQuestions resolves the ledger's all-time wrong ids against the
// bank. Ids no longer present in the bank are skipped.
func (c *Context) MissedQuestions() []*question.Question {
	var out []*question.Question
	for _, id := range c.Ledger.WrongIDs() {
		if q, ok := c.Bank.Get(id); ok {
			out = append(out, q)
		}
	}
	return out
}

func (c *Context) saveLedger() error {
	if c.LedgerPath == "" {
		return nil
	}
	if err := c.Ledger.Save(c.LedgerPath); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (c *Context) recordHistory(res *exam.Result) error {
	if c.History == nil {
		return nil
	}
	s := c.Session
	rec := history.SessionRecord{
		ID:          s.ID,
		Mode:        c.sessionMode,
		StartedAt:   s.StartedAt,
		SubmittedAt: time.Now(),
		Correct:     res.Correct,
		Total:       res.Total,
	}
	attempts := make([]history.AttemptRecord, 0, len(s.Questions))
	for i, q := range s.Questions {
		attempts = append(attempts, history.AttemptRecord{
			SessionID:      s.ID,
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			Selected:       q.SelectedLetters(),
			CorrectLetters: q.CorrectLetters(),
			IsCorrect:      q.IsCorrect(),
			Flagged:        q.Flagged,
			Position:       i,
		})
	}
	return c.History.RecordSession(rec, attempts)
}
