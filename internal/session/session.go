// Package session implements the two-step name search → ticker selection
// flow as an explicit state machine.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/interfaces"
	"github.com/bobmcallan/shyft/internal/models"
)

// State is one of Idle, Searching, Selecting, Fetching, Done or Failed.
type State interface {
	Name() string
	isState()
}

// Idle is the initial state and the state after Reset.
type Idle struct{}

// Searching is held while a name search is in flight.
type Searching struct {
	Query string
}

// Selecting holds the candidate tickers of a successful name search.
type Selecting struct {
	Query      string
	Candidates []string
}

// Fetching is held while financials for the selected ticker are loading.
type Fetching struct {
	Ticker string
}

// Done holds a completed lookup. Candidates are cleared.
type Done struct {
	Report *models.FinancialsReport
}

// Failed holds the error of the last action and the state it started from.
type Failed struct {
	Err      error
	Previous State
}

func (Idle) Name() string      { return "idle" }
func (Searching) Name() string { return "searching" }
func (Selecting) Name() string { return "selecting" }
func (Fetching) Name() string  { return "fetching" }
func (Done) Name() string      { return "done" }
func (Failed) Name() string    { return "failed" }

func (Idle) isState()      {}
func (Searching) isState() {}
func (Selecting) isState() {}
func (Fetching) isState()  {}
func (Done) isState()      {}
func (Failed) isState()    {}

// Session drives one interactive flow. It is owned by a single caller and
// is not safe for concurrent use.
type Session struct {
	lookup interfaces.LookupService
	state  State
	logger *common.Logger
}

// New creates a session in the Idle state.
func New(lookup interfaces.LookupService, logger *common.Logger) *Session {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Session{lookup: lookup, state: Idle{}, logger: logger}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Candidates returns the tickers currently offered for selection. A failed
// action keeps the candidates of the state it started from.
func (s *Session) Candidates() []string {
	switch st := s.state.(type) {
	case Selecting:
		return st.Candidates
	case Failed:
		if prev, ok := st.Previous.(Selecting); ok {
			return prev.Candidates
		}
	}
	return nil
}

func (s *Session) transition(next State) {
	s.logger.Debug().Str("from", s.state.Name()).Str("to", next.Name()).Msg("Session transition")
	s.state = next
}

// Search looks up tickers for a company name. On success the session moves
// to Selecting; on failure to Failed with the prior state retained.
func (s *Session) Search(ctx context.Context, name string) (State, error) {
	switch s.state.(type) {
	case Searching, Fetching:
		return s.state, fmt.Errorf("%w: search while %s", models.ErrInvalidTransition, s.state.Name())
	}

	previous := s.settled()
	s.transition(Searching{Query: name})

	tickers, err := s.lookup.SearchCompany(ctx, name)
	if err != nil {
		s.transition(Failed{Err: err, Previous: previous})
		return s.state, err
	}

	s.transition(Selecting{Query: strings.TrimSpace(name), Candidates: tickers})
	return s.state, nil
}

// Select fetches financials for one of the offered candidates. A successful
// fetch ends the cycle in Done with the candidates cleared.
func (s *Session) Select(ctx context.Context, ticker string) (State, error) {
	var selecting Selecting
	switch st := s.state.(type) {
	case Selecting:
		selecting = st
	case Failed:
		prev, ok := st.Previous.(Selecting)
		if !ok {
			return s.state, fmt.Errorf("%w: select while %s", models.ErrInvalidTransition, s.state.Name())
		}
		selecting = prev
	default:
		return s.state, fmt.Errorf("%w: select while %s", models.ErrInvalidTransition, s.state.Name())
	}

	want := strings.TrimSpace(ticker)
	i := slices.IndexFunc(selecting.Candidates, func(c string) bool {
		return strings.EqualFold(c, want)
	})
	if i < 0 {
		return s.state, fmt.Errorf("%w: %s is not one of %v", models.ErrInvalidTransition, strings.ToUpper(want), selecting.Candidates)
	}
	ticker = selecting.Candidates[i]

	s.transition(Fetching{Ticker: ticker})

	report, err := s.lookup.GetFinancialsByTicker(ctx, ticker)
	if err != nil {
		s.transition(Failed{Err: err, Previous: selecting})
		return s.state, err
	}

	s.transition(Done{Report: report})
	return s.state, nil
}

// Reset returns the session to Idle from any state.
func (s *Session) Reset() {
	s.transition(Idle{})
}

// settled unwraps Failed to the state the failed action started from.
func (s *Session) settled() State {
	if f, ok := s.state.(Failed); ok && f.Previous != nil {
		return f.Previous
	}
	return s.state
}
