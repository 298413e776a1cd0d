// Package chart implements the Earley-style chart parser: prediction,
// scanning, completion and quantifier skipping over per-column
// canonicalization sets, producing the forest rooted at a synthetic gamma
// item.
//
// Quantified symbols are interpreted in place, by extend and skip
// transitions on the items themselves, rather than by rewriting the
// grammar beforehand. The nullable-completion problem is solved by a
// per-column "completed this column" table instead of Aycock-Horspool
// nullability precomputation.
package chart

import (
	pf "github.com/kavanlabs/parseforest"
	"github.com/kavanlabs/parseforest/report"
)

// config collects the options controlling a single Run.
type config struct {
	failIfEmpty bool
}

// Option configures a Run.
type Option func(*config)

// WithFailIfEmpty controls whether Run raises NoParseError when the token
// sequence is empty and the grammar has no derivation of the empty string.
// Defaults to true. With false, Run returns a nil root and a nil error in
// that case; a failure on non-empty input is always an error.
func WithFailIfEmpty(b bool) Option {
	return func(c *config) { c.failIfEmpty = b }
}

// gammaHeadPrefix names the synthetic wrapper rule's head. The '·' glyph
// marks engine-internal heads; grammar-supplied heads containing it are
// unsupported.
const gammaHeadPrefix = "γ·"

// Run parses tokens against the rules registered for start, returning the
// root (gamma) item of the resulting forest. The only mutations Run makes to
// rs are registering the synthetic gamma wrapper rule under a head no
// grammar-supplied head can collide with and marking that head anonymous;
// rs is otherwise read-only for the duration of the call.
func Run(rs *pf.RuleSet, start string, tokens []interface{}, opts ...Option) (*pf.PartialItem, error) {
	cfg := config{failIfEmpty: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	gamma := pf.NewRule(gammaHeadPrefix+start, pf.NewNonTerminal(start))
	gamma.Transparent = true
	rs.Add(gamma)
	rs.MarkAnonymous(gamma.Head)

	n := len(tokens)
	e := &engine{
		rs:              rs,
		tokens:          tokens,
		n:               n,
		gamma:           gamma,
		columns:         make([]*column, n+1),
		pendingByHead:   make([]map[string][]*pf.PartialItem, n+1),
		completedByHead: make([]map[string][]*pf.PartialItem, n+1),
		terminalItems:   make([][]*pf.PartialItem, n+1),
	}
	for i := 0; i <= n; i++ {
		e.columns[i] = newColumn()
		e.pendingByHead[i] = make(map[string][]*pf.PartialItem)
		e.completedByHead[i] = make(map[string][]*pf.PartialItem)
	}
	e.columns[0].canonicalize(pf.NewInitialItem(gamma, 0))

	final, err := e.run()
	if err != nil {
		return nil, err
	}
	if final == nil {
		if !cfg.failIfEmpty && n == 0 {
			return nil, nil
		}
		return nil, e.noParseAt(n)
	}
	return final, nil
}

// engine holds the per-parse chart state: one column per token position
// (0..n inclusive), plus the pending/completed-by-head tables that solve
// nullable completion without precomputation.
type engine struct {
	rs     *pf.RuleSet
	tokens []interface{}
	n      int
	gamma  *pf.Rule

	columns         []*column
	pendingByHead   []map[string][]*pf.PartialItem
	completedByHead []map[string][]*pf.PartialItem
	terminalItems   [][]*pf.PartialItem

	final *pf.PartialItem
}

func (e *engine) run() (*pf.PartialItem, error) {
	for i := 0; i <= e.n; i++ {
		col := e.columns[i]
		for {
			item, ok := col.next()
			if !ok {
				break
			}
			e.step(i, item)
		}
		tracer().Debugf("column %d: %d items", i, len(col.items()))
		if i < e.n && len(e.columns[i+1].queue) == 0 && e.final == nil {
			return nil, e.noParseAt(i)
		}
	}
	return e.final, nil
}

// step dispatches a single popped item through completion, prediction,
// scanning and quantifier-skip as applicable. Skip is
// considered independently of scan/predict since a quantified non-terminal
// or terminal may simultaneously be scanned/predicted AND skipped.
func (e *engine) step(i int, item *pf.PartialItem) {
	if item.IsComplete() {
		e.complete(i, item)
		return
	}
	s := item.NextSymbol()
	if s.IsTerminal() {
		e.scan(i, item, s)
	} else {
		e.predict(i, item, s)
	}
	e.skip(i, item)
}

// complete extends every waiter predicted at the finished item's start
// column; nullable completions (item.Start == i) are also recorded so that
// predictions made later in the same column see them immediately.
func (e *engine) complete(i int, item *pf.PartialItem) {
	head := item.Rule.Head
	start := int(item.Start)
	for _, waiter := range e.pendingByHead[start][head] {
		succ := waiter.Extend(pf.FromItem(item), uint64(i))
		e.columns[i].canonicalize(succ)
	}
	if start == i {
		e.completedByHead[i][head] = append(e.completedByHead[i][head], item)
	}
	if item.Rule == e.gamma && item.Start == 0 && i == e.n {
		e.final = item
	}
}

// predict registers item as a waiter for s's head, seeds an initial item
// for every rule defining that head, and consumes at once any head already
// completed nullably in this column.
func (e *engine) predict(i int, item *pf.PartialItem, s pf.Symbol) {
	head := s.Head()
	e.pendingByHead[i][head] = append(e.pendingByHead[i][head], item)
	for _, r := range e.rs.Get(head) {
		e.columns[i].canonicalize(pf.NewInitialItem(r, uint64(i)))
	}
	for _, completed := range e.completedByHead[i][head] {
		succ := item.Extend(pf.FromItem(completed), uint64(i))
		e.columns[i].canonicalize(succ)
	}
}

// scan interns the successor into the next column if the next token
// matches s. Every item whose next symbol is a terminal is remembered for
// error reporting regardless of match outcome.
func (e *engine) scan(i int, item *pf.PartialItem, s pf.Symbol) {
	e.terminalItems[i] = append(e.terminalItems[i], item)
	if i >= e.n {
		return
	}
	if s.Match(e.tokens[i]) {
		succ := item.Extend(pf.FromToken(e.tokens[i]), uint64(i+1))
		e.columns[i+1].canonicalize(succ)
	}
}

// skip interns an admissible skip back into the current column, driving
// the worklist until no more skips apply.
func (e *engine) skip(i int, item *pf.PartialItem) {
	succ, ok := item.Skip()
	if !ok {
		return
	}
	e.columns[i].canonicalize(succ)
}

// noParseAt builds a NoParseError for a failure discovered while setting up
// or draining column i, summarizing the terminals and expectations pending
// there.
func (e *engine) noParseAt(i int) error {
	var encountered interface{}
	if i < e.n {
		encountered = e.tokens[i]
	}
	terms := report.Terminals(e.terminalItems[i])
	expected := report.Expected(e.rs, e.terminalItems[i], e.pendingByHead[i])
	err := pf.NewNoParseError("no viable parse", uint64(i), uint64(i))
	err.Encountered = encountered
	err.Terminals = terms
	err.Expected = expected
	return err
}
