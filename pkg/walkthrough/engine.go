package walkthrough

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Engine drives the guided tour for a single page: it owns the current
// step index, resolves targets through the layout document, hands them
// to the highlight controller and placement engine, and persists
// completion through the profile store.
//
// Engine is a bubbletea-style model: all state changes flow through
// Update, persistence runs inside commands, and there is no goroutine or
// lock in the engine itself. The host forwards key and size messages
// while the tour is active and composites the tooltip and highlight
// overlay into its own view.

// persistTimeout bounds a single terminal persistence exchange. Network
// behavior beyond this is the profile store's concern.
const persistTimeout = 10 * time.Second

// phase is the engine lifecycle state.
type phase int

const (
	phaseInert phase = iota
	phaseActive
	phaseDone
)

// terminalKind distinguishes why a terminal persistence write happened,
// so the acknowledgment can too.
type terminalKind int

const (
	kindComplete terminalKind = iota
	kindSkipPage
	kindSkipAll
)

// DocumentSource returns the current layout document. It is called on
// every step transition because targets can unmount between steps.
type DocumentSource func() Document

// Messages the host routes or observes.

// StartMsg asks the engine to start the tour. The engine ignores it when
// the page is already completed, the profile is still loading, or there
// are no steps.
type StartMsg struct{}

// SnapshotMsg carries a fresh profile snapshot. The host forwards one
// whenever the profile store's data changes; the engine uses it for
// auto-start gating.
type SnapshotMsg struct {
	Snapshot ProfileSnapshot
}

// ScrollRequestMsg asks the host to scroll the current page so Target is
// centered in the viewport. The engine draws the highlight only after
// the settle delay that follows.
type ScrollRequestMsg struct {
	Target Rect
}

// ToastMsg is a transient, dismissible notification for the user.
type ToastMsg struct {
	Text    string
	IsError bool
}

// FinishedMsg announces a terminal transition that persisted
// successfully. AllPages distinguishes "every page's tour is now done"
// from "this page's tour is done".
type FinishedMsg struct {
	Page     Page
	AllPages bool
	Skipped  bool
}

// Internal messages.

type settledMsg struct{}

type pulseMsg struct{}

type persistDoneMsg struct {
	kind     terminalKind
	snapshot ProfileSnapshot
	err      error
	failures map[Page]error
}

// Option configures an Engine.
type Option func(*Engine)

// WithAutoStart controls whether the engine starts itself once the
// profile snapshot confirms the page is not completed. Defaults to true.
func WithAutoStart(enabled bool) Option {
	return func(e *Engine) { e.autoStart = enabled }
}

// WithFootprint overrides the assumed tooltip box size.
func WithFootprint(fp Size) Option {
	return func(e *Engine) { e.footprint = fp }
}

// Engine is the tour state machine for one page.
type Engine struct {
	page  Page
	steps []Step
	store ProfileStore
	doc   DocumentSource

	phase      phase
	idx        int
	target     Element
	tooltipPos Point
	vp         Viewport
	footprint  Size
	hl         Highlighter

	// persisting guards terminal transitions: at most one in-flight
	// persistence operation, with the triggering controls disabled for
	// the duration rather than queuing duplicates.
	persisting bool

	autoStart     bool
	autoAttempted bool

	tooltip tooltipRenderer
}

// New creates an inert engine for the given page.
func New(page Page, reg *Registry, store ProfileStore, doc DocumentSource, opts ...Option) Engine {
	e := Engine{
		page:      page,
		steps:     reg.Steps(page),
		store:     store,
		doc:       doc,
		footprint: DefaultFootprint(),
		autoStart: true,
	}
	for _, opt := range opts {
		opt(&e)
	}
	e.tooltip = newTooltipRenderer(e.footprint)
	return e
}

// Active reports whether the tour is currently showing.
func (e Engine) Active() bool { return e.phase == phaseActive }

// Persisting reports whether a terminal write is in flight.
func (e Engine) Persisting() bool { return e.persisting }

// StepIndex returns the current step index. Only meaningful while
// active.
func (e Engine) StepIndex() int { return e.idx }

// CurrentStep returns the active step definition.
func (e Engine) CurrentStep() (Step, bool) {
	if e.phase != phaseActive || e.idx < 0 || e.idx >= len(e.steps) {
		return Step{}, false
	}
	return e.steps[e.idx], true
}

// TargetElement returns the resolved element for the current step, or
// nil for targetless and unresolved steps.
func (e Engine) TargetElement() Element { return e.target }

// TooltipPos returns the computed tooltip coordinate.
func (e Engine) TooltipPos() Point { return e.tooltipPos }

// Footprint returns the tooltip box size.
func (e Engine) Footprint() Size { return e.footprint }

// Highlight returns the live overlay handle, or nil.
func (e Engine) Highlight() *HighlightHandle { return e.hl.Handle() }

// SetViewport updates the viewport and reflows the current step.
func (e Engine) SetViewport(w, h int) (Engine, tea.Cmd) {
	e.vp = Viewport{W: w, H: h}
	if e.phase != phaseActive {
		return e, nil
	}
	return e.showStep()
}

// Teardown synchronously removes all visual artifacts. The host calls it
// on unmount (page switch, quit) so nothing leaks into the next view.
// In-flight writes are left to complete; their results are ignored once
// the engine is inert.
func (e Engine) Teardown() Engine {
	e.hl.Clear()
	e.target = nil
	if e.phase == phaseActive {
		e.phase = phaseInert
	}
	return e
}

// Update advances the state machine.
func (e Engine) Update(msg tea.Msg) (Engine, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		return e.gateAutoStart(msg.Snapshot)

	case StartMsg:
		return e.start()

	case tea.KeyMsg:
		if e.phase != phaseActive {
			return e, nil
		}
		return e.handleKey(msg)

	case settledMsg:
		if e.phase != phaseActive {
			return e, nil
		}
		// Scrolling moved every rectangle; re-resolve before drawing.
		step := e.steps[e.idx]
		e.target = Resolve(e.doc(), step.TargetID)
		e.hl.Settle(e.target)
		e.tooltipPos = e.placeCurrent()
		return e, nil

	case pulseMsg:
		if e.phase != phaseActive || e.hl.Handle() == nil {
			return e, nil
		}
		e.hl.Pulse()
		return e, pulseTick()

	case persistDoneMsg:
		return e.handlePersistDone(msg)
	}
	return e, nil
}

// handleKey implements the keyboard bindings that hold while active:
// Escape skips this page's tour, the arrow keys move between steps, and
// shift+s skips the tour on every page.
func (e Engine) handleKey(msg tea.KeyMsg) (Engine, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return e.skipPage()
	case "right":
		return e.next()
	case "left":
		return e.previous()
	case "S":
		return e.skipAll()
	}
	return e, nil
}

// gateAutoStart attempts start() once the profile data has finished
// loading and confirms the page is not already completed. It runs at
// most once per engine so a later refresh cannot flicker-start a
// dismissed tour.
func (e Engine) gateAutoStart(snap ProfileSnapshot) (Engine, tea.Cmd) {
	if !e.autoStart || e.autoAttempted || e.phase != phaseInert {
		return e, nil
	}
	if snap.Loading {
		return e, nil
	}
	e.autoAttempted = true
	if snap.Completed(e.page) {
		return e, nil
	}
	return e.start()
}

// start begins the tour at step zero. No-op if the page's record is
// already completed or there are no steps.
func (e Engine) start() (Engine, tea.Cmd) {
	if e.phase == phaseActive || len(e.steps) == 0 {
		return e, nil
	}
	snap := e.store.Snapshot()
	if snap.Completed(e.page) {
		return e, nil
	}
	e.phase = phaseActive
	e.idx = 0
	showed, cmd := e.showStep()
	return showed, tea.Batch(cmd, pulseTick())
}

// next advances one step, or completes the tour on the last step. A new
// step whose target cannot be resolved proceeds with a centered tooltip;
// advancement never blocks on a missing target.
func (e Engine) next() (Engine, tea.Cmd) {
	if e.idx+1 == len(e.steps) {
		return e.complete()
	}
	e.hl.Clear()
	e.idx++
	return e.showStep()
}

// previous mirrors next in reverse and is a no-op on the first step.
func (e Engine) previous() (Engine, tea.Cmd) {
	if e.idx == 0 {
		return e, nil
	}
	e.hl.Clear()
	e.idx--
	return e.showStep()
}

// showStep resolves the current step's target, highlights it and
// computes the tooltip position.
func (e Engine) showStep() (Engine, tea.Cmd) {
	step := e.steps[e.idx]
	e.target = Resolve(e.doc(), step.TargetID)

	var cmd tea.Cmd
	if e.target != nil {
		if needsScroll := e.hl.Highlight(e.target, e.vp); needsScroll {
			target := e.target.Bounds()
			cmd = tea.Batch(
				func() tea.Msg { return ScrollRequestMsg{Target: target} },
				tea.Tick(ScrollSettleDelay, func(time.Time) tea.Msg { return settledMsg{} }),
			)
		}
	} else {
		e.hl.Clear()
	}

	e.tooltipPos = e.placeCurrent()
	return e, cmd
}

func (e Engine) placeCurrent() Point {
	step := e.steps[e.idx]
	var target *Rect
	if e.target != nil {
		bounds := e.target.Bounds()
		target = &bounds
	}
	return ComputePosition(target, step.Position, step.Offset, e.footprint, e.vp)
}

// skipPage marks only the current page completed. The tour stays active
// and visually unchanged until the write confirms; on failure the user
// retries manually.
func (e Engine) skipPage() (Engine, tea.Cmd) {
	if e.phase != phaseActive || e.persisting {
		return e, nil
	}
	e.persisting = true
	return e, e.persistPageCmd(kindSkipPage)
}

// complete persists the current page like skipPage, but the
// acknowledgment distinguishes "every page done" from "this page done"
// using the refreshed snapshot.
func (e Engine) complete() (Engine, tea.Cmd) {
	if e.phase != phaseActive || e.persisting {
		return e, nil
	}
	e.persisting = true
	return e, e.persistPageCmd(kindComplete)
}

// skipAll marks every known page completed with one write per page. All
// writes are attempted even if some fail; partial failure is reported as
// failure and the tour stays active so the user can retry.
func (e Engine) skipAll() (Engine, tea.Cmd) {
	if e.phase != phaseActive || e.persisting {
		return e, nil
	}
	e.persisting = true
	return e, e.persistAllCmd()
}

// persistPageCmd writes the current page's completion flag and refreshes
// the profile. Both the write and the refresh must succeed before the
// tour deactivates.
func (e Engine) persistPageCmd(kind terminalKind) tea.Cmd {
	page, store := e.page, e.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := store.SetPageCompletion(ctx, page, true); err != nil {
			return persistDoneMsg{kind: kind, err: err}
		}
		snap, err := store.Refresh(ctx)
		if err != nil {
			return persistDoneMsg{kind: kind, err: err}
		}
		return persistDoneMsg{kind: kind, snapshot: snap}
	}
}

// persistAllCmd fans out one write per known page, waits for all of
// them, and refreshes once. Individual failures are collected per page
// rather than aborting the rest.
func (e Engine) persistAllCmd() tea.Cmd {
	store := e.store
	pages := Pages()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var g errgroup.Group
		errs := make([]error, len(pages))
		for i, p := range pages {
			g.Go(func() error {
				errs[i] = store.SetPageCompletion(ctx, p, true)
				return nil
			})
		}
		_ = g.Wait()

		failures := make(map[Page]error)
		for i, p := range pages {
			if errs[i] != nil {
				failures[p] = errs[i]
			}
		}
		if len(failures) > 0 {
			return persistDoneMsg{kind: kindSkipAll, failures: failures}
		}

		snap, err := store.Refresh(ctx)
		if err != nil {
			return persistDoneMsg{kind: kindSkipAll, err: err}
		}
		return persistDoneMsg{kind: kindSkipAll, snapshot: snap}
	}
}

// handlePersistDone resolves a terminal transition. On any failure the
// tour keeps its pre-write configuration — same step, still active — and
// surfaces one error toast. On success all artifacts come down and the
// acknowledgment goes out.
func (e Engine) handlePersistDone(msg persistDoneMsg) (Engine, tea.Cmd) {
	if !e.persisting {
		// Not our write. A replaced engine's in-flight result can still
		// arrive through the host's message loop.
		return e, nil
	}
	e.persisting = false
	if e.phase != phaseActive {
		// Torn down while the write was in flight; the write itself is
		// harmless (idempotent) and the artifacts are already gone.
		return e, nil
	}

	if msg.err != nil {
		return e, toastCmd(fmt.Sprintf("Couldn't save tour progress: %v", msg.err), true)
	}
	if len(msg.failures) > 0 {
		return e, toastCmd("Couldn't skip all tours: "+summarizeFailures(msg.failures), true)
	}

	e.hl.Clear()
	e.target = nil
	e.phase = phaseDone

	switch msg.kind {
	case kindSkipPage:
		return e, tea.Batch(
			finishedCmd(e.page, false, true),
			toastCmd("Tour skipped for this page.", false),
		)
	case kindSkipAll:
		return e, tea.Batch(
			finishedCmd(e.page, true, true),
			toastCmd("Tours skipped on all pages.", false),
		)
	default:
		if msg.snapshot.AllCompleted() {
			return e, tea.Batch(
				finishedCmd(e.page, true, false),
				toastCmd("You've finished the tour on every page. Nice work!", false),
			)
		}
		return e, tea.Batch(
			finishedCmd(e.page, false, false),
			toastCmd(fmt.Sprintf("%s tour complete.", titleCase(string(e.page))), false),
		)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func summarizeFailures(failures map[Page]error) string {
	names := make([]string, 0, len(failures))
	for p := range failures {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return strings.Join(names, ", ") + " failed; the tour stays open so you can retry."
}

func toastCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text, IsError: isErr} }
}

func finishedCmd(page Page, allPages, skipped bool) tea.Cmd {
	return func() tea.Msg {
		return FinishedMsg{Page: page, AllPages: allPages, Skipped: skipped}
	}
}

func pulseTick() tea.Cmd {
	return tea.Tick(PulseInterval, func(time.Time) tea.Msg { return pulseMsg{} })
}
