package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/bookfinder/pkg/app/components"
	"github.com/kerbaras/bookfinder/pkg/app/state"
	"github.com/kerbaras/bookfinder/pkg/app/styles"
	"github.com/kerbaras/bookfinder/pkg/covers"
	"github.com/kerbaras/bookfinder/pkg/data"
	"github.com/kerbaras/bookfinder/pkg/logger"
	"github.com/kerbaras/bookfinder/pkg/sources"
)

// CoverLoader fetches a cover and renders it into a cols x rows block.
type CoverLoader interface {
	Load(ctx context.Context, url string, cols, rows int) (string, error)
}

type focusArea int

const (
	focusInput focusArea = iota
	focusGrid
)

// Options wires the screen to its collaborators. A nil Loader disables covers.
type Options struct {
	Context  context.Context
	Source   sources.Source
	Loader   CoverLoader
	Resolver covers.Resolver
}

type coverKey struct {
	book  string
	class covers.Class
	cols  int
	rows  int
}

// RootScreen is the single stateful screen: search input, result grid and
// the detail overlay. All controller state lives in state and changes only
// through state.Reduce.
type RootScreen struct {
	ctx      context.Context
	source   sources.Source
	loader   CoverLoader
	resolver covers.Resolver

	state   state.State
	input   textinput.Model
	grid    *components.BookGrid
	overlay *components.Overlay
	covers  map[coverKey]*components.Cover

	cancelSearch context.CancelFunc

	keys  keyMap
	help  help.Model
	focus focusArea

	width  int
	height int
}

func NewRootScreen(opts Options) *RootScreen {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Search for books..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	grid := components.NewBookGrid()
	overlay := components.NewOverlay()
	if opts.Loader == nil {
		grid.CoverRows = 0
		overlay.CoverRows = 0
	}

	return &RootScreen{
		ctx:      ctx,
		source:   opts.Source,
		loader:   opts.Loader,
		resolver: opts.Resolver,
		input:    ti,
		grid:     grid,
		overlay:  overlay,
		covers:   map[coverKey]*components.Cover{},
		keys:     defaultKeyMap(),
		help:     help.New(),
		focus:    focusInput,
	}
}

// State returns a copy of the controller state.
func (r *RootScreen) State() state.State {
	return r.state
}

func (r *RootScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return r, r.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if key.Matches(msg, r.keys.ForceQuit) {
			return r, r.quit()
		}
		if r.state.Selected != nil {
			if key.Matches(msg, r.keys.Close) {
				return r, r.dispatch(state.OverlayClosed{})
			}
			return r, nil
		}
		if r.focus == focusGrid {
			return r, r.updateGrid(msg)
		}
		return r, r.updateInput(msg)

	case tea.MouseMsg:
		return r, r.updateMouse(msg)

	case searchCompletedMsg:
		return r, r.completeSearch(msg)

	case coverLoadedMsg:
		return r, r.completeCover(msg)
	}

	var cmd tea.Cmd
	if r.focus == focusInput {
		r.input, cmd = r.input.Update(msg)
	}
	return r, cmd
}

func (r *RootScreen) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Submit):
		return r.dispatch(state.Submitted{})
	case key.Matches(msg, r.keys.Browse) && len(r.state.Results) > 0:
		r.focusGrid()
		return nil
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	if r.input.Value() != r.state.Query {
		return tea.Batch(cmd, r.dispatch(state.QueryChanged{Text: r.input.Value()}))
	}
	return cmd
}

func (r *RootScreen) updateGrid(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Quit):
		return r.quit()
	case key.Matches(msg, r.keys.Edit):
		return r.focusInput()
	case key.Matches(msg, r.keys.Open):
		if book := r.grid.Selected(); book != nil {
			return r.dispatch(state.CardClicked{Book: *book})
		}
	case key.Matches(msg, r.keys.Up):
		r.grid.Up()
	case key.Matches(msg, r.keys.Down):
		r.grid.Down()
	case key.Matches(msg, r.keys.Left):
		r.grid.Prev()
	case key.Matches(msg, r.keys.Right):
		r.grid.Next()
	}
	return nil
}

func (r *RootScreen) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if r.state.Selected != nil {
		if !r.overlay.Contains(msg.X, msg.Y, r.state.Selected, r.renderCover(covers.Detail)) {
			return r.dispatch(state.OverlayClosed{})
		}
		return nil
	}

	index, ok := r.grid.CardAt(msg.X, msg.Y-r.gridTop())
	if !ok {
		if msg.Y < r.gridTop() {
			return r.focusInput()
		}
		return nil
	}
	r.grid.SelectedIndex = index
	r.focusGrid()
	return r.dispatch(state.CardClicked{Book: r.grid.Items[index]})
}

// dispatch runs ev through the reducer and turns the resulting effects into commands.
func (r *RootScreen) dispatch(ev state.Event) tea.Cmd {
	prev := r.state.Selected
	next, req := state.Reduce(r.state, ev)
	r.state = next

	var cmds []tea.Cmd
	if req != nil {
		cmds = append(cmds, r.search(*req))
	}
	if next.Selected != nil && next.Selected != prev {
		cmds = append(cmds, r.ensureCover(*next.Selected, covers.Detail, r.overlay.CoverCols, r.overlay.CoverRows))
	}
	return tea.Batch(cmds...)
}

type searchCompletedMsg struct {
	seq   uint64
	query string
	books []data.Book
	err   error
}

// search cancels whatever search is still in flight and starts req.
func (r *RootScreen) search(req state.SearchRequest) tea.Cmd {
	if r.cancelSearch != nil {
		r.cancelSearch()
	}
	ctx, cancel := context.WithCancel(logger.ContextWithSearch(r.ctx, req.Seq))
	r.cancelSearch = cancel

	source := r.source
	return func() tea.Msg {
		if source == nil {
			return searchCompletedMsg{seq: req.Seq, query: req.Query, err: errors.New("no search source configured")}
		}
		defer logger.Track(ctx, "search")()
		books, err := source.Search(ctx, req.Query)
		return searchCompletedMsg{seq: req.Seq, query: req.Query, books: books, err: err}
	}
}

func (r *RootScreen) completeSearch(msg searchCompletedMsg) tea.Cmd {
	ctx := logger.ContextWithSearch(r.ctx, msg.seq)
	stale := r.state.IsStale(msg.seq)

	switch {
	case stale:
		logger.For(ctx).WithField("query", msg.query).Debug("dropping superseded search")
	case msg.err != nil:
		logger.For(ctx).WithError(msg.err).WithField("query", msg.query).Error("search failed")
	default:
		logger.For(ctx).WithField("query", msg.query).Debugf("search returned %d books", len(msg.books))
	}

	cmd := r.dispatch(state.SearchCompleted{Seq: msg.seq, Books: msg.books, Err: msg.err})
	if stale || msg.err != nil {
		return cmd
	}

	r.grid.SetItems(r.state.Results)
	r.resetCovers()
	if len(r.state.Results) > 0 && r.focus == focusInput {
		r.focusGrid()
	}
	return tea.Batch(cmd, r.loadGridCovers())
}

type coverLoadedMsg struct {
	key coverKey
	url string
	art string
	err error
}

// ensureCover creates the cover slot for book if needed and starts its load.
func (r *RootScreen) ensureCover(book data.Book, class covers.Class, cols, rows int) tea.Cmd {
	if r.loader == nil || rows == 0 {
		return nil
	}
	k := coverKey{book: book.Key, class: class, cols: cols, rows: rows}
	if _, ok := r.covers[k]; ok {
		return nil
	}
	slot := components.NewCover(r.resolver, book, class)
	r.covers[k] = slot
	return r.loadCover(k, slot.URL)
}

func (r *RootScreen) loadCover(k coverKey, url string) tea.Cmd {
	loader := r.loader
	ctx := r.ctx
	return func() tea.Msg {
		art, err := loader.Load(ctx, url, k.cols, k.rows)
		return coverLoadedMsg{key: k, url: url, art: art, err: err}
	}
}

func (r *RootScreen) completeCover(msg coverLoadedMsg) tea.Cmd {
	slot, ok := r.covers[msg.key]
	if !ok {
		return nil
	}
	if msg.err == nil {
		slot.Loaded(msg.url, msg.art)
		return nil
	}

	entry := logger.For(r.ctx).WithError(msg.err).WithField("url", msg.url).WithField("class", msg.key.class.String())
	next, retry := slot.Failed(msg.url)
	if !retry {
		entry.Debug("cover unavailable")
		return nil
	}
	entry.Debug("cover failed, using placeholder")
	return r.loadCover(msg.key, next)
}

func (r *RootScreen) loadGridCovers() tea.Cmd {
	var cmds []tea.Cmd
	for _, book := range r.state.Results {
		cmds = append(cmds, r.ensureCover(book, covers.Grid, r.grid.CoverCols, r.grid.CoverRows))
	}
	return tea.Batch(cmds...)
}

// resetCovers drops grid slots; the open overlay keeps its cover.
func (r *RootScreen) resetCovers() {
	for k := range r.covers {
		if k.class == covers.Grid {
			delete(r.covers, k)
		}
	}
}

// Cover returns the slot showing book at class, if one exists.
func (r *RootScreen) Cover(book data.Book, class covers.Class) *components.Cover {
	for k, slot := range r.covers {
		if k.book == book.Key && k.class == class {
			return slot
		}
	}
	return nil
}

func (r *RootScreen) renderCover(class covers.Class) components.CoverFunc {
	return func(book data.Book, cols, rows int) string {
		slot := r.covers[coverKey{book: book.Key, class: class, cols: cols, rows: rows}]
		return slot.View(cols, rows)
	}
}

func (r *RootScreen) resize(width, height int) tea.Cmd {
	r.width = width
	r.height = height
	r.help.Width = width
	r.input.Width = max(min(width-8, 60), 10)
	r.grid.Width = width
	r.grid.Height = max(height-r.gridTop()-helpHeight, 1)

	prevCols, prevRows := r.overlay.CoverCols, r.overlay.CoverRows
	r.overlay.Resize(width, height-1)
	if r.state.Selected != nil && (prevCols != r.overlay.CoverCols || prevRows != r.overlay.CoverRows) {
		return r.ensureCover(*r.state.Selected, covers.Detail, r.overlay.CoverCols, r.overlay.CoverRows)
	}
	return nil
}

func (r *RootScreen) focusGrid() {
	r.focus = focusGrid
	r.grid.Focused = true
	r.input.Blur()
}

func (r *RootScreen) focusInput() tea.Cmd {
	r.focus = focusInput
	r.grid.Focused = false
	return r.input.Focus()
}

func (r *RootScreen) quit() tea.Cmd {
	if r.cancelSearch != nil {
		r.cancelSearch()
	}
	return tea.Quit
}

const helpHeight = 2

func (r *RootScreen) headerView() string {
	header := styles.TitleStyle.Render("📚 Book Finder")

	inputStyle := styles.InputStyle
	if r.focus == focusInput && r.state.Selected == nil {
		inputStyle = styles.FocusedInputStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, inputStyle.Render(r.input.View()), "")
}

// gridTop is the screen row where the first card starts.
func (r *RootScreen) gridTop() int {
	return lipgloss.Height(r.headerView())
}

func (r *RootScreen) View() string {
	if r.width == 0 {
		return "Loading..."
	}

	if r.state.Selected != nil {
		overlay := r.overlay.View(r.state.Selected, r.renderCover(covers.Detail))
		return fmt.Sprintf("%s\n%s", overlay, r.help.ShortHelpView(r.keys.overlayHelp()))
	}

	bindings := r.keys.inputHelp()
	if r.focus == focusGrid {
		bindings = r.keys.gridHelp()
	}

	results := r.grid.View(r.renderCover(covers.Grid))
	return fmt.Sprintf("%s\n%s\n%s",
		r.headerView(),
		results,
		styles.HelpStyle.Render(r.help.ShortHelpView(bindings)),
	)
}
