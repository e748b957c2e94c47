// Package app is the application loop: it owns the screen, the edit
// buffer, the keyboard reader, the paste engine, the command matcher, and
// the history store, and is the only component that switches mode. Control
// flow is a single-threaded read/dispatch/render loop, generalized from a
// line-oriented REPL read into this package's full-screen, badge-aware
// multi-line editor.
package app

import (
	"io"
	"strings"
	"time"

	"turnline/internal/applog"
	"turnline/internal/badge"
	"turnline/internal/clipboard"
	"turnline/internal/commandmatch"
	"turnline/internal/config"
	"turnline/internal/editbuffer"
	"turnline/internal/filepathdetect"
	"turnline/internal/history"
	"turnline/internal/keyboard"
	"turnline/internal/output"
	"turnline/internal/paste"
	"turnline/internal/registry"
	"turnline/internal/screen"
	"turnline/internal/theme"
	"turnline/internal/transcript"
)

// Mode is a purely-UI state affecting the status line and the meaning of
// some keys; it never restricts buffer mutation.
type Mode int

const (
	ModeInput Mode = iota
	ModePaste
	ModeHistory
	ModeSearch
	ModeMenu
)

// Exit codes.
const (
	ExitSubmit             = 0
	ExitUserCancel         = 130
	ExitTerminalUnavailable = 1
)

// pollTimeout is the keyboard read's poll window; the main step loops
// around it when no event arrives.
const pollTimeout = 100 * time.Millisecond

// resizeDebounce coalesces a burst of SIGWINCH deliveries before reflowing.
const resizeDebounce = 100 * time.Millisecond

// pasteLineThreshold (a count of newlines) and pasteCharThreshold (a count
// of bytes) are the paste-marker decision constants; they are explicit
// literals, and config.CompressThreshold is not consulted for this decision.
const (
	pasteLineThreshold = 5
	pasteCharThreshold = 100
)

// App wires every component together.
type App struct {
	cfg      config.Config
	log      *applog.Logger
	screen   *screen.Screen
	theme    *theme.Theme
	kb       *keyboard.Reader
	pasteEng *paste.Engine
	buf      *editbuffer.Buffer
	matcher  *commandmatch.Matcher
	hist     *history.Store
	reg      *registry.Registry
	clip     *clipboard.Manager
	fmt      *output.Formatter
	tr       *transcript.Log

	mode        Mode
	searchQuery string
	searchIndex int

	header      string
	promptLabel string
	options     []string
	menuIndex   int
	skipWelcome bool

	stdout io.Writer
	ui     io.Writer

	win       *screen.Window
	statusWin *screen.Window
}

// WithHeader sets the banner text shown above the input box.
func (a *App) WithHeader(text string) *App { a.header = text; return a }

// WithPrompt sets the input box's label.
func (a *App) WithPrompt(text string) *App { a.promptLabel = text; return a }

// WithOptions turns the input box into a selection menu over opts; an
// empty slice (the default) keeps free-text entry.
func (a *App) WithOptions(opts []string) *App { a.options = opts; return a }

// WithSkipWelcome suppresses the header banner on the first frame.
func (a *App) WithSkipWelcome(skip bool) *App { a.skipWelcome = skip; return a }

// New constructs an App from its resolved dependencies. Callers in
// cmd/turnline build the concrete screen/keyboard/history/transcript
// first so construction failures (e.g. TerminalUnavailable) can be turned
// into the right exit code before the alt-screen is entered. reg is the
// command registry (see registry.New / registry.Load for overrides).
func New(cfg config.Config, log *applog.Logger, sc *screen.Screen, kb *keyboard.Reader,
	hist *history.Store, tr *transcript.Log, reg *registry.Registry, stdout, ui io.Writer) *App {

	a := &App{
		cfg:      cfg,
		log:      log,
		screen:   sc,
		theme:    theme.New(cfg.ANSIColors),
		kb:       kb,
		pasteEng: paste.NewEngine(kb),
		buf:      editbuffer.New(),
		matcher:  commandmatch.New(reg),
		hist:     hist,
		reg:      reg,
		clip:     clipboard.New(),
		fmt:      output.NewFormatter(reg),
		tr:       tr,
		stdout:   stdout,
		ui:       ui,
	}
	w, h := sc.Size()
	a.win = screen.NewWindow(sc, 0, 0, w, h-1)
	a.statusWin = screen.NewWindow(sc, 0, h-1, w, 1)
	return a
}

// Run drives the event loop to completion and returns the process exit
// code. It is the only method that performs real terminal I/O; every
// state transition it makes goes through dispatchKey/dispatchPaste, which
// are exercised directly by tests without a real terminal.
func (a *App) Run() int {
	if len(a.options) > 0 {
		a.mode = ModeMenu
	}

	a.screen.Start()
	defer a.screen.Stop()
	paste.Enable(stringWriter{a.ui})
	defer paste.Disable(stringWriter{a.ui})

	a.screen.FullRedraw()
	a.render()

	for {
		if a.screen.ResizePending() {
			a.screen.DebounceResize(resizeDebounce)
			a.reflow()
			a.screen.FullRedraw()
		}

		// read(timeout ~ 100ms) one event, which may transparently yield a
		// whole paste blob.
		payload, isPaste, ev, gotEvent, err := a.pasteEng.Read(pollTimeout)
		if err != nil {
			a.log.ErrorErr("keyboard read failed, treating as no-event", err)
			continue
		}
		if !gotEvent {
			continue
		}

		if a.mode == ModeMenu {
			outcome := a.dispatchMenuKey(ev)
			switch outcome {
			case outcomeCancel:
				a.renderGoodbye()
				return ExitUserCancel
			case outcomeSubmit:
				a.submitMenuSelection()
				return ExitSubmit
			}
			a.render()
			continue
		}

		if isPaste {
			a.dispatchPaste(payload)
			a.render()
			continue
		}

		outcome := a.dispatchKey(ev)
		switch outcome {
		case outcomeCancel:
			a.renderGoodbye()
			return ExitUserCancel
		case outcomeSubmit:
			a.submit()
			return ExitSubmit
		}
		a.render()
	}
}

// dispatchMenuKey implements the selection-menu key table used when
// --options turns the input box into a list: Up/Down move the selection
// (clamped, no wrap — the selected index always stays in [0, N)), Enter
// submits it, CtrlC cancels.
func (a *App) dispatchMenuKey(ev keyboard.Event) stepOutcome {
	switch ev.Symbol {
	case keyboard.SymCtrlC:
		return outcomeCancel
	case keyboard.SymUp:
		if a.menuIndex > 0 {
			a.menuIndex--
		}
	case keyboard.SymDown:
		if a.menuIndex < len(a.options)-1 {
			a.menuIndex++
		}
	case keyboard.SymEnter:
		return outcomeSubmit
	}
	return outcomeContinue
}

// submitMenuSelection writes the selected option through the same
// formatting pipeline as a free-text submission.
func (a *App) submitMenuSelection() {
	if a.menuIndex < 0 || a.menuIndex >= len(a.options) {
		return
	}
	selected := a.options[a.menuIndex]
	a.hist.Add(selected)
	if err := a.fmt.Write(a.stdout, selected); err != nil {
		a.log.ErrorErr("write to stdout failed", err)
	}
	if err := a.tr.Append(selected, false); err != nil {
		a.log.ErrorErr("transcript append failed", err)
	}
}

type stepOutcome int

const (
	outcomeContinue stepOutcome = iota
	outcomeSubmit
	outcomeCancel
)

// dispatchPaste classifies a pasted blob by size: large pastes are wrapped
// as a paste marker, small single-line paths are wrapped as a file marker,
// and everything else is inserted as plain text.
func (a *App) dispatchPaste(payload string) {
	a.mode = ModePaste
	defer func() { a.mode = ModeInput }()

	lines := countLines(payload)
	if lines-1 >= pasteLineThreshold || len(payload) >= pasteCharThreshold {
		marker, err := badge.CreatePasteMarker(payload)
		if err != nil {
			a.buf.InsertFormattedPaste(payload)
			return
		}
		a.buf.InsertText(marker)
		return
	}
	if lines == 1 && filepathdetect.Looks(payload) {
		marker, err := badge.CreateFileMarker(payload)
		if err == nil {
			a.buf.InsertText(marker)
			return
		}
	}
	a.buf.InsertFormattedPaste(payload)
}

func countLines(s string) int {
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

// dispatchKey implements the key-dispatch table for non-printable keys.
func (a *App) dispatchKey(ev keyboard.Event) stepOutcome {
	if ev.Symbol == keyboard.SymNone && ev.Rune != 0 {
		return a.dispatchRune(ev.Rune)
	}

	switch ev.Symbol {
	case keyboard.SymCtrlC:
		return outcomeCancel
	case keyboard.SymCtrlD:
		return outcomeSubmit
	case keyboard.SymCtrlU:
		a.buf.ClearLine()
	case keyboard.SymCtrlK:
		a.buf.ClearToEnd()
	case keyboard.SymCtrlR:
		a.enterSearch()
	case keyboard.SymCtrlV:
		a.dispatchPaste(a.clip.Read())
	case keyboard.SymEnter:
		if a.mode == ModeSearch {
			a.exitSearch(true)
		} else if a.matcher.Active() {
			a.insertCompletion(a.matcher.Complete())
		} else {
			a.buf.Newline()
		}
	case keyboard.SymTab:
		if a.matcher.Active() {
			a.insertCompletion(a.matcher.TabComplete())
		}
	case keyboard.SymEscape:
		if a.mode == ModeSearch {
			a.exitSearch(false)
		} else {
			a.matcher.Cancel()
		}
	case keyboard.SymUp:
		a.handleUp()
	case keyboard.SymDown:
		a.handleDown()
	case keyboard.SymLeft:
		a.buf.MoveLeft()
	case keyboard.SymRight:
		a.buf.MoveRight()
	case keyboard.SymCtrlLeft:
		a.buf.WordLeft()
	case keyboard.SymCtrlRight:
		a.buf.WordRight()
	case keyboard.SymHome:
		a.buf.Home()
	case keyboard.SymEnd:
		a.buf.End()
	case keyboard.SymBackspace:
		a.buf.Backspace()
	case keyboard.SymDelete:
		a.buf.Delete()
	}
	return outcomeContinue
}

func (a *App) dispatchRune(r rune) stepOutcome {
	if a.mode == ModeSearch {
		a.searchQuery += string(r)
		if entry, ok := a.hist.SearchBackward(a.searchQuery, a.searchIndex); ok {
			a.searchIndex = a.hist.Position()
			a.buf.Clear()
			a.buf.InsertText(entry)
		}
		return outcomeContinue
	}

	row, _ := a.buf.Cursor()
	lineEmpty := a.buf.Line(row) == ""
	if lineEmpty && r == '/' {
		a.matcher.Start('/')
	}
	a.buf.InsertChar(r)
	if a.matcher.Active() {
		row, _ = a.buf.Cursor()
		a.matcher.Update(a.buf.Line(row))
	}
	if a.trailingTripleBracketSubmit() {
		return outcomeSubmit
	}
	return outcomeContinue
}

// trailingTripleBracketSubmit implements the ">>>" quick-submit shortcut:
// a trailing ">>>" on any line removes the three characters and submits.
func (a *App) trailingTripleBracketSubmit() bool {
	row, _ := a.buf.Cursor()
	line := a.buf.Line(row)
	if len(line) < 3 || line[len(line)-3:] != ">>>" {
		return false
	}
	for i := 0; i < 3; i++ {
		a.buf.Backspace()
	}
	return true
}

func (a *App) insertCompletion(text string) {
	a.buf.ClearLine()
	a.buf.InsertText(text)
}

func (a *App) handleUp() {
	if a.matcher.Active() {
		a.matcher.MoveUp()
		return
	}
	row, _ := a.buf.Cursor()
	if row == 0 {
		a.mode = ModeHistory
		entry := a.hist.GoBack(a.buf.Text())
		a.buf.Clear()
		a.buf.InsertText(entry)
		return
	}
	a.buf.MoveUp()
}

func (a *App) handleDown() {
	if a.matcher.Active() {
		a.matcher.MoveDown()
		return
	}
	row, _ := a.buf.Cursor()
	if a.mode == ModeHistory && row == a.buf.LineCount()-1 {
		entry := a.hist.GoForward()
		a.buf.Clear()
		a.buf.InsertText(entry)
		if a.hist.AtEnd() {
			a.mode = ModeInput
		}
		return
	}
	a.buf.MoveDown()
}

func (a *App) enterSearch() {
	if a.mode != ModeSearch {
		a.mode = ModeSearch
		a.searchQuery = ""
		a.searchIndex = a.hist.Position() - 1
		return
	}
	// A second CtrlR advances through matches.
	if entry, ok := a.hist.SearchBackward(a.searchQuery, a.searchIndex-1); ok {
		a.searchIndex = a.hist.Position()
		a.buf.Clear()
		a.buf.InsertText(entry)
	}
}

func (a *App) exitSearch(accept bool) {
	a.mode = ModeInput
	if !accept {
		a.searchQuery = ""
	}
}

// submit trims the buffer text, no-ops if empty, appends to history,
// formats, writes to stdout with a single trailing newline, and records a
// transcript row.
func (a *App) submit() {
	text := a.buf.Text()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	a.hist.Add(trimmed)
	hadMarkers := len(badge.FindMarkers(trimmed)) > 0
	if err := a.fmt.Write(a.stdout, trimmed); err != nil {
		a.log.ErrorErr("write to stdout failed", err)
	}
	if err := a.tr.Append(trimmed, hadMarkers); err != nil {
		a.log.ErrorErr("transcript append failed", err)
	}
}

func (a *App) reflow() {
	w, h := a.screen.Size()
	a.win.Resize(0, 0, w, h-1)
	a.statusWin.Resize(0, h-1, w, 1)
}

func (a *App) renderGoodbye() {
	output.WriteUILine(a.ui, "")
	output.WriteUILine(a.ui, a.theme.StyledText(theme.RoleDim, "goodbye"))
}

// render repaints the input area and status line. Best-effort: terminal
// I/O errors during render are swallowed, matching every other
// best-effort path in this package.
func (a *App) render() {
	a.win.Clear()
	row := 0
	if a.header != "" && !a.skipWelcome {
		a.win.WriteString(0, row, a.header, a.theme.GetAttr(theme.RoleTitle))
		row++
	}

	if a.mode == ModeMenu {
		a.renderMenu(row)
	} else {
		a.renderInput(row)
	}

	a.statusWin.Clear()
	a.statusWin.WriteString(0, 0, a.statusLine(), a.theme.GetAttr(theme.RoleDim))
	a.statusWin.Refresh()

	a.screen.Render()
}

func (a *App) renderInput(startRow int) {
	if a.promptLabel != "" {
		a.win.WriteString(0, startRow, a.promptLabel, a.theme.GetAttr(theme.RoleSymbol))
		startRow++
	}
	lines := a.buf.GetVisibleLines(a.windowHeight() - startRow)
	for i, line := range lines {
		a.win.WriteString(0, startRow+i, badge.RenderForDisplay(line), a.theme.GetAttr(theme.RoleText))
	}
	a.win.Refresh()

	if a.matcher.Active() {
		for i, line := range a.matcher.DropdownLines(60) {
			a.win.WriteString(0, startRow+len(lines)+i, line, a.theme.GetAttr(theme.RoleAccent))
		}
		a.win.Refresh()
	}
}

func (a *App) renderMenu(startRow int) {
	for i, opt := range a.options {
		role := theme.RoleText
		prefix := "  "
		if i == a.menuIndex {
			role = theme.RoleAccent
			prefix = "> "
		}
		a.win.WriteString(0, startRow+i, prefix+opt, a.theme.GetAttr(role))
	}
	a.win.Refresh()
}

func (a *App) windowHeight() int {
	_, _, _, h := a.win.Bounds()
	return h
}

func (a *App) statusLine() string {
	switch a.mode {
	case ModeHistory:
		return "[ HISTORY ]"
	case ModeSearch:
		return "(reverse-i-search) " + a.searchQuery
	case ModePaste:
		return "[ PASTE ]"
	case ModeMenu:
		return "[ MENU ]"
	default:
		return "[ INPUT ]"
	}
}

// stringWriter adapts an io.Writer to paste's WriteString-based writer
// interface without requiring every caller to pass an *os.File.
type stringWriter struct{ io.Writer }

func (s stringWriter) WriteString(str string) (int, error) {
	return io.WriteString(s.Writer, str)
}
