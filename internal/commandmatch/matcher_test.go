package commandmatch

import "testing"

type fakeSource struct {
	cmds []Descriptor
}

func (f fakeSource) Commands() []Descriptor { return f.cmds }

func testSource() fakeSource {
	return fakeSource{cmds: []Descriptor{
		{Name: "/plan", DisplayLabel: "Plan a feature", AgentFile: "plan.agent.md"},
		{Name: "/build", DisplayLabel: "Build it", AgentFile: "build.agent.md"},
		{Name: "/build-fast", DisplayLabel: "Build without review", AgentFile: "build-fast.agent.md"},
		{Name: "/review", DisplayLabel: "Review a diff", AgentFile: "review.agent.md"},
		{Name: "/archive", DisplayLabel: "Archive specs", AgentFile: ""},
	}}
}

func TestStartOnlyOnSlash(t *testing.T) {
	m := New(testSource())
	if m.Start('a') {
		t.Error("Start should only engage on '/'")
	}
	if !m.Start('/') {
		t.Error("Start should engage on '/'")
	}
	if !m.Active() {
		t.Error("matcher should be active after Start")
	}
	if len(m.Matches()) != 5 {
		t.Errorf("expected all 5 commands listed, got %d", len(m.Matches()))
	}
}

func TestUpdateStartsWithBeforeContains(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	matches := m.Update("/bui")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches for /bui, got %d: %v", len(matches), matches)
	}
	if matches[0].Name != "/build" || matches[1].Name != "/build-fast" {
		t.Errorf("expected /build then /build-fast in registration order, got %v", matches)
	}
}

func TestUpdateContainsTierFollowsStartsWithTier(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	// "r" starts /review and appears inside /archive, so the starts-with
	// match comes first and the contains match follows it.
	matches := m.Update("/r")
	if len(matches) != 2 || matches[0].Name != "/review" || matches[1].Name != "/archive" {
		t.Errorf("expected /review then /archive for /r, got %v", matches)
	}
	// "chive" only appears inside /archive (contains, not starts-with).
	matches = m.Update("/chive")
	if len(matches) != 1 || matches[0].Name != "/archive" {
		t.Errorf("expected only /archive to match /chive via contains tier, got %v", matches)
	}
}

func TestUpdateEmptyQueryListsAll(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	matches := m.Update("/")
	if len(matches) != 5 {
		t.Errorf("empty query after '/' should list all commands, got %d", len(matches))
	}
}

func TestUpdateNonSlashCancels(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	m.Update("hello")
	if m.Active() {
		t.Error("Update with a non-slash prefix should cancel command mode")
	}
}

func TestMoveUpDownNoWrap(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	m.Update("/b")
	if m.MoveUp() != 0 {
		t.Error("MoveUp at index 0 should not wrap")
	}
	last := len(m.Matches()) - 1
	for i := 0; i < 10; i++ {
		m.MoveDown()
	}
	if m.SelectedIndex() != last {
		t.Errorf("MoveDown should clamp at last index %d, got %d", last, m.SelectedIndex())
	}
}

func TestTabCompleteSingleMatchAddsSpaceAndExits(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	m.Update("/pla")
	result := m.TabComplete()
	if result != "/plan " {
		t.Errorf("expected '/plan ' got %q", result)
	}
	if m.Active() {
		t.Error("TabComplete with a single match should exit command mode")
	}
}

func TestTabCompleteMultipleMatchesCycles(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	m.Update("/bui")
	first := m.TabComplete()
	second := m.TabComplete()
	if first == second {
		t.Error("TabComplete with multiple matches should cycle to a different match")
	}
	if !m.Active() {
		t.Error("TabComplete with multiple matches should keep command mode active")
	}
}

func TestCompleteReturnsSelectedAndCancels(t *testing.T) {
	m := New(testSource())
	m.Start('/')
	m.Update("/pla")
	result := m.Complete()
	if result != "/plan" {
		t.Errorf("expected /plan, got %q", result)
	}
	if m.Active() {
		t.Error("Complete should cancel command mode")
	}
}

func TestPrependAgentInstructionCompleteCommand(t *testing.T) {
	src := testSource()
	out := PrependAgentInstruction(src, "/build do the thing")
	want := "Follow the prompt '.github/agents/build.agent.md'\n\n/build do the thing"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPrependAgentInstructionLongestMatchWins(t *testing.T) {
	src := testSource()
	out := PrependAgentInstruction(src, "/build-fast go")
	want := "Follow the prompt '.github/agents/build-fast.agent.md'\n\n/build-fast go"
	if out != want {
		t.Errorf("/build-fast should not be shadowed by /build, got %q", out)
	}
}

func TestPrependAgentInstructionIncompleteCommandIsNotMatched(t *testing.T) {
	src := testSource()
	in := "/buildx is not a command"
	if out := PrependAgentInstruction(src, in); out != in {
		t.Errorf("incomplete command match should leave content unchanged, got %q", out)
	}
}

func TestPrependAgentInstructionNoAgentFileLeavesUnchanged(t *testing.T) {
	src := testSource()
	in := "/archive old specs"
	if out := PrependAgentInstruction(src, in); out != in {
		t.Errorf("command with no agent file should leave content unchanged, got %q", out)
	}
}

func TestIsValidSlashCommand(t *testing.T) {
	src := testSource()
	if !IsValidSlashCommand(src, "/plan   now") {
		t.Error("/plan with trailing text should be valid")
	}
	if IsValidSlashCommand(src, "/plannotreal") {
		t.Error("/plannotreal should not match /plan")
	}
	if IsValidSlashCommand(src, "hello") {
		t.Error("plain text should not be a valid slash command")
	}
}
