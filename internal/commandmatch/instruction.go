package commandmatch

import (
	"sort"
	"strings"
)

// PrependAgentInstruction inspects content for a leading, complete slash
// command (longest name first, so "/build-fast" isn't shadowed by "/build")
// and, if found, prepends an instruction telling the downstream agent which
// prompt file to follow. A command is "complete" when it is followed by a
// space, tab, newline, or end of string — "/buildx" does not match "/build".
func PrependAgentInstruction(source Source, content string) string {
	trimmed := strings.TrimSpace(content)
	cmds := append([]Descriptor(nil), source.Commands()...)
	sort.SliceStable(cmds, func(i, j int) bool { return len(cmds[i].Name) > len(cmds[j].Name) })

	for _, d := range cmds {
		if !strings.HasPrefix(trimmed, d.Name) {
			continue
		}
		rest := trimmed[len(d.Name):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\n' && rest[0] != '\t' {
			continue
		}
		if d.AgentFile == "" {
			continue
		}
		promptPath := ".github/agents/" + d.AgentFile
		return "Follow the prompt '" + promptPath + "'\n\n" + content
	}
	return content
}

// IsValidSlashCommand reports whether text begins with a complete,
// registered slash command.
func IsValidSlashCommand(source Source, text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, d := range source.Commands() {
		if !strings.HasPrefix(trimmed, d.Name) {
			continue
		}
		rest := trimmed[len(d.Name):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\n' || rest[0] == '\t' {
			return true
		}
	}
	return false
}
