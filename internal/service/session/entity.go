package session

import (
	"sort"
	"strings"

	"github.com/mostafamoumen/contactchat/internal/core"
)

// EntityMemory layers a name → phone index over the transcript buffer. The
// index is rendered into every model call, so a contact stays recallable
// even after its turn has scrolled out of the rendered window.
type EntityMemory struct {
	buffer   Buffer
	entities map[string]string
}

func NewEntityMemory(window Window) *EntityMemory {
	return &EntityMemory{
		buffer:   Buffer{window: window},
		entities: make(map[string]string),
	}
}

func (m *EntityMemory) AppendTurn(role, content string) {
	m.buffer.AppendTurn(role, content)
}

// RecordEntity keeps the latest known phone for each name; later information
// supersedes earlier.
func (m *EntityMemory) RecordEntity(name, phoneNumber string) {
	if name == "" || phoneNumber == "" {
		return
	}
	m.entities[name] = phoneNumber
}

func (m *EntityMemory) Render() []core.Turn {
	turns := make([]core.Turn, 0, len(m.buffer.transcript)+1)
	if block := m.renderEntities(); block != "" {
		turns = append(turns, core.Turn{Role: core.RoleSystem, Content: block})
	}
	return append(turns, windowTurns(m.buffer.transcript, m.buffer.window)...)
}

func (m *EntityMemory) Snapshot() ([]core.Turn, map[string]string) {
	transcript, _ := m.buffer.Snapshot()
	entities := make(map[string]string, len(m.entities))
	for name, phone := range m.entities {
		entities[name] = phone
	}
	return transcript, entities
}

func (m *EntityMemory) renderEntities() string {
	if len(m.entities) == 0 {
		return ""
	}

	names := make([]string, 0, len(m.entities))
	for name := range m.entities {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Known contacts:\n")
	for _, name := range names {
		sb.WriteString("- " + name + ": " + m.entities[name] + "\n")
	}
	return sb.String()
}
