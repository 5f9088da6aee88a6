// Package notes implements the interactive vault browser with live search.
package notes

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	indexsvc "github.com/quillnotes/quill/internal/services/index"
	"github.com/quillnotes/quill/internal/state"
)

type resultsMsg struct {
	matches []indexsvc.Match
	err     error
}

type rebuildDoneMsg struct {
	err error
}

type editorFinishedMsg struct {
	err error
}

// Model drives the notes browser: a search input on top, the ranked result
// list below, and an optional rendered preview beside it.
type Model struct {
	svc    *indexsvc.Service
	vault  string
	editor string

	input   textinput.Model
	list    list.Model
	preview viewport.Model
	keys    keyMap

	showPreview bool
	status      string
	width       int
	height      int
}

func NewModel(s *state.State) Model {
	input := textinput.New()
	input.Placeholder = "Search notes..."
	input.Prompt = "❯ "
	input.Focus()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Notes"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim"
	}

	return Model{
		svc:    s.Index,
		vault:  s.Vault,
		editor: editor,
		input:  input,
		list:   l,
		keys:   newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(""))
}

func (m Model) searchCmd(query string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		var (
			matches []indexsvc.Match
			err     error
		)
		if query == "" {
			matches, err = svc.Notes()
		} else {
			matches, err = svc.Search(query, 0)
		}
		return resultsMsg{matches: matches, err: err}
	}
}

func (m Model) rebuildCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return rebuildDoneMsg{err: svc.Build()}
	}
}

func (m Model) openEditorCmd(path string) tea.Cmd {
	cmd := exec.Command(m.editor, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m *Model) selectedPath() (string, bool) {
	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		return "", false
	}
	return filepath.Join(m.vault, filepath.FromSlash(item.match.Path)), true
}

func (m *Model) renderPreview() {
	path, ok := m.selectedPath()
	if !ok {
		m.preview.SetContent("")
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		m.preview.SetContent("Error reading file")
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.preview.Width),
	)
	if err != nil {
		m.preview.SetContent(string(content))
		return
	}

	rendered, err := r.Render(string(content))
	if err != nil {
		m.preview.SetContent(string(content))
		return
	}
	m.preview.SetContent(rendered)
}

func (m *Model) setSizes() {
	h, v := appStyle.GetFrameSize()
	width := m.width - h
	height := m.height - v - 3

	listWidth := width
	if m.showPreview {
		listWidth = width / 2
	}

	m.list.SetSize(listWidth, height)
	m.preview.Width = width - listWidth - 2
	m.preview.Height = height
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setSizes()
		if m.showPreview {
			m.renderPreview()
		}
		return m, nil

	case resultsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("search error: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("%d notes", len(msg.matches))
		items := lo.Map(msg.matches, func(match indexsvc.Match, _ int) list.Item {
			return noteItem{match: match}
		})
		cmds = append(cmds, m.list.SetItems(items))
		if m.showPreview {
			m.renderPreview()
		}
		return m, tea.Batch(cmds...)

	case rebuildDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("rebuild error: %v", msg.err)
			return m, nil
		}
		m.status = "index rebuilt"
		return m, m.searchCmd(m.input.Value())

	case editorFinishedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("editor error: %v", msg.err)
			return m, nil
		}
		return m, m.searchCmd(m.input.Value())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.cursorDown):
			m.list.CursorDown()
			if m.showPreview {
				m.renderPreview()
			}
			return m, nil
		case key.Matches(msg, m.keys.cursorUp):
			m.list.CursorUp()
			if m.showPreview {
				m.renderPreview()
			}
			return m, nil
		case key.Matches(msg, m.keys.togglePreview):
			m.showPreview = !m.showPreview
			m.setSizes()
			if m.showPreview {
				m.renderPreview()
			}
			return m, nil
		case key.Matches(msg, m.keys.closePreview):
			if m.showPreview {
				m.showPreview = false
				m.setSizes()
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.rebuild):
			m.status = "rebuilding index..."
			return m, m.rebuildCmd()
		case key.Matches(msg, m.keys.previewUp):
			if m.showPreview {
				m.preview.LineUp(5)
			}
			return m, nil
		case key.Matches(msg, m.keys.previewDown):
			if m.showPreview {
				m.preview.LineDown(5)
			}
			return m, nil
		case key.Matches(msg, m.keys.openEditor):
			if path, ok := m.selectedPath(); ok {
				return m, m.openEditorCmd(path)
			}
			return m, nil
		}
	}

	oldValue := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	if newValue := m.input.Value(); newValue != oldValue {
		cmds = append(cmds, m.searchCmd(newValue))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	content := m.list.View()
	if m.showPreview {
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			content,
			previewStyle.Render(m.preview.View()),
		)
	}

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.input.View(),
		content,
		statusStyle.Render(m.status),
	))
}

// Run launches the notes browser in the alternate screen.
func Run(s *state.State) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("notes: running browser: %w", err)
	}
	return nil
}
