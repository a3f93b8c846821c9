package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/idilsaglam/calories/internal/app"
	"github.com/idilsaglam/calories/internal/model"
	"github.com/idilsaglam/calories/internal/ui"
)

const (
	fieldName = iota
	fieldCalories
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) FilterValue() string { return i.item.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.ItemLine(it.item.Name, it.item.Calories))
}

// Options tune the interactive editor.
type Options struct {
	DailyGoal int
}

// Model is the interactive view. It implements both tea.Model and app.View;
// the Coordinator calls back into it while Update is running.
type Model struct {
	dispatcher app.Dispatcher

	list        list.Model
	listVisible bool

	name     textinput.Model
	calories textinput.Model
	focus    int

	editing bool
	total   int
	goal    int

	status    string
	statusErr bool

	keys keyMap
	help help.Model
}

var _ app.View = (*Model)(nil)

// New builds the editor. It does nothing until a Coordinator binds to it.
func New(opts Options) *Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.SetSize(76, 10)

	name := textinput.New()
	name.Prompt = "Name:     "
	name.Placeholder = "Add item"
	name.CharLimit = 120

	calories := textinput.New()
	calories.Prompt = "Calories: "
	calories.Placeholder = "Add calories"
	calories.CharLimit = 12

	m := &Model{
		list:     l,
		name:     name,
		calories: calories,
		goal:     opts.DailyGoal,
		keys:     newKeyMap(),
		help:     help.New(),
	}
	m.keys.setEditing(false)
	m.FocusName()
	return m
}

// Run starts the Bubble Tea program on m and blocks until it quits.
func Run(m *Model, altScreen bool) error {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// --- app.View -------------------------------------------------------------

func (m *Model) Bind(d app.Dispatcher) { m.dispatcher = d }

func (m *Model) RenderList(items []model.Item) {
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, listItem{item: it})
	}
	m.list.SetItems(rows)
	m.listVisible = len(rows) > 0
}

func (m *Model) RenderTotal(total int) { m.total = total }

func (m *Model) ReadFormInput() app.FormInput {
	return app.FormInput{Name: m.name.Value(), CaloriesText: m.calories.Value()}
}

func (m *Model) ClearInput() {
	m.name.Reset()
	m.calories.Reset()
}

func (m *Model) AppendItem(item model.Item) {
	m.list.InsertItem(len(m.list.Items()), listItem{item: item})
	m.listVisible = true
}

func (m *Model) RefreshItem(item model.Item) {
	if idx := m.indexOf(item.ID); idx >= 0 {
		m.list.SetItem(idx, listItem{item: item})
	}
}

func (m *Model) RemoveItem(id int) {
	if idx := m.indexOf(id); idx >= 0 {
		m.list.RemoveItem(idx)
	}
}

func (m *Model) RemoveAllItems() { m.list.SetItems(nil) }

func (m *Model) EnterEditMode(item model.Item) {
	m.editing = true
	m.keys.setEditing(true)
	m.name.SetValue(item.Name)
	m.calories.SetValue(strconv.Itoa(item.Calories))
	m.FocusName()
}

func (m *Model) ExitEditMode() {
	m.ClearInput()
	m.editing = false
	m.keys.setEditing(false)
	m.FocusName()
}

func (m *Model) HideList() { m.listVisible = false }
func (m *Model) ShowList() { m.listVisible = true }

func (m *Model) FocusName() {
	m.focus = fieldName
	m.name.Focus()
	m.calories.Blur()
}

// --- tea.Model ------------------------------------------------------------

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(max(msg.Width-6, 20), max(msg.Height-14, 3))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Enter):
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			if m.editing {
				m.dispatch(app.Action{Kind: app.ActionCommitEdit})
			} else {
				m.dispatch(app.Action{Kind: app.ActionAdd})
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if sel, ok := m.list.SelectedItem().(listItem); ok && m.listVisible {
				m.dispatch(app.Action{Kind: app.ActionBeginEdit, ID: sel.item.ID})
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.dispatch(app.Action{Kind: app.ActionDelete})
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.dispatch(app.Action{Kind: app.ActionBack})
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.dispatch(app.Action{Kind: app.ActionClear})
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.list.CursorUp()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.list.CursorDown()
			return m, nil
		case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
			m.toggleField()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.calories, cmd = m.calories.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	t := ui.Current()

	title := "Add Meal / Food Item"
	if m.editing {
		title = "Edit Meal / Food Item"
	}

	lines := []string{
		t.Title.Render("Calorie Tracker"),
		"",
		t.Accent.Render(title),
		m.name.View(),
		m.calories.View(),
		"",
	}
	if m.listVisible {
		lines = append(lines, m.list.View())
	} else {
		lines = append(lines, t.Muted.Render("no items yet"))
	}
	lines = append(lines, "", ui.TotalLine(m.total, m.goal))
	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return ui.Panel(lines)
}

// dispatch sends a to the Coordinator and turns the outcome into the status line.
func (m *Model) dispatch(a app.Action) {
	if m.dispatcher == nil {
		m.setStatus("not ready", true)
		return
	}
	err := m.dispatcher.Dispatch(a)
	switch {
	case err == nil:
		m.setStatus(successMessage(a.Kind), false)
	case errors.Is(err, app.ErrEmptyInput) && a.Kind == app.ActionAdd:
		// add with an incomplete form is ignored
		m.setStatus("", false)
	default:
		log.Debug().Str("component", "tui").Stringer("action", a.Kind).Err(err).Msg("action rejected")
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) toggleField() {
	if m.focus == fieldName {
		m.focus = fieldCalories
		m.name.Blur()
		m.calories.Focus()
		return
	}
	m.FocusName()
}

func (m *Model) indexOf(id int) int {
	for i, it := range m.list.Items() {
		if li, ok := it.(listItem); ok && li.item.ID == id {
			return i
		}
	}
	return -1
}

func successMessage(k app.ActionKind) string {
	switch k {
	case app.ActionAdd:
		return "item added"
	case app.ActionCommitEdit:
		return "item updated"
	case app.ActionDelete:
		return "item deleted"
	case app.ActionClear:
		return "all items cleared"
	default:
		return ""
	}
}
