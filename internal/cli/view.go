package cli

import (
	"fmt"
	"io"

	"github.com/idilsaglam/calories/internal/app"
	"github.com/idilsaglam/calories/internal/model"
	"github.com/idilsaglam/calories/internal/ui"
)

// printView is the View for one-shot commands. It mirrors what the
// Coordinator renders and prints it once the command is done.
type printView struct {
	items       []model.Item
	listVisible bool
	total       int

	input   app.FormInput
	editing bool

	dispatcher app.Dispatcher
}

var _ app.View = (*printView)(nil)

func (v *printView) RenderList(items []model.Item) {
	v.items = append([]model.Item(nil), items...)
	v.listVisible = len(items) > 0
}

func (v *printView) RenderTotal(total int)        { v.total = total }
func (v *printView) ReadFormInput() app.FormInput { return v.input }
func (v *printView) ClearInput()                  { v.input = app.FormInput{} }

func (v *printView) AppendItem(item model.Item) {
	v.items = append(v.items, item)
	v.listVisible = true
}

func (v *printView) RefreshItem(item model.Item) {
	for i := range v.items {
		if v.items[i].ID == item.ID {
			v.items[i] = item
			return
		}
	}
}

func (v *printView) RemoveItem(id int) {
	for i := range v.items {
		if v.items[i].ID == id {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return
		}
	}
}

func (v *printView) RemoveAllItems() { v.items = nil }

func (v *printView) EnterEditMode(item model.Item) {
	v.editing = true
	v.input = app.FormInput{Name: item.Name, CaloriesText: fmt.Sprint(item.Calories)}
}

func (v *printView) ExitEditMode() {
	v.editing = false
	v.ClearInput()
}

func (v *printView) HideList()             { v.listVisible = false }
func (v *printView) ShowList()             { v.listVisible = true }
func (v *printView) FocusName()            {}
func (v *printView) Bind(d app.Dispatcher) { v.dispatcher = d }

// submit fills the form and dispatches a.
func (v *printView) submit(a app.Action, in app.FormInput) error {
	v.input = in
	return v.dispatcher.Dispatch(a)
}

// last returns the most recently appended item.
func (v *printView) last() (model.Item, bool) {
	if len(v.items) == 0 {
		return model.Item{}, false
	}
	return v.items[len(v.items)-1], true
}

// render prints the list panel followed by the total.
func (v *printView) render(w io.Writer, goal int) {
	t := ui.Current()
	var lines []string
	if !v.listVisible || len(v.items) == 0 {
		lines = append(lines, t.Muted.Render("no items yet"))
	} else {
		for _, it := range v.items {
			lines = append(lines, t.Muted.Render(fmt.Sprintf("%3d", it.ID))+"  "+ui.ItemLine(it.Name, it.Calories))
		}
	}
	lines = append(lines, "", ui.TotalLine(v.total, goal))
	fmt.Fprintln(w, ui.Panel(lines))
}
