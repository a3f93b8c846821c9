package app

import "github.com/idilsaglam/calories/internal/model"

// FormInput is what the user typed into the item form.
type FormInput struct {
	Name         string
	CaloriesText string
}

// View is the presentation side the Coordinator drives.
type View interface {
	RenderList(items []model.Item)
	RenderTotal(total int)
	ReadFormInput() FormInput
	ClearInput()

	AppendItem(item model.Item)
	RefreshItem(item model.Item)
	RemoveItem(id int)
	RemoveAllItems()

	// EnterEditMode loads item into the form and shows update/delete/back.
	EnterEditMode(item model.Item)
	// ExitEditMode clears the form and shows add only.
	ExitEditMode()

	HideList()
	ShowList()
	FocusName()

	// Bind hands the view the Dispatcher its events go to. Called once.
	Bind(d Dispatcher)
}

// ActionKind identifies a user action.
type ActionKind int

const (
	ActionAdd ActionKind = iota
	ActionBeginEdit
	ActionCommitEdit
	ActionDelete
	ActionClear
	ActionBack
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "add"
	case ActionBeginEdit:
		return "begin-edit"
	case ActionCommitEdit:
		return "commit-edit"
	case ActionDelete:
		return "delete"
	case ActionClear:
		return "clear"
	case ActionBack:
		return "back"
	default:
		return "unknown"
	}
}

// Action is one event from the view. ID is only read by ActionBeginEdit.
type Action struct {
	Kind ActionKind
	ID   int
}

// Dispatcher receives view events.
type Dispatcher interface {
	Dispatch(a Action) error
}
