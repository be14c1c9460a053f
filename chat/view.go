package chat

// View is the user interface driven by a Controller.
//
// The controller calls the view from the goroutine that submitted the
// question. Implementations that are not safe for concurrent use must
// synchronize internally.
type View interface {
	// TurnAppended displays a turn that was added to the log.
	TurnAppended(Turn)

	// ClearInput empties the question input.
	ClearInput()

	// SetBusy disables or enables input and shows or hides the busy indicator.
	SetBusy(bool)

	// ShowError displays an error message.
	ShowError(message string)

	// ClearError hides any error message.
	ClearError()

	// Focus moves input focus to the question input.
	Focus()
}

type nopView struct{}

func (nopView) TurnAppended(Turn) {}
func (nopView) ClearInput()       {}
func (nopView) SetBusy(bool)      {}
func (nopView) ShowError(string)  {}
func (nopView) ClearError()       {}
func (nopView) Focus()            {}
