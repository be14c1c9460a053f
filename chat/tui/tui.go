// Package tui is a terminal user interface for the chat client.
package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/askwiki/gateway/chat"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const busyText = "[yellow::]Thinking...[-]"

// App is the terminal chat application.
type App struct {
	app          *tview.Application
	conversation *tview.TextView
	input        *tview.InputField
	busy         *tview.TextView
	errorLine    *tview.TextView
	controller   *chat.Controller
	ctx          context.Context
}

// New returns an application that asks questions using asker.
func New(asker chat.Asker, logger *log.Logger) *App {
	a := &App{
		app: tview.NewApplication(),
		ctx: context.Background(),
	}

	a.conversation = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	a.conversation.SetTitle("Conversation").SetBorder(true)

	a.busy = tview.NewTextView().SetDynamicColors(true)
	a.errorLine = tview.NewTextView().SetDynamicColors(true)

	a.input = tview.NewInputField().
		SetLabel("Question: ").
		SetFieldBackgroundColor(tcell.ColorDefault)
	a.input.SetBorder(true)
	a.input.SetDoneFunc(a.done)

	a.controller = &chat.Controller{
		Asker:  asker,
		View:   &view{a},
		Logger: logger,
	}

	return a
}

// Run runs the application until the user quits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.conversation, 0, 1, false).
		AddItem(a.busy, 1, 0, false).
		AddItem(a.errorLine, 1, 0, false).
		AddItem(a.input, 3, 0, true)

	return a.app.SetRoot(layout, true).SetFocus(a.input).Run()
}

// Log returns the conversation log.
func (a *App) Log() *chat.Log {
	return a.controller.Log()
}

func (a *App) done(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		input := a.input.GetText()
		go a.controller.Submit(a.ctx, input)
	case tcell.KeyEscape:
		a.app.Stop()
	}
}

// view is the chat.View implementation. The controller calls it from the
// submitting goroutine, so every change is queued on the event loop.
type view struct {
	*App
}

func (v *view) TurnAppended(turn chat.Turn) {
	label := "[red::]You:[-]"
	if turn.Sender == chat.Bot {
		label = "[green::]Bot:[-]"
	}

	v.app.QueueUpdateDraw(func() {
		fmt.Fprintf(v.conversation, "%s\n%s\n\n", label, tview.Escape(turn.Text))
		v.conversation.ScrollToEnd()
	})
}

func (v *view) ClearInput() {
	v.app.QueueUpdateDraw(func() {
		v.input.SetText("")
	})
}

func (v *view) SetBusy(busy bool) {
	v.app.QueueUpdateDraw(func() {
		v.input.SetDisabled(busy)
		if busy {
			v.busy.SetText(busyText)
		} else {
			v.busy.Clear()
		}
	})
}

func (v *view) ShowError(message string) {
	v.app.QueueUpdateDraw(func() {
		v.errorLine.SetText("[red::]" + tview.Escape(message) + "[-]")
	})
}

func (v *view) ClearError() {
	v.app.QueueUpdateDraw(func() {
		v.errorLine.Clear()
	})
}

func (v *view) Focus() {
	v.app.QueueUpdateDraw(func() {
		v.app.SetFocus(v.input)
	})
}
