package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"RollCounter/control"
	"RollCounter/i18n"
)

// Window metrics.
const (
	WindowWidth      = 360
	WindowHeight     = 300
	ControlButtonGap = 5
	SetEntryWidth    = 140
)

// App defines the interface that the window builder needs to communicate back
// to the main application.
type App interface {
	Display() *Counter
	EnqueueCommand(cmd control.Command)
	SmallStep() int
	LargeStep() int
	ParseValue(string) (int, error)
	SetAnimationsEnabled(bool)
	SetAnimCheck(*widget.Check)
	ShowHelpDialog()
	HandleKeyRune(rune)
}

// stepButton builds a button that applies a signed delta through the command
// loop and waits briefly for the reply, mirroring the command/reply shape the
// rest of the controls use.
func stepButton(a App, delta int) *widget.Button {
	label := fmt.Sprintf("%+d", delta)
	return widget.NewButton(label, func() {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdAdd, Delta: delta, Reply: reply})
		select {
		case <-reply:
		case <-time.After(200 * time.Millisecond):
		}
	})
}

// BuildControls builds the footer control block: step buttons, direct-set
// entry, reset and the animations toggle.
func BuildControls(a App, w fyne.Window) fyne.CanvasObject {
	buttons := []*widget.Button{
		stepButton(a, -a.LargeStep()),
		stepButton(a, -a.SmallStep()),
		stepButton(a, a.SmallStep()),
		stepButton(a, a.LargeStep()),
	}

	gap := func() fyne.CanvasObject {
		r := canvas.NewRectangle(color.Transparent)
		r.SetMinSize(fyne.NewSize(ControlButtonGap, 0))
		return r
	}
	stepRow := container.NewHBox(
		buttons[0], gap(), buttons[1], gap(), buttons[2], gap(), buttons[3],
	)

	valueEntry := widget.NewEntry()
	valueEntry.SetPlaceHolder(i18n.T("value"))

	setValue := func() {
		v, err := a.ParseValue(valueEntry.Text)
		if err != nil {
			return
		}
		valueEntry.SetText("")
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdSet, Value: v, Reply: reply})
		select {
		case <-reply:
		case <-time.After(200 * time.Millisecond):
		}
		w.Canvas().Focus(nil)
	}
	setButton := widget.NewButton(i18n.T("Set"), setValue)
	valueEntry.OnSubmitted = func(string) { setValue() }

	sizeEnforcer := canvas.NewRectangle(color.Transparent)
	sizeEnforcer.SetMinSize(fyne.NewSize(SetEntryWidth, 0))
	entryWrapper := container.New(layout.NewStackLayout(), sizeEnforcer, valueEntry)

	resetButton := widget.NewButton(i18n.T("Reset"), func() {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdReset, Reply: reply})
		select {
		case <-reply:
		case <-time.After(200 * time.Millisecond):
		}
	})

	setRow := container.NewHBox(entryWrapper, gap(), setButton, gap(), resetButton)

	animCheck := widget.NewCheck(i18n.T("Animations"), nil)
	animCheck.SetChecked(true)
	animCheck.OnChanged = func(checked bool) {
		a.SetAnimationsEnabled(checked)
		w.Canvas().Focus(nil)
	}
	a.SetAnimCheck(animCheck)

	helpIcon := widget.NewIcon(theme.QuestionIcon())
	helpButton := NewIconButton(helpIcon, a.ShowHelpDialog)

	centered := func(obj fyne.CanvasObject) fyne.CanvasObject {
		return container.NewHBox(layout.NewSpacer(), obj, layout.NewSpacer())
	}
	centralBlock := container.NewVBox(
		centered(stepRow),
		centered(setRow),
		centered(animCheck),
	)

	leftContent := container.NewVBox(layout.NewSpacer(), helpButton)

	return container.New(
		layout.NewBorderLayout(nil, nil, leftContent, nil),
		leftContent,
		container.New(layout.NewCenterLayout(), centralBlock),
	)
}

// CreateMainWindow lays out the counter display above the control block.
func CreateMainWindow(a App, fyneApp fyne.App) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "RollCounter"
	}
	w := fyneApp.NewWindow(title)

	display := container.New(layout.NewCenterLayout(), a.Display())
	controls := BuildControls(a, w)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(0, ControlButtonGap))

	w.SetContent(container.NewVBox(
		layout.NewSpacer(),
		display,
		layout.NewSpacer(),
		spacer,
		controls,
	))
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	w.SetFixedSize(true)
	return w
}

// IconButton fires a callback when its content is tapped. Unlike
// widget.Button it renders the content flat, with no border or fill.
type IconButton struct {
	widget.BaseWidget
	Content  fyne.CanvasObject
	OnTapped func()
}

// NewIconButton wraps content with the given tap handler.
func NewIconButton(content fyne.CanvasObject, onTapped func()) *IconButton {
	b := &IconButton{Content: content, OnTapped: onTapped}
	b.ExtendBaseWidget(b)
	return b
}

func (b *IconButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewPadded(b.Content))
}

func (b *IconButton) Tapped(_ *fyne.PointEvent) {
	if b.OnTapped != nil {
		b.OnTapped()
	}
}
