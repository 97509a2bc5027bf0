package main

import (
	"embed"

	"fyne.io/fyne/v2/app"

	"RollCounter/ui"
)

//go:embed assets/*
var content embed.FS

func main() {
	fyneApp := app.New()
	fyneApp.Settings().SetTheme(ui.NewDigitTheme())

	a := NewAppManager(content)

	w := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w

	w.SetOnClosed(a.Shutdown)
	w.ShowAndRun()
}
