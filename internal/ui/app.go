package ui

import (
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"PaintTool/internal/config"
	"PaintTool/internal/render"
	"PaintTool/internal/state"
)

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg config.Config, session *state.Session, faces *render.Faces) {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Title)

	// Create the interactive board widget
	board := NewBoardWidget(session, faces, cfg)

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(board, myWindow)

	// Keep the board at its fixed canvas size in the middle of the window
	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewCenter(board))

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
