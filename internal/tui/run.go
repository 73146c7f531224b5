package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nguyentantai21042004/meeting-secretary/internal/controller"
)

// Run starts the interactive program and blocks until the user quits or ctx is done.
// regions must be the Display ctrl writes to.
func Run(ctx context.Context, ctrl controller.Controller, regions *controller.Regions, showSummary bool) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, showSummary), tea.WithAltScreen(), tea.WithContext(ctx))

	regions.OnChange(func(region controller.Region, text string) {
		p.Send(RegionMsg{Region: region, Text: text})
	})
	defer regions.OnChange(nil)

	_, err := p.Run()
	return err
}
