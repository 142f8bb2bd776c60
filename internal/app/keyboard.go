// ABOUTME: Bridges TUI keyboard channels to the app
// ABOUTME: Plays notes and applies volume, hotspot and reset controls
package app

import (
	"context"

	"github.com/Sendspin/notewave/internal/ui"
)

// RunKeyboard handles keyboard events until the user quits or ctx ends
func (a *App) RunKeyboard(ctx context.Context, kb *ui.Keyboard) {
	a.notify(ui.StatusMsg{Hotspot: hotspotLabel(a.Hotspot())})

	for {
		select {
		case note := <-kb.Notes:
			ok, err := a.Play(note.Instrument, note.Pitch)
			if err != nil {
				a.log.Warn().Err(err).Msg("note rejected")
				continue
			}
			if !ok {
				a.notify(ui.StatusMsg{Message: "no sample loaded"})
			}

		case ctrl := <-kb.Controls:
			a.handleControl(ctrl)

		case <-kb.Quit:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) handleControl(ctrl ui.ControlMsg) {
	switch ctrl.Kind {
	case ui.ControlVolume:
		a.out.SetVolume(ctrl.Volume)
		a.out.SetMuted(ctrl.Muted)
		a.log.Debug().Int("volume", ctrl.Volume).Bool("muted", ctrl.Muted).Msg("volume changed")
	case ui.ControlClick:
		a.Click()
	case ui.ControlReset:
		a.ResetAll()
		a.notify(ui.StatusMsg{Message: "reset"})
	}
}
