// ABOUTME: Wheel hotspot handling for the app
// ABOUTME: Routes wheel actions to every instrument and messages to the status line
package app

import (
	"fmt"

	"github.com/Sendspin/notewave/internal/scene"
	"github.com/Sendspin/notewave/internal/ui"
)

// Hotspot returns a snapshot of the wheel hotspot
func (a *App) Hotspot() scene.Hotspot {
	a.hotspotMu.Lock()
	defer a.hotspotMu.Unlock()
	return a.hotspot
}

// Click clicks the wheel hotspot
func (a *App) Click() {
	a.hotspotMu.Lock()
	hs := a.hotspot
	a.hotspotMu.Unlock()

	a.log.Debug().Bool("gate", hs.Gate).Str("mode", hs.Mode.String()).Msg("hotspot clicked")
	hs.Click(a)
}

// Signal opens the hotspot gate for non-zero v and closes it for zero
func (a *App) Signal(v int) {
	a.hotspotMu.Lock()
	a.hotspot.Signal(v)
	hs := a.hotspot
	a.hotspotMu.Unlock()

	a.log.Info().Bool("gate", hs.Gate).Msg("hotspot signalled")
	a.notify(ui.StatusMsg{Hotspot: hotspotLabel(hs)})
}

// Execute runs a wheel action. Stop rests every instrument; Cruise and Go
// play every lead-in.
func (a *App) Execute(target, action string) {
	log := a.log.With().Str("target", target).Str("action", action).Logger()
	if target != scene.WheelTarget {
		log.Warn().Msg("action for unknown target")
		return
	}

	switch action {
	case "Stop":
		for _, name := range a.order {
			a.Stop(name)
		}
	case "Cruise", "Go":
		for _, name := range a.order {
			a.Trigger(name)
		}
	default:
		log.Warn().Msg("unknown wheel action")
		return
	}
	log.Info().Msg("wheel action")
	a.notify(ui.StatusMsg{Message: fmt.Sprintf("wheel: %s", action)})
}

// Display shows a hotspot message
func (a *App) Display(message string) {
	a.log.Info().Str("message", message).Msg("hotspot message")
	a.notify(ui.StatusMsg{Message: message})
}

func hotspotLabel(hs scene.Hotspot) string {
	gate := "closed"
	if hs.Gate {
		gate = "open"
	}
	return fmt.Sprintf("%s, gate %s", hs.Mode, gate)
}
