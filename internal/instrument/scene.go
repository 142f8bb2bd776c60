// ABOUTME: Scene and actor interfaces driven by instrument cues
// ABOUTME: Includes a zerolog-backed scene for headless runs
package instrument

import (
	"github.com/rs/zerolog"
)

// MovieFlags modify how a clip starts
type MovieFlags int

const (
	// StopPrevious cancels whatever the actor was playing
	StopPrevious MovieFlags = 1 << iota
)

// Actor is one animated object in the scene
type Actor interface {
	// PlayMovie plays frames start through end
	PlayMovie(start, end int, flags MovieFlags)
	// PlayAll plays the actor's whole clip
	PlayAll(flags MovieFlags)
	LoadFrame(frame int)
	SetVisible(visible bool)
	StopMovie()
	// SetAudioTiming slaves the clip clock to audio playback
	SetAudioTiming(enabled bool)
}

// Scene resolves actors by name. Missing actors are nil.
type Scene interface {
	Actor(name string) Actor
}

// LogScene is a Scene whose actors log every cue
type LogScene struct {
	log zerolog.Logger
}

// NewLogScene creates a scene that writes cues at debug level
func NewLogScene(log zerolog.Logger) *LogScene {
	return &LogScene{log: log.With().Str("component", "scene").Logger()}
}

// Actor returns a logging actor for any name
func (s *LogScene) Actor(name string) Actor {
	return &logActor{log: s.log.With().Str("actor", name).Logger()}
}

type logActor struct {
	log zerolog.Logger
}

func (a *logActor) PlayMovie(start, end int, flags MovieFlags) {
	a.log.Debug().Int("start", start).Int("end", end).Int("flags", int(flags)).Msg("play movie")
}

func (a *logActor) PlayAll(flags MovieFlags) {
	a.log.Debug().Int("flags", int(flags)).Msg("play movie")
}

func (a *logActor) LoadFrame(frame int) {
	a.log.Debug().Int("frame", frame).Msg("load frame")
}

func (a *logActor) SetVisible(visible bool) {
	a.log.Debug().Bool("visible", visible).Msg("set visible")
}

func (a *logActor) StopMovie() {
	a.log.Debug().Msg("stop movie")
}

func (a *logActor) SetAudioTiming(enabled bool) {
	a.log.Debug().Bool("enabled", enabled).Msg("audio timing")
}
