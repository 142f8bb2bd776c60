// ABOUTME: Per-kind animation sequencing for instruments
// ABOUTME: Each variant owns its actors and its own counters
package instrument

// Actor names in the music room scene
const (
	ActorPianoMan      = "Piano Man"
	ActorPianoMouth    = "Piano Mouth"
	ActorPianoLeftArm  = "Piano Left Arm"
	ActorPianoRightArm = "Piano Right Arm"
	ActorBassPlayer    = "Bass Player"
	ActorTubularBells  = "Tubular Bells"
	ActorSnakeHammer   = "Snake_Hammer"
	ActorSnakeGlass    = "Snake_Glass"
	ActorSnakeHead     = "Snake_Head"
)

type behavior interface {
	trigger()
	start(pitch int)
	stop()
	reset()
}

func newBehavior(kind Kind, scene Scene) behavior {
	actor := func(name string) Actor {
		if scene == nil {
			return nil
		}
		return scene.Actor(name)
	}
	// secondary actors fall back to a no-op
	extra := func(name string) Actor {
		if a := actor(name); a != nil {
			return a
		}
		return nopActor{}
	}

	var b behavior
	switch kind {
	case Piano:
		if man := actor(ActorPianoMan); man != nil {
			b = &piano{
				man:      man,
				mouth:    extra(ActorPianoMouth),
				leftArm:  extra(ActorPianoLeftArm),
				rightArm: extra(ActorPianoRightArm),
			}
		}
	case Bass:
		if a := actor(ActorBassPlayer); a != nil {
			b = &bass{player: a}
		}
	case Bells:
		if a := actor(ActorTubularBells); a != nil {
			b = &bells{bells: a}
		}
	case Snake:
		if hammer := actor(ActorSnakeHammer); hammer != nil {
			b = &snake{
				hammer: hammer,
				glass:  extra(ActorSnakeGlass),
				head:   extra(ActorSnakeHead),
			}
		}
	}
	if b == nil {
		// no primary actor: sound without animation
		return silent{}
	}
	return b
}

type silent struct{}

func (silent) trigger()  {}
func (silent) start(int) {}
func (silent) stop()     {}
func (silent) reset()    {}

type nopActor struct{}

func (nopActor) PlayMovie(int, int, MovieFlags) {}
func (nopActor) PlayAll(MovieFlags)             {}
func (nopActor) LoadFrame(int)                  {}
func (nopActor) SetVisible(bool)                {}
func (nopActor) StopMovie()                     {}
func (nopActor) SetAudioTiming(bool)            {}

type piano struct {
	man, mouth, leftArm, rightArm Actor

	rightNext bool
	mouthStep int
}

var pianoMouthClips = [4][2]int{{0, 4}, {4, 8}, {8, 12}, {12, 16}}

func (p *piano) trigger() {
	p.man.PlayMovie(0, 29, StopPrevious)
	p.leftArm.LoadFrame(14)
	p.rightArm.LoadFrame(22)
}

func (p *piano) start(int) {
	p.mouth.SetVisible(true)
	p.leftArm.SetVisible(true)
	p.rightArm.SetVisible(true)

	if p.rightNext {
		p.rightArm.PlayAll(StopPrevious)
	} else {
		p.leftArm.PlayAll(StopPrevious)
	}
	p.rightNext = !p.rightNext

	clip := pianoMouthClips[p.mouthStep]
	p.mouth.PlayMovie(clip[0], clip[1], StopPrevious)
	p.mouthStep = (p.mouthStep + 1) % len(pianoMouthClips)
}

func (p *piano) stop() {
	p.mouth.SetVisible(false)
	p.leftArm.SetVisible(false)
	p.rightArm.SetVisible(false)
	p.man.PlayMovie(29, 58, StopPrevious)
}

func (p *piano) reset() {
	p.rightNext = false
	p.mouthStep = 0
}

type bass struct {
	player Actor
	step   int
}

var bassClips = [4][2]int{{0, 7}, {7, 14}, {15, 24}, {25, 33}}

func (b *bass) trigger() {}

func (b *bass) start(int) {
	clip := bassClips[b.step]
	b.player.PlayMovie(clip[0], clip[1], StopPrevious)
	b.step = (b.step + 1) % len(bassClips)
}

func (b *bass) stop()  {}
func (b *bass) reset() { b.step = 0 }

type bells struct {
	bells Actor
}

func (b *bells) trigger() {
	b.bells.LoadFrame(0)
	b.bells.SetAudioTiming(true)
}

func (b *bells) start(pitch int) {
	switch pitch {
	case 60:
		b.bells.SetAudioTiming(true)
		b.bells.PlayMovie(0, 512, StopPrevious)
	case 62:
		b.bells.PlayMovie(828, 1023, StopPrevious)
	case 63:
		b.bells.PlayMovie(1024, 1085, StopPrevious)
	}
}

func (b *bells) stop()  { b.bells.StopMovie() }
func (b *bells) reset() {}

type snake struct {
	hammer, glass, head Actor

	glassBase int
}

func (s *snake) trigger() {
	s.glassBase = 22
	s.glass.PlayMovie(0, 22, 0)
	s.head.PlayMovie(0, 35, StopPrevious)
	s.hammer.PlayMovie(0, 1, StopPrevious)
	for i := 0; i < 4; i++ {
		s.hammer.PlayMovie(0, 1, 0)
	}
}

// snakeGlassStep maps a pitch to the glass frame stride
func snakeGlassStep(pitch, base int) int {
	target := 46.0 - float64(pitch-14)*1.43
	return int((target - float64(base)) * 0.25)
}

func (s *snake) start(pitch int) {
	s.hammer.PlayMovie(0, 7, StopPrevious)

	step := snakeGlassStep(pitch, s.glassBase)
	s.glass.PlayMovie(step, step, StopPrevious)
	frame := s.glassBase + step
	s.glass.PlayMovie(frame, frame, 0)
	frame += step
	s.glass.PlayMovie(frame, frame, 0)

	s.head.PlayMovie(45, 49, StopPrevious)
}

func (s *snake) stop()  {}
func (s *snake) reset() { s.glassBase = 0 }
