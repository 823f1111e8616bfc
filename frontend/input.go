package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"spaceshooter/game"
)

// upgradeKeys buy the upgrade at the same index
var upgradeKeys = []ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
}

// KeyboardInput is the input collaborator for the window: WASD or arrows
// move, space fires, clicks and number keys buy upgrades
type KeyboardInput struct {
	keys []ebiten.Key
}

// NewKeyboardInput creates the keyboard/mouse input provider
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		keys: make([]ebiten.Key, 0, 10),
	}
}

// Poll writes the current device state into the simulation's input
func (k *KeyboardInput) Poll(s *game.Simulation) {
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	s.SetController(controllerFrom(k.keys))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.Click(float64(x), float64(y))
	}
	for i, key := range upgradeKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.RequestUpgrade(i)
		}
	}
}

// QuitRequested reports whether escape was pressed this frame
func (k *KeyboardInput) QuitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// controllerFrom maps held keys to axes and the fire button
func controllerFrom(pressed []ebiten.Key) game.Controller {
	var c game.Controller
	for _, key := range pressed {
		switch key {
		case ebiten.KeyArrowLeft, ebiten.KeyA:
			c.MoveX = -1
		case ebiten.KeyArrowRight, ebiten.KeyD:
			c.MoveX = 1
		case ebiten.KeyArrowUp, ebiten.KeyW:
			c.MoveY = -1
		case ebiten.KeyArrowDown, ebiten.KeyS:
			c.MoveY = 1
		case ebiten.KeySpace:
			c.Fire = true
		}
	}
	return c
}
