package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/blitloop/host"
)

// keyTable is the static translation from Ebiten key codes to host
// keys. Lookups that miss report host.KeyUnknown.
var keyTable = map[ebiten.Key]host.Key{
	ebiten.KeyA: host.KeyA,
	ebiten.KeyB: host.KeyB,
	ebiten.KeyC: host.KeyC,
	ebiten.KeyD: host.KeyD,
	ebiten.KeyE: host.KeyE,
	ebiten.KeyF: host.KeyF,
	ebiten.KeyG: host.KeyG,
	ebiten.KeyH: host.KeyH,
	ebiten.KeyI: host.KeyI,
	ebiten.KeyJ: host.KeyJ,
	ebiten.KeyK: host.KeyK,
	ebiten.KeyL: host.KeyL,
	ebiten.KeyM: host.KeyM,
	ebiten.KeyN: host.KeyN,
	ebiten.KeyO: host.KeyO,
	ebiten.KeyP: host.KeyP,
	ebiten.KeyQ: host.KeyQ,
	ebiten.KeyR: host.KeyR,
	ebiten.KeyS: host.KeyS,
	ebiten.KeyT: host.KeyT,
	ebiten.KeyU: host.KeyU,
	ebiten.KeyV: host.KeyV,
	ebiten.KeyW: host.KeyW,
	ebiten.KeyX: host.KeyX,
	ebiten.KeyY: host.KeyY,
	ebiten.KeyZ: host.KeyZ,

	ebiten.KeyDigit0: host.KeyNum0,
	ebiten.KeyDigit1: host.KeyNum1,
	ebiten.KeyDigit2: host.KeyNum2,
	ebiten.KeyDigit3: host.KeyNum3,
	ebiten.KeyDigit4: host.KeyNum4,
	ebiten.KeyDigit5: host.KeyNum5,
	ebiten.KeyDigit6: host.KeyNum6,
	ebiten.KeyDigit7: host.KeyNum7,
	ebiten.KeyDigit8: host.KeyNum8,
	ebiten.KeyDigit9: host.KeyNum9,

	ebiten.KeyBackslash:     host.KeyBackslash,
	ebiten.KeyBracketRight:  host.KeyCloseBracket,
	ebiten.KeyComma:         host.KeyComma,
	ebiten.KeyEqual:         host.KeyEqual,
	ebiten.KeyMinus:         host.KeyHyphen,
	ebiten.KeyIntlBackslash: host.KeyNonUSBackslash,
	ebiten.KeyBracketLeft:   host.KeyOpenBracket,
	ebiten.KeyPeriod:        host.KeyPeriod,
	ebiten.KeyQuote:         host.KeyQuote,
	ebiten.KeySemicolon:     host.KeySemicolon,
	ebiten.KeySlash:         host.KeySlash,
	ebiten.KeySpace:         host.KeySpace,

	ebiten.KeyCapsLock:     host.KeyCapsLock,
	ebiten.KeyAltLeft:      host.KeyLeftAlt,
	ebiten.KeyControlLeft:  host.KeyLeftControl,
	ebiten.KeyMetaLeft:     host.KeyLeftMeta,
	ebiten.KeyShiftLeft:    host.KeyLeftShift,
	ebiten.KeyAltRight:     host.KeyRightAlt,
	ebiten.KeyControlRight: host.KeyRightControl,
	ebiten.KeyMetaRight:    host.KeyRightMeta,
	ebiten.KeyShiftRight:   host.KeyRightShift,
	ebiten.KeyScrollLock:   host.KeyScrollLock,

	ebiten.KeyArrowLeft:  host.KeyArrowLeft,
	ebiten.KeyArrowRight: host.KeyArrowRight,
	ebiten.KeyArrowUp:    host.KeyArrowUp,
	ebiten.KeyArrowDown:  host.KeyArrowDown,
	ebiten.KeyPageUp:     host.KeyPageUp,
	ebiten.KeyPageDown:   host.KeyPageDown,
	ebiten.KeyHome:       host.KeyHome,
	ebiten.KeyEnd:        host.KeyEnd,
	ebiten.KeyDelete:     host.KeyDeleteForward,
	ebiten.KeyBackspace:  host.KeyBackspace,
	ebiten.KeyEscape:     host.KeyEscape,
	ebiten.KeyInsert:     host.KeyInsert,
	ebiten.KeyEnter:      host.KeyEnter,
	ebiten.KeyTab:        host.KeyTab,
}

// modifierSources maps level-tracked modifier keys to their bits.
// These keys never pass through as discrete events; the queue
// synthesizes presses and releases from level changes instead, so the
// application sees one consistent stream regardless of backend.
var modifierSources = []struct {
	left, right ebiten.Key
	bit         host.Modifiers
}{
	{ebiten.KeyShiftLeft, ebiten.KeyShiftRight, host.ModShift},
	{ebiten.KeyControlLeft, ebiten.KeyControlRight, host.ModControl},
	{ebiten.KeyAltLeft, ebiten.KeyAltRight, host.ModAlt},
	{ebiten.KeyMetaLeft, ebiten.KeyMetaRight, host.ModMeta},
	{ebiten.KeyCapsLock, ebiten.KeyCapsLock, host.ModCapsLock},
}

// translateKey maps an Ebiten key through the static table.
func translateKey(k ebiten.Key) host.Key {
	return keyTable[k]
}

// isModifierKey reports whether k feeds the modifier mask rather than
// the discrete key stream.
func isModifierKey(k ebiten.Key) bool {
	for _, m := range modifierSources {
		if k == m.left || k == m.right {
			return true
		}
	}
	return false
}

// readModifiers assembles the current modifier bitmask from key state.
func readModifiers() host.Modifiers {
	var mods host.Modifiers
	for _, m := range modifierSources {
		if ebiten.IsKeyPressed(m.left) || ebiten.IsKeyPressed(m.right) {
			mods |= m.bit
		}
	}
	return mods
}
