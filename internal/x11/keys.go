package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// keyModMask covers Shift, Lock, Control and Mod1..Mod5. Pointer button
// bits in a key event's state are dropped.
const keyModMask = 0xff

// ParseKey resolves a "Mod4-Return" style sequence.
func (c *Connection) ParseKey(sequence string) (uint16, []byte, error) {
	mods, keycodes, err := keybind.ParseString(c.XUtil, sequence)
	if err != nil {
		return 0, nil, err
	}
	codes := make([]byte, len(keycodes))
	for i, kc := range keycodes {
		codes[i] = byte(kc)
	}
	return mods, codes, nil
}

// GrabKey grabs the chord on the root window under every lock modifier
// combination.
func (c *Connection) GrabKey(mods uint16, code byte) {
	if err := keybind.GrabChecked(c.XUtil, c.Root, mods, xproto.Keycode(code)); err != nil {
		c.log.Warn().Err(err).Uint16("mods", mods).Uint8("code", code).Msg("key grab failed")
	}
}

// keyModifiers returns the modifier state of a key event without lock
// modifiers, so it compares equal to the mask of the grabbed chord.
func keyModifiers(state, lockMask uint16) uint16 {
	return state & keyModMask &^ lockMask
}

// configureIgnoreMods makes grabs fire regardless of CapsLock, NumLock and
// ScrollLock and returns the union of those modifiers.
func configureIgnoreMods(xu *xgbutil.XUtil) uint16 {
	caps := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	ignore := ignoreModCombos(caps, numLock, scrollLock)
	xevent.IgnoreMods = ignore

	var union uint16
	for _, m := range ignore {
		union |= m
	}
	return union
}

// ignoreModCombos returns 0 and every non-empty combination of the distinct
// non-zero lock masks.
func ignoreModCombos(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	ignore := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
