package core

// KeyCode identifies a keyboard key independently of the windowing backend.
// Only the keys the bootstrap reacts to are mapped; everything else arrives
// as KEY_UNKNOWN and is ignored.
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_Q       KeyCode = 0x51
)

// InputProcessKey forwards a key state change to the event bus.
func InputProcessKey(key KeyCode, pressed bool) {
	if key == KEY_UNKNOWN {
		return
	}
	context := EventContext{}
	context.Data.U16[0] = uint16(key)
	if pressed {
		EventFire(EVENT_CODE_KEY_PRESSED, nil, context)
	} else {
		EventFire(EVENT_CODE_KEY_RELEASED, nil, context)
	}
}
