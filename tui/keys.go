package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/tile-painter/game/engine"
)

// Command is what a key press asks the editor to do
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdMove
	CmdNextTile
	CmdPrevTile
	CmdPickTile
	CmdReset
)

// KeyAction is the decoded meaning of one key press
type KeyAction struct {
	Command   Command
	Direction engine.Direction // for CmdMove
	Index     int              // palette index for CmdPickTile
}

// MapKey decodes a key press. Digits pick palette entries 1-10 (0 is the
// tenth), and [ ] step backwards and forwards through the palette.
func MapKey(key tcell.Key, ch rune) KeyAction {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyAction{Command: CmdQuit}
	case tcell.KeyUp:
		return KeyAction{Command: CmdMove, Direction: engine.Up}
	case tcell.KeyDown:
		return KeyAction{Command: CmdMove, Direction: engine.Down}
	case tcell.KeyLeft:
		return KeyAction{Command: CmdMove, Direction: engine.Left}
	case tcell.KeyRight:
		return KeyAction{Command: CmdMove, Direction: engine.Right}
	case tcell.KeyRune:
		switch {
		case ch == 'q' || ch == 'Q':
			return KeyAction{Command: CmdQuit}
		case ch == 'r' || ch == 'R':
			return KeyAction{Command: CmdReset}
		case ch == ']':
			return KeyAction{Command: CmdNextTile}
		case ch == '[':
			return KeyAction{Command: CmdPrevTile}
		case ch == '0':
			return KeyAction{Command: CmdPickTile, Index: 9}
		case ch >= '1' && ch <= '9':
			return KeyAction{Command: CmdPickTile, Index: int(ch - '1')}
		}
	}
	return KeyAction{Command: CmdNone}
}
