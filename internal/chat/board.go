package chat

import "strings"

// ANSI escapes baked into rendered boards. Clients print payloads verbatim,
// so color travels inside the payload itself.
const (
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiReset  = "\033[0m"
)

// Whiteboard dimensions.
const (
	WhiteboardRows = 10
	WhiteboardCols = 20
)

// Whiteboard is the server-wide shared drawing grid. There is exactly one
// instance for the whole process: every room's render shows the same cells.
type Whiteboard struct {
	cells [WhiteboardRows][WhiteboardCols]byte
}

// NewWhiteboard returns a grid with every cell set to '.'.
func NewWhiteboard() *Whiteboard {
	wb := &Whiteboard{}
	for i := range wb.cells {
		for j := range wb.cells[i] {
			wb.cells[i][j] = '.'
		}
	}
	return wb
}

// Set writes ch at (row, col). Out-of-range coordinates are ignored.
func (wb *Whiteboard) Set(row, col int, ch byte) {
	if row < 0 || row >= WhiteboardRows || col < 0 || col >= WhiteboardCols {
		return
	}
	wb.cells[row][col] = ch
}

// Render formats the grid as a colored text block.
func (wb *Whiteboard) Render() string {
	var b strings.Builder
	b.WriteString(ansiBlue)
	b.WriteString("[Whiteboard]\n")
	for i := range wb.cells {
		b.Write(wb.cells[i][:])
		b.WriteByte('\n')
	}
	b.WriteString(ansiReset)
	return b.String()
}

// TicTacToe is one room's 3x3 board. It is a shared drawing surface, not a
// rule-enforced game: no turn order, no win detection, and marks may be
// overwritten.
type TicTacToe struct {
	cells [3][3]byte
}

// NewTicTacToe returns an all-'.' board.
func NewTicTacToe() *TicTacToe {
	t := &TicTacToe{}
	for i := range t.cells {
		for j := range t.cells[i] {
			t.cells[i][j] = '.'
		}
	}
	return t
}

// Set places mark at (row, col). Out-of-range coordinates and marks other
// than 'X' or 'O' are ignored.
func (t *TicTacToe) Set(row, col int, mark byte) {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return
	}
	if mark != 'X' && mark != 'O' {
		return
	}
	t.cells[row][col] = mark
}

// Render formats the board with X highlighted red and O green.
func (t *TicTacToe) Render() string {
	var b strings.Builder
	b.WriteString(ansiYellow)
	b.WriteString("[TicTacToe]\n")
	for i := range t.cells {
		for j := range t.cells[i] {
			switch t.cells[i][j] {
			case 'X':
				b.WriteString(ansiRed)
				b.WriteByte('X')
			case 'O':
				b.WriteString(ansiGreen)
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(ansiReset)
	return b.String()
}
