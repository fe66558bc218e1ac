package game

import "strings"

// Render draws the board with '|' between cells and a dashed rule under each row.
func Render(b *Board) string {
	width := (BoardSize << 1) - 1

	var sb strings.Builder
	sb.Grow((width+1)*BoardSize*2 + 2)
	sb.WriteString("\n\n")
	for r := 0; r < BoardSize; r++ {
		for j := 0; j < width; j++ {
			if j&1 == 1 {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(byte(b[r*BoardSize+j/2]))
			}
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteByte('\n')
	}
	return sb.String()
}
