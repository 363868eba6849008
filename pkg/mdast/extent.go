package mdast

// goldmark records the content lines of a block but not its markers. The
// helpers here widen content positions to cover the whole construct. All
// offsets are relative to converter.source.

// lineEnd returns the offset of the line ending at or after i.
func lineEnd(src []byte, i int) int {
	for i < len(src) && src[i] != '\n' && src[i] != '\r' {
		i++
	}
	return i
}

// nextLine returns the start of the line after the one ending at end.
func nextLine(src []byte, end int) int {
	if end < len(src) && src[end] == '\r' {
		end++
	}
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return end
}

func skipBackBlanks(src []byte, i int) int {
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	return i
}

// rel converts an absolute position to source offsets.
func (c *converter) rel(pos *Position) (int, int) {
	return pos.Start - c.base, pos.End - c.base
}

func (c *converter) abs(start, end int) *Position {
	return &Position{Start: c.base + start, End: c.base + end}
}

// headingPos widens heading content to the ATX markers and closing
// sequence, or to the setext underline.
func (c *converter) headingPos(pos *Position) *Position {
	if pos == nil {
		return nil
	}
	src := c.source
	start, end := c.rel(pos)
	i := skipBackBlanks(src, start)
	if i > 0 && src[i-1] == '#' {
		for i > 0 && src[i-1] == '#' {
			i--
		}
		return c.abs(i, trimTrailing(src, lineEnd(src, end)))
	}
	if next := nextLine(src, lineEnd(src, end)); next < len(src) {
		end = trimTrailing(src, lineEnd(src, next))
	}
	return c.abs(start, end)
}

// quotePos widens a blockquote's content to its leading '>'.
func (c *converter) quotePos(pos *Position) *Position {
	if pos == nil {
		return nil
	}
	start, end := c.rel(pos)
	i := skipBackBlanks(c.source, start)
	if i > 0 && c.source[i-1] == '>' {
		start = i - 1
	}
	return c.abs(start, end)
}

// itemPos widens a list item's content to its bullet or ordinal.
func (c *converter) itemPos(pos *Position) *Position {
	if pos == nil {
		return nil
	}
	src := c.source
	start, end := c.rel(pos)
	i := skipBackBlanks(src, start)
	switch {
	case i > 0 && (src[i-1] == '-' || src[i-1] == '*' || src[i-1] == '+'):
		start = i - 1
	case i > 0 && (src[i-1] == '.' || src[i-1] == ')'):
		j := i - 1
		for j > 0 && src[j-1] >= '0' && src[j-1] <= '9' {
			j--
		}
		if j < i-1 {
			start = j
		}
	}
	return c.abs(start, end)
}

// rowPos widens table content to the outer pipes of its first and last
// lines.
func (c *converter) rowPos(pos *Position) *Position {
	if pos == nil {
		return nil
	}
	src := c.source
	start, end := c.rel(pos)
	for start > 0 && (src[start-1] == ' ' || src[start-1] == '\t' || src[start-1] == '|') {
		start--
	}
	for end < len(src) && (src[end] == ' ' || src[end] == '\t' || src[end] == '|') {
		end++
	}
	return c.abs(start, trimTrailing(src, end))
}

// advance moves the scan cursor past a converted block.
func (c *converter) advance(n Node) {
	if pos := n.Pos(); pos != nil && pos.End-c.base > c.cursor {
		c.cursor = pos.End - c.base
	}
}

// thematicBreakPos finds the first thematic break line after everything
// converted so far. Blocks convert in source order, so that line is the
// one goldmark parsed.
func (c *converter) thematicBreakPos() *Position {
	src := c.source
	for i := c.cursor; i < len(src); {
		end := lineEnd(src, i)
		if off, ok := breakIn(src[i:end]); ok {
			c.cursor = end
			return c.abs(i+off, trimTrailing(src, end))
		}
		next := nextLine(src, end)
		if next == i {
			break
		}
		i = next
	}
	return nil
}

// breakIn reports where a thematic break starts in line, looking past
// blockquote and list markers.
func breakIn(line []byte) (int, bool) {
	off := 0
	for {
		for off < len(line) && (line[off] == ' ' || line[off] == '\t') {
			off++
		}
		if isThematicBreak(line[off:]) {
			return off, true
		}
		n := containerMarker(line[off:])
		if n == 0 {
			return 0, false
		}
		off += n
	}
}

func isThematicBreak(b []byte) bool {
	var marker byte
	count := 0
	for _, ch := range b {
		switch ch {
		case ' ', '\t':
		case '-', '*', '_':
			if marker != 0 && ch != marker {
				return false
			}
			marker = ch
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// containerMarker returns the length of a leading '>' or list marker.
func containerMarker(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	if b[0] == '>' {
		return 1
	}
	if len(b) > 1 && (b[0] == '-' || b[0] == '*' || b[0] == '+') && (b[1] == ' ' || b[1] == '\t') {
		return 2
	}
	i := 0
	for i < len(b) && i < 9 && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(b) && (b[i] == '.' || b[i] == ')') && (b[i+1] == ' ' || b[i+1] == '\t') {
		return i + 2
	}
	return 0
}
