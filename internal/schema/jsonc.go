package schema

// StripComments removes `//` line comments and `/* */` block comments
// from JSON text. Schema files routinely start with a license block
// comment and contain line comments, neither of which plain JSON allows.
// Newlines inside block comments are preserved so that line numbers in
// later error messages stay meaningful. String literals are left intact.
func StripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))

	const (
		code = iota
		str
		lineComment
		blockComment
	)

	state := code
	for i := 0; i < len(data); i++ {
		c := data[i]

		switch state {
		case code:
			switch {
			case c == '"':
				state = str
				out = append(out, c)
			case c == '/' && i+1 < len(data) && data[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(data) && data[i+1] == '*':
				state = blockComment
				i++
			default:
				out = append(out, c)
			}
		case str:
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				out = append(out, data[i+1])
				i++
			} else if c == '"' {
				state = code
			}
		case lineComment:
			if c == '\n' {
				state = code
				out = append(out, c)
			}
		case blockComment:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				state = code
				i++
			} else if c == '\n' {
				out = append(out, c)
			}
		}
	}

	return out
}
