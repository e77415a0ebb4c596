package gen

import "strings"

// stringBuilder is used to build the generated declaration text. It
// tracks indentation and applies it lazily after each new line.
type stringBuilder struct {
	strings.Builder
	newLine bool
	indent  int
}

const indentUnit = "    "

func (s *stringBuilder) Indent() {
	s.indent += 1
}

func (s *stringBuilder) DeIndent() {
	s.indent -= 1
}

func (s *stringBuilder) WriteNewLine() {
	_ = s.Builder.WriteByte('\n')
	s.newLine = true
}

func (s *stringBuilder) WriteString(str string) {
	s.checkNewline()
	_, _ = s.Builder.WriteString(str)
}

func (s *stringBuilder) WriteLine(str string) {
	s.WriteString(str)
	s.WriteNewLine()
}

// WriteLines writes a possibly multi-line string, re-indenting every
// line to the current level.
func (s *stringBuilder) WriteLines(str string) {
	for _, line := range strings.Split(str, "\n") {
		s.WriteLine(line)
	}
}

func (s *stringBuilder) checkNewline() {
	if s.newLine {
		s.newLine = false
		for i := 0; i < s.indent; i += 1 {
			_, _ = s.Builder.WriteString(indentUnit)
		}
	}
}
