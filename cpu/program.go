package cpu

import (
	"io"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Program is a loaded cell image, ready to boot a machine.
type Program struct {
	Cells []int32
}

// ParseProgram reads a single line of comma-separated signed decimal
// integers. Whitespace around each element and a trailing newline are
// tolerated; empty elements are errors. An element of the form $( ... )
// is evaluated as a starlark integer expression at load time.
func ParseProgram(r io.Reader) (prog *Program, err error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return
	}

	prog = &Program{}

	for n, word := range strings.Split(strings.TrimSpace(string(text)), ",") {
		word = strings.TrimSpace(word)

		var value int64
		if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
			value, err = parenEval(word[2 : len(word)-1])
		} else {
			value, err = strconv.ParseInt(word, 10, 32)
			if err != nil {
				err = &ErrParseCell{Index: n, Text: word, Err: err}
			}
		}
		if err != nil {
			prog = nil
			return
		}

		prog.Cells = append(prog.Cells, int32(value))
	}

	return
}

// SetNounVerb patches cells 1 and 2, the machine inputs by puzzle
// convention. Returns false when the image is too short to patch.
func (prog *Program) SetNounVerb(noun, verb int32) (ok bool) {
	if len(prog.Cells) < 3 {
		return
	}

	prog.Cells[1] = noun
	prog.Cells[2] = verb
	return true
}

// Boot creates a machine over a copy of the image.
func (prog *Program) Boot() *Cpu {
	return NewCpu(prog.Cells)
}

// parenEval does load-time $(...) evaluations.
func parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	src := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", src, starlark.StringDict{})
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok || value > 0x7fffffff || value < -0x80000000 {
		err = ErrParseExpression(expr)
		return
	}

	return
}
