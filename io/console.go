package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console adapts line-oriented host streams to the Channel interface.
// Each ReadInt prompts on Output and parses one line from Input as a
// signed decimal integer; each WriteInt prints one line to Output.
type Console struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
}

var _ Channel = (*Console)(nil)

// Rewind is not possible on a console.
func (con *Console) Rewind() {
}

// ReadInt prompts for and reads one integer from the input stream.
func (con *Console) ReadInt() (value int32, err error) {
	if con.reader == nil {
		con.reader = bufio.NewReader(con.Input)
	}

	fmt.Fprintf(con.Output, "Input value: ")

	line, err := con.reader.ReadString('\n')
	if err != nil && len(line) == 0 {
		return
	}

	line = strings.TrimSpace(line)
	v64, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		err = ErrParseInput(line)
		return
	}

	value = int32(v64)
	return
}

// WriteInt prints one integer to the output stream.
func (con *Console) WriteInt(value int32) (err error) {
	_, err = fmt.Fprintf(con.Output, "Program output: %v\n", value)
	return
}
