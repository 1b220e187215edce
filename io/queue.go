package io

// Queue is a scripted in-memory channel. ReadInt pops from the Inputs
// list in order; WriteInt appends to Outputs. Rewind restores the full
// input script and clears the collected outputs, which makes machine
// reruns fully deterministic.
type Queue struct {
	Inputs  []int32
	Outputs []int32

	readIndex int
}

var _ Channel = (*Queue)(nil)

// Rewind restores the scripted inputs and clears collected outputs.
func (q *Queue) Rewind() {
	q.readIndex = 0
	q.Outputs = nil
}

// ReadInt pops the next scripted input. Returns ErrInputExhausted when
// the script runs out.
func (q *Queue) ReadInt() (value int32, err error) {
	if q.readIndex >= len(q.Inputs) {
		err = ErrInputExhausted
		return
	}

	value = q.Inputs[q.readIndex]
	q.readIndex++
	return
}

// WriteInt collects one output value.
func (q *Queue) WriteInt(value int32) (err error) {
	q.Outputs = append(q.Outputs, value)
	return
}
