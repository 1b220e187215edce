package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/io"
)

// boot parses a program source and attaches a scripted channel.
func boot(t *testing.T, source string, inputs []int32) (cpu *Cpu, queue *io.Queue) {
	require := require.New(t)

	prog, err := ParseProgram(strings.NewReader(source))
	require.NoError(err)

	cpu = prog.Boot()
	queue = &io.Queue{Inputs: inputs}
	cpu.SetChannel(queue)

	return
}

func TestCpu_Run(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		source  string
		inputs  []int32
		cells   []int32 // nil to skip the final-state check
		outputs []int32
	}){
		{
			name:   "add_mul_chain",
			source: "1,9,10,3,2,3,11,0,99,30,40,50",
			cells:  []int32{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50},
		},
		{
			name:   "add_self",
			source: "1,0,0,0,99",
			cells:  []int32{2, 0, 0, 0, 99},
		},
		{
			name:   "mul_rewrites_dst",
			source: "2,3,0,3,99",
			cells:  []int32{2, 3, 0, 6, 99},
		},
		{
			name:   "mul_square",
			source: "2,4,4,5,99,0",
			cells:  []int32{2, 4, 4, 5, 99, 9801},
		},
		{
			name:   "add_rewrites_code",
			source: "1,1,1,4,99,5,6,0,99",
			cells:  []int32{30, 1, 1, 4, 2, 5, 6, 0, 99},
		},
		{
			name:    "input_to_output",
			source:  "3,0,4,0,99",
			inputs:  []int32{42},
			cells:   []int32{42, 0, 4, 0, 99},
			outputs: []int32{42},
		},
		{
			name:   "immediate_mul_writes_position",
			source: "1002,4,3,4,33",
			cells:  []int32{1002, 4, 3, 4, 99},
		},
		{
			name:    "eq_eight_true",
			source:  "3,9,8,9,10,9,4,9,99,-1,8",
			inputs:  []int32{8},
			outputs: []int32{1},
		},
		{
			name:    "eq_eight_false",
			source:  "3,9,8,9,10,9,4,9,99,-1,8",
			inputs:  []int32{7},
			outputs: []int32{0},
		},
	}

	for _, entry := range table {
		cpu, queue := boot(t, entry.source, entry.inputs)

		err := cpu.Run()
		assert.NoError(err, entry.name)
		assert.Equal(HALTED, cpu.State(), entry.name)

		if entry.cells != nil {
			assert.Equal(entry.cells, cpu.Snapshot(), entry.name)
		}
		assert.Equal(entry.outputs, queue.Outputs, entry.name)
	}
}

func TestCpu_ModeCoverage(t *testing.T) {
	assert := assert.New(t)

	// Layout: opcode, src1, src2, dst=5, HALT, result, 7, 3.
	// Position operands point at the 7 and 3 cells; immediates carry
	// the same values directly.
	table := [](struct {
		name   string
		opcode int32
		src1   int32
		src2   int32
		result int32
	}){
		{"add_pos_pos", 1, 6, 7, 10},
		{"add_imm_pos", 101, 7, 7, 10},
		{"add_pos_imm", 1001, 6, 3, 10},
		{"add_imm_imm", 1101, 7, 3, 10},
		{"mul_pos_pos", 2, 6, 7, 21},
		{"mul_imm_pos", 102, 7, 7, 21},
		{"mul_pos_imm", 1002, 6, 3, 21},
		{"mul_imm_imm", 1102, 7, 3, 21},
		{"lt_pos_pos", 7, 6, 7, 0},
		{"lt_imm_pos", 107, 2, 7, 1},
		{"lt_pos_imm", 1007, 6, 9, 1},
		{"lt_imm_imm", 1107, 7, 3, 0},
		{"eq_pos_pos", 8, 6, 7, 0},
		{"eq_imm_pos", 108, 3, 7, 1},
		{"eq_pos_imm", 1008, 6, 7, 1},
		{"eq_imm_imm", 1108, 7, 7, 1},
	}

	for _, entry := range table {
		cpu := NewCpu([]int32{entry.opcode, entry.src1, entry.src2, 5, 99, 0, 7, 3})

		err := cpu.Run()
		assert.NoError(err, entry.name)

		value, ok := cpu.Get(5)
		assert.True(ok, entry.name)
		assert.Equal(entry.result, value, entry.name)
	}
}

func TestCpu_Jumps(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		source  string
		inputs  []int32
		outputs []int32
	}){
		// Position-mode jump test: outputs 0 when input is 0, else 1.
		{"jz_pos_zero", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", []int32{0}, []int32{0}},
		{"jz_pos_nonzero", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", []int32{7}, []int32{1}},
		// Immediate-mode jump test, same contract.
		{"jnz_imm_zero", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", []int32{0}, []int32{0}},
		{"jnz_imm_nonzero", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", []int32{5}, []int32{1}},
	}

	for _, entry := range table {
		cpu, queue := boot(t, entry.source, entry.inputs)

		err := cpu.Run()
		assert.NoError(err, entry.name)
		assert.Equal(entry.outputs, queue.Outputs, entry.name)
	}
}

func TestCpu_Faults(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		cells  []int32
		inputs []int32
		kind   FaultKind
	}){
		{name: "undefined_opcode", cells: []int32{0, 0, 0, 99}, kind: InvalidOpcode},
		{name: "negative_opcode", cells: []int32{-1, 0, 0, 99}, kind: InvalidOpcode},
		{name: "bad_mode_digit", cells: []int32{202, 0, 0, 0, 99}, kind: InvalidOperand},
		{name: "bad_mode_on_output", cells: []int32{204, 0, 99}, kind: InvalidOperand},
		{name: "fetch_off_end", cells: []int32{1, 0, 0}, kind: OutOfBounds},
		{name: "operand_read_oob", cells: []int32{1, 50, 1, 1, 99}, kind: OutOfBounds},
		{name: "dst_write_oob", cells: []int32{1101, 1, 1, 50, 99}, kind: OutOfBounds},
		{name: "negative_jump_target", cells: []int32{1105, 1, -3, 99}, kind: OutOfBounds},
		{name: "input_exhausted", cells: []int32{3, 0, 99}, kind: InvalidInput},
		{name: "input_dst_oob", cells: []int32{3, 50, 99}, inputs: []int32{1}, kind: OutOfBounds},
	}

	for _, entry := range table {
		cpu := NewCpu(entry.cells)
		cpu.SetChannel(&io.Queue{Inputs: entry.inputs})

		err := cpu.Run()
		assert.ErrorIs(err, &Fault{Kind: entry.kind}, entry.name)
	}
}

func TestCpu_InputWithoutChannel(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int32{3, 0, 99})

	err := cpu.Run()
	assert.ErrorIs(err, &Fault{Kind: InvalidInput})
}

func TestCpu_HaltIsFinal(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int32{99})

	state, err := cpu.Step()
	assert.NoError(err)
	assert.Equal(HALTED, state)
	assert.Equal(0, cpu.Pc())

	// Stepping a halted machine is a no-op.
	state, err = cpu.Step()
	assert.NoError(err)
	assert.Equal(HALTED, state)
	assert.Equal(0, cpu.Pc())
}

func TestCpu_FaultFreezesMachine(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int32{1, 50, 1, 1, 99})

	_, err := cpu.Step()
	assert.ErrorIs(err, &Fault{Kind: OutOfBounds})

	pc := cpu.Pc()
	cells := cpu.Snapshot()

	// A faulted machine may be inspected but never stepped again.
	_, again := cpu.Step()
	assert.Equal(err, again)
	assert.Equal(pc, cpu.Pc())
	assert.Equal(cells, cpu.Snapshot())
}

func TestCpu_FaultLeavesPc(t *testing.T) {
	assert := assert.New(t)

	// First instruction succeeds, second faults; the PC must still
	// name the faulting instruction.
	cpu := NewCpu([]int32{1101, 1, 1, 0, 1, 50, 1, 1, 99})

	_, err := cpu.Step()
	assert.NoError(err)
	assert.Equal(4, cpu.Pc())

	_, err = cpu.Step()
	assert.ErrorIs(err, &Fault{Kind: OutOfBounds})
	assert.Equal(4, cpu.Pc())
}

func TestCpu_Determinism(t *testing.T) {
	assert := assert.New(t)

	source := "3,9,8,9,10,9,4,9,99,-1,8"

	first, firstQueue := boot(t, source, []int32{8})
	assert.NoError(first.Run())

	second, secondQueue := boot(t, source, []int32{8})
	assert.NoError(second.Run())

	assert.Equal(first.Snapshot(), second.Snapshot())
	assert.Equal(firstQueue.Outputs, secondQueue.Outputs)
}

func TestCpu_Accessors(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int32{1, 12, 2, 0, 99})

	assert.Equal(5, cpu.Len())
	assert.Equal(RUNNING, cpu.State())
	assert.Equal(int32(1), cpu.Output())
	assert.Equal(int32(12), cpu.Noun())
	assert.Equal(int32(2), cpu.Verb())

	_, ok := cpu.Get(-1)
	assert.False(ok)
	_, ok = cpu.Get(5)
	assert.False(ok)

	// Snapshot is a copy, not a view.
	cells := cpu.Snapshot()
	cells[0] = 77
	value, _ := cpu.Get(0)
	assert.Equal(int32(1), value)

	var total int32
	for pos, value := range cpu.Cells() {
		assert.GreaterOrEqual(pos, 0)
		total += value
	}
	assert.Equal(int32(1+12+2+0+99), total)
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	image := []int32{1, 0, 0, 0, 99}

	cpu := NewCpu(image)
	assert.NoError(cpu.Run())
	assert.Equal(int32(2), cpu.Output())

	cpu.Reset(image)
	assert.Equal(0, cpu.Pc())
	assert.Equal(RUNNING, cpu.State())
	assert.Equal(image, cpu.Snapshot())
}

func TestCpu_OwnsImage(t *testing.T) {
	assert := assert.New(t)

	image := []int32{1, 0, 0, 0, 99}
	cpu := NewCpu(image)

	// The machine runs over its own copy of the cells.
	assert.NoError(cpu.Run())
	assert.Equal([]int32{1, 0, 0, 0, 99}, image)
}
