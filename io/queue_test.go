package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_ReadOrder(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{Inputs: []int32{7, -3, 0}}

	for _, want := range []int32{7, -3, 0} {
		value, err := queue.ReadInt()
		assert.NoError(err)
		assert.Equal(want, value)
	}

	_, err := queue.ReadInt()
	assert.Equal(ErrInputExhausted, err)
}

func TestQueue_WriteCollects(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{}

	assert.NoError(queue.WriteInt(1))
	assert.NoError(queue.WriteInt(-9))
	assert.Equal([]int32{1, -9}, queue.Outputs)
}

func TestQueue_Rewind(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{Inputs: []int32{5}}

	value, err := queue.ReadInt()
	assert.NoError(err)
	assert.Equal(int32(5), value)
	assert.NoError(queue.WriteInt(10))

	queue.Rewind()

	// The script is restored and the collected outputs are gone.
	value, err = queue.ReadInt()
	assert.NoError(err)
	assert.Equal(int32(5), value)
	assert.Nil(queue.Outputs)
}
