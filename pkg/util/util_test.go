package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseG(t *testing.T) {
	arr := []int{1, 2, 3, 4}
	rev := ReverseG(arr)

	assert.Equal(t, []int{4, 3, 2, 1}, rev)
	assert.Equal(t, []int{1, 2, 3, 4}, arr, "input must not be modified")
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 1.23, RoundFloat(1.2345, 2))
	assert.Equal(t, 21.028511, RoundFloat(21.0285114, 6))
}

func TestRemoveFirst(t *testing.T) {
	assert.Equal(t, []string{"a", "c", "b"}, RemoveFirst([]string{"a", "b", "c", "b"}, "b"))
	assert.Equal(t, []string{"a"}, RemoveFirst([]string{"a"}, "x"))
}

func TestWrapErrorf(t *testing.T) {
	orig := assert.AnError
	err := WrapErrorf(orig, ErrNotFound, "edge %s not found", "e1")

	assert.ErrorIs(t, err, orig)
	assert.Equal(t, "edge e1 not found: "+orig.Error(), err.Error())

	var werr *Error
	assert.ErrorAs(t, err, &werr)
	assert.Equal(t, ErrNotFound, werr.Code())
	assert.Equal(t, "edge e1 not found", werr.Message())
}
