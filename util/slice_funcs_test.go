package util

import (
	"strconv"
	"testing"

	"github.com/nalgeon/be"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	be.Equal(t, got, []string{"1", "2", "3"})

	be.Equal(t, len(Map([]int(nil), strconv.Itoa)), 0)
}
