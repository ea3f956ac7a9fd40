package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapDuration(t *testing.T) {
	assert.Equal(t, 2, overlapDuration(9, 11, 9, 13))
	assert.Equal(t, 0, overlapDuration(9, 10, 10, 14))
	assert.Equal(t, 1, overlapDuration(9, 11, 10, 13))
	assert.Equal(t, 0, overlapDuration(9, 10, 11, 12))
}
