package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	assert.True(t, Percent(NewMoney(100), NewMoney(18)).Equal(NewMoney(18)))
	assert.True(t, Percent(NewMoney(250), NewMoney(4)).Equal(NewMoney(10)))
}

func TestFloat2(t *testing.T) {
	assert.Equal(t, 10.35, Float2(MustMoney("10.345")))
	assert.Equal(t, -10.35, Float2(MustMoney("-10.345")))
	assert.Equal(t, 0.0, Float2(Zero()))
}

func TestSumFloat2(t *testing.T) {
	// Plain float64 addition gives 0.30000000000000004 here.
	assert.Equal(t, 0.3, SumFloat2(0.1, 0.2))
	assert.Equal(t, 243.3, SumFloat2(100, 143.3))
	assert.Equal(t, 0.0, SumFloat2())
}
