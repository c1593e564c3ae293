package particles

import (
	"math/rand"
	"testing"

	"github.com/sethgrid/beagle/internal/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolEvictsOldest(t *testing.T) {
	p := NewPool[int](3)
	for i := 1; i <= 5; i++ {
		p.Push(i)
		assert.LessOrEqual(t, p.Len(), p.Cap())
	}
	assert.Equal(t, []int{3, 4, 5}, p.Items())
}

func TestPoolUpdateKeepsOrder(t *testing.T) {
	p := NewPool[int](4)
	for i := 1; i <= 6; i++ {
		p.Push(i)
	}
	p.Update(func(v *int) bool {
		*v *= 10
		return *v != 40
	})
	assert.Equal(t, []int{30, 50, 60}, p.Items())

	p.Push(7)
	p.Push(8)
	assert.Equal(t, []int{50, 60, 7, 8}, p.Items())

	p.Clear()
	assert.Zero(t, p.Len())
	assert.Empty(t, p.Items())
}

func TestPoolsNeverExceedCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bubbles := NewPool[Bubble](MaxBubbles)
	paws := NewPool[PawPrint](MaxPawPrints)

	for frame := 0; frame < 600; frame++ {
		for i := 0; i < 7; i++ {
			bubbles.Push(NewBubble(rng, "!", kinematics.Vec{X: 10, Y: 10}))
			paws.Push(NewPawPrint(rng, kinematics.Vec{X: 10, Y: 10}, Side(i%2), false))
		}
		bubbles.Update(func(b *Bubble) bool { return StepBubble(b, 1.0/60) })
		paws.Update(func(p *PawPrint) bool { return StepPaw(p, 1.0/60) })

		require.LessOrEqual(t, bubbles.Len(), MaxBubbles)
		require.LessOrEqual(t, paws.Len(), MaxPawPrints)
	}
}

func TestBubbleExpires(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := NewBubble(rng, "z", kinematics.Vec{X: 100, Y: 100})
	assert.InDelta(t, 100, b.Pos.X, 10)
	assert.LessOrEqual(t, b.VY, -40.0)
	assert.GreaterOrEqual(t, b.VY, -60.0)

	assert.True(t, StepBubble(&b, 0.75))
	assert.InDelta(t, 0.5, b.Alpha, 1e-9)
	assert.Less(t, b.Pos.Y, 100.0)
	assert.False(t, StepBubble(&b, 0.75))
	assert.Zero(t, b.Alpha)
}

func TestPawPrint(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	left := NewPawPrint(rng, kinematics.Vec{X: 50, Y: 0}, SideLeft, false)
	right := NewPawPrint(rng, kinematics.Vec{X: 50, Y: 0}, SideRight, false)
	mirrored := NewPawPrint(rng, kinematics.Vec{X: 50, Y: 0}, SideLeft, true)
	assert.Equal(t, 46.0, left.Pos.X)
	assert.Equal(t, 54.0, right.Pos.X)
	assert.Equal(t, 54.0, mirrored.Pos.X)
	assert.Equal(t, SideRight, SideLeft.Other())

	assert.True(t, StepPaw(&left, 0.9))
	assert.InDelta(t, 0.05, left.Alpha, 1e-9)
	assert.False(t, StepPaw(&left, 0.2))

	assert.False(t, ShouldEmitPaw(kinematics.Vec{}, kinematics.Vec{X: 24.9}))
	assert.True(t, ShouldEmitPaw(kinematics.Vec{}, kinematics.Vec{X: 15, Y: 20}))
}
