// Package calibrate distributes a day's time budget over its slots.
//
// A day is split into blocks, each starting at an anchor (a slot with a
// fixed start, or the first slot of the day) and running up to the next
// anchor or the end of the day. Inside a block, fixed-length slots keep
// their requested time and flexible slots share the rest in proportion to
// what they requested.
package calibrate

import (
	"math"

	"github.com/javiermolinar/daybox/internal/slot"
)

// Block is a maximal run of slots from one anchor up to, but not including,
// the next one. It is derived on every pass and never persisted.
type Block struct {
	StartIndex  int     // first slot in the block
	EndIndex    int     // one past the last slot in the block
	FixedTime   int     // requested minutes of fixed-length slots
	ReqTime     int     // requested minutes of flexible slots
	BlockLength int     // wall-clock minutes the block must fill
	Ratio       float64 // scale applied to flexible requested time
}

// Len returns the number of slots in the block.
func (b Block) Len() int {
	return b.EndIndex - b.StartIndex
}

// Degenerate reports whether the block has no flexible time to scale.
func (b Block) Degenerate() bool {
	return b.ReqTime == 0
}

// OverCommitted reports whether fixed-length slots need more time than the block has.
func (b Block) OverCommitted() bool {
	return b.BlockLength < b.FixedTime
}

// Partition splits slots into blocks, in order, so that every index in
// [0, len(slots)) belongs to exactly one block. dayEnd closes the last block.
// Block starts are read from the slots' current Start values, so the caller
// must have placed the first slot before partitioning.
func Partition(slots []slot.Slot, dayEnd int) []Block {
	blocks := make([]Block, 0, 1)
	var current Block

	for i, s := range slots {
		if i == 0 || s.FixedTime {
			current = Block{StartIndex: i}
		}

		if s.FixedLength {
			current.FixedTime += s.ReqTime
		} else {
			current.ReqTime += s.ReqTime
		}

		isLast := i+1 == len(slots)
		if !isLast && !slots[i+1].FixedTime {
			continue
		}

		blockEnd := dayEnd
		if !isLast {
			blockEnd = slots[i+1].Start
		}
		current.EndIndex = i + 1
		current.BlockLength = blockEnd - slots[current.StartIndex].Start
		current.Ratio = ratio(current.BlockLength, current.FixedTime, current.ReqTime)
		blocks = append(blocks, current)
	}

	return blocks
}

// ratio is 1 when there is no flexible time; there is nothing to scale then.
// It may be negative for an over-committed block, scale clamps the result.
func ratio(length, fixed, flexible int) float64 {
	if flexible == 0 {
		return 1
	}
	return float64(length-fixed) / float64(flexible)
}

// scale returns reqtime scaled by ratio, rounded to the nearest minute, never negative.
func scale(reqtime int, ratio float64) int {
	v := math.Round(float64(reqtime) * ratio)
	if v < 0 {
		return 0
	}
	return int(v)
}
