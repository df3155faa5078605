package block_test

import (
	"testing"

	"github.com/harmonicon/harmonicon/block"
)

func TestStereo(t *testing.T) {
	for _, tc := range []struct {
		left, right, shift          float32
		wantMono, wantL, wantR float32
	}{
		{1, 1, 0, 1.5, 0.5, 0.5},
		{1, 0, -1, 1, 1, 0},
		{1, 0, 1, 1, 0, 1},
		{0.5, 2, 0, 1.5, 0.25, 0.25},
		// the right source never reaches the channels
		{0, 1, 0, 0.5, 0, 0},
	} {
		s := block.NewStereo()
		s.SetLeft(block.Owned(block.NewConstant(tc.left)))
		s.SetRight(block.Owned(block.NewConstant(tc.right)))
		s.SetShift(block.Owned(block.NewConstant(tc.shift)))
		if s.Mono() != tc.wantMono || s.Left() != tc.wantL || s.Right() != tc.wantR {
			t.Errorf("stereo(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				tc.left, tc.right, tc.shift, s.Mono(), s.Left(), s.Right(), tc.wantMono, tc.wantL, tc.wantR)
		}
	}
}

func TestStereoChildrenOrder(t *testing.T) {
	s := block.NewStereo()
	s.SetLeft(block.Owned(block.NewConstant(1)))
	s.SetRight(block.Owned(block.NewConstant(2)))
	s.SetShift(block.Owned(block.NewConstant(3)))
	for i, c := range s.Children() {
		if c.Mono() != float32(i+1) {
			t.Errorf("child %d = %v, want %v", i, c.Mono(), i+1)
		}
	}
}
