package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

func TestDifficulty_Clamp(t *testing.T) {
	tests := []struct {
		in   types.Difficulty
		want types.Difficulty
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{9, 5},
	}

	for _, tt := range tests {
		gt.Value(t, tt.in.Clamp()).Equal(tt.want)
	}
}

func TestDifficulty_DefaultPoints(t *testing.T) {
	gt.Value(t, types.Difficulty(1).DefaultPoints()).Equal(types.Points(5))
	gt.Value(t, types.Difficulty(2).DefaultPoints()).Equal(types.Points(8))
	gt.Value(t, types.Difficulty(5).DefaultPoints()).Equal(types.Points(20))
	gt.Value(t, types.Difficulty(7).DefaultPoints()).Equal(types.Points(20))
}

func TestPoints_Clamp(t *testing.T) {
	gt.Value(t, types.Points(1).Clamp()).Equal(types.Points(5))
	gt.Value(t, types.Points(12).Clamp()).Equal(types.Points(12))
	gt.Value(t, types.Points(999).Clamp()).Equal(types.Points(20))
}

func TestRelationshipType(t *testing.T) {
	for _, r := range types.AllRelationshipTypes() {
		gt.Bool(t, r.IsKnown()).True()
		gt.Value(t, r.Label()).Equal(r.String())
	}

	gt.Bool(t, types.RelationshipType("Neighbor").IsKnown()).False()
	gt.Value(t, types.RelationshipType(" Neighbor ").Label()).Equal("Neighbor")
	gt.Value(t, types.RelationshipType("").Label()).Equal("Other")
}
