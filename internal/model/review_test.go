package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRating(t *testing.T) {
	cases := []struct {
		name       string
		ratings    []int
		wantRating float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{3}, 3},
		{"two fours then a five", []int{4, 4, 5}, 4.33},
		{"mixed", []int{1, 2, 5, 5}, 3.25},
		{"all max", []int{5, 5, 5, 5, 5}, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum := 0
			for _, r := range tc.ratings {
				sum += r
			}

			rating, total := AggregateRating(len(tc.ratings), sum)
			assert.Equal(t, len(tc.ratings), total)
			assert.InDelta(t, tc.wantRating, rating, 0.001)
		})
	}
}

func TestAggregateRatingStaysInRange(t *testing.T) {
	for count := 1; count <= 50; count++ {
		for sum := count * MinRating; sum <= count*MaxRating; sum++ {
			rating, total := AggregateRating(count, sum)
			assert.Equal(t, count, total)
			assert.GreaterOrEqual(t, rating, float64(MinRating))
			assert.LessOrEqual(t, rating, float64(MaxRating))
		}
	}
}
