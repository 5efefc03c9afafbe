package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		eval Evaluation
		want Decision
	}{
		{
			name: "perfect score with approve sends",
			eval: Evaluation{OverallScore: 100, Recommendation: RecommendApprove},
			want: DecisionSend,
		},
		{
			name: "perfect score with revise still revises",
			eval: Evaluation{OverallScore: 100, Recommendation: RecommendRevise},
			want: DecisionRevise,
		},
		{
			name: "near perfect score revises",
			eval: Evaluation{OverallScore: 99, Recommendation: RecommendApprove},
			want: DecisionRevise,
		},
		{
			name: "zero score revises",
			eval: Evaluation{OverallScore: 0, Recommendation: RecommendRevise},
			want: DecisionRevise,
		},
		{
			name: "missing recommendation revises",
			eval: Evaluation{OverallScore: 100},
			want: DecisionRevise,
		},
		{
			name: "unknown recommendation revises",
			eval: Evaluation{OverallScore: 100, Recommendation: "MAYBE"},
			want: DecisionRevise,
		},
		{
			name: "zero value evaluation revises",
			eval: Evaluation{},
			want: DecisionRevise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.eval))
		})
	}
}
