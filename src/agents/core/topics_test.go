package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EfeDurmaz16/assos/src/vector"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		taskType TaskType
		want     string
		ok       bool
	}{
		{"comprehensive_research", vector.CollectionResearchData, true},
		{"content_ideation", vector.CollectionResearchData, true},
		{"script_generation", vector.CollectionVideoScripts, true},
		{"content_optimization", vector.CollectionVideoScripts, true},
		{"performance_analysis", vector.CollectionPerformanceData, true},
		{"channel_analytics", vector.CollectionPerformanceData, true},
		{"Research_Deep", vector.CollectionResearchData, true},
		{"viral_prediction", "", false},
		{"hook_generation", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.taskType), func(t *testing.T) {
			got, ok := Bucket(tt.taskType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
