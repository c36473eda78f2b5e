package core

import (
	"strings"

	"github.com/EfeDurmaz16/assos/src/vector"
)

type topicRule struct {
	needles    []string
	collection string
}

// Rules are checked in order; the first match wins.
var topicRules = []topicRule{
	{needles: []string{"research", "ideation"}, collection: vector.CollectionResearchData},
	{needles: []string{"script", "content"}, collection: vector.CollectionVideoScripts},
	{needles: []string{"performance", "analytics"}, collection: vector.CollectionPerformanceData},
}

// Bucket maps a task type onto the semantic-index collection holding related items.
func Bucket(taskType TaskType) (string, bool) {
	name := strings.ToLower(string(taskType))
	for _, rule := range topicRules {
		for _, needle := range rule.needles {
			if strings.Contains(name, needle) {
				return rule.collection, true
			}
		}
	}
	return "", false
}
