package manus

import "fmt"

func researchPrompt(niche string) string {
	return fmt.Sprintf(`As the Manus orchestrator, analyze the current content landscape for the niche: %s.

Consider:
- Current trending topics
- Audience interests and pain points
- Content gaps in the market
- Competitive landscape
- Seasonal relevance

Provide a strategic content recommendation with:
1. Primary topic focus
2. Content angle and unique value proposition
3. Target keywords for SEO
4. Estimated performance metrics
5. Resource requirements`, niche)
}

func strategyPrompt(research string) string {
	return fmt.Sprintf(`Based on this research: %s

Create a comprehensive video creation strategy including:

1. Content Structure: hook (first 15 seconds), main segments, retention tactics, call-to-action placement
2. Production Requirements: script length and style, visual elements, audio requirements, editing complexity
3. Optimization Strategy: title variations for A/B testing, thumbnail concepts, description and tag strategy
4. Success Metrics: expected CTR range, target retention rate, engagement predictions, revenue potential

Format as JSON for easy parsing.`, research)
}

func planningPrompt(channel, performance, goals string) string {
	return fmt.Sprintf(`As Manus, create a comprehensive strategic plan for this YouTube channel:

Channel Data: %s
Current Performance: %s
Goals: %s

Cover content strategy (pillars, cadence, seasonal calendar, series vs evergreen mix),
audience growth (expansion, community, collaborations, cross-platform promotion),
monetization (revenue streams, sponsorships, product placement, merchandise),
performance optimization (algorithm tactics, engagement, retention, SEO), and
resource allocation (budget, time, tooling, team).

Provide specific, actionable recommendations with timelines and success metrics.`, channel, performance, goals)
}

func optimizationPrompt(performance, analytics string) string {
	return fmt.Sprintf(`As Manus, analyze this performance data and provide optimization recommendations:

Overall Performance: %s
Video Analytics: %s

Analyze performance patterns, over- and under-performing content, audience behavior,
algorithm preference indicators and monetization efficiency.

Provide specific optimizations for titles and thumbnails, content structure, retention,
engagement, algorithm compatibility and revenue. Include confidence scores for each recommendation.`, performance, analytics)
}

func ideationPrompt(niche, audience, trends string) string {
	return fmt.Sprintf(`As Manus, generate strategic content ideas for this niche: %s

Audience Data: %s
Current Trends: %s

Generate 10 high-potential content ideas. For each give the strategic reasoning, content
details (title options, hook, talking points, visuals, duration), performance predictions
(views, CTR, retention, engagement, viral potential) and production requirements.

Rank ideas by overall potential and strategic value.`, niche, audience, trends)
}
