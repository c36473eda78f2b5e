package providers

import (
	_ "github.com/EfeDurmaz16/assos/src/ai/anthropic"
	_ "github.com/EfeDurmaz16/assos/src/ai/fallback"
	_ "github.com/EfeDurmaz16/assos/src/ai/openai"
)
