package config

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/scenesmith/scenesmith/common/env"
)

var SystemName = "SceneSmith"
var ServerAddress = env.String("SERVER_ADDRESS", "http://localhost:3000")

var ServiceName = env.String("SERVICE_NAME", "scenesmith")
var InstanceId = uuid.New().String()[:8]

var SessionSecret = uuid.New().String()

var DebugEnabled = env.Bool("DEBUG", false)

// Gemini backend settings. One environment-provided key authorizes every
// backend call; the key is attached server-side and never leaves the relay.
var GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
var GeminiBaseURL = env.String("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
var GeminiVersion = env.String("GEMINI_VERSION", "v1beta")
var GeminiSafetySetting = env.String("GEMINI_SAFETY_SETTING", "BLOCK_NONE")

// Model defaults. The references-to-video and extend-video paths override
// some of these regardless of what the user picked, see studio/builder.
var DefaultVideoModel = env.String("DEFAULT_VIDEO_MODEL", "veo-2.0-generate-001")
var DefaultTextModel = env.String("DEFAULT_TEXT_MODEL", "gemini-2.0-flash")

// Sampling temperature for director chat and text generation.
var TextTemperature = env.Float64("TEXT_TEMPERATURE", 0.7)

// Video operations commonly run for tens of seconds to minutes; each poll
// is separated by the full interval and the loop gives up after
// VideoMaxPolls attempts.
var VideoPollInterval = time.Duration(env.Int("VIDEO_POLL_INTERVAL", 5)) * time.Second
var VideoMaxPolls = env.Int("VIDEO_MAX_POLLS", 120)

// Word budget handed to the text backend when condensing storyboard
// placements into one scene description.
var StoryboardWordBudget = env.Int("STORYBOARD_WORD_BUDGET", 60)

var RelayTimeout = env.Int("RELAY_TIMEOUT", 0) // unit is second
var ProxyURL = env.String("PROXY_URL", "")

// Optional bearer token gating the studio API. Empty disables the check.
var AccessToken = os.Getenv("ACCESS_TOKEN")

var FrontendPath = env.String("FRONTEND_PATH", "")

// All duration's unit is seconds
// Shouldn't larger then RateLimitKeyExpirationDuration
var (
	GlobalApiRateLimitNum            = env.Int("GLOBAL_API_RATE_LIMIT", 480)
	GlobalApiRateLimitDuration int64 = 3 * 60

	GenerateRateLimitNum            = env.Int("GENERATE_RATE_LIMIT", 30)
	GenerateRateLimitDuration int64 = 10 * 60
)

var RateLimitKeyExpirationDuration = 20 * time.Minute
