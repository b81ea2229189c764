package config

import "time"

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, signingSecret string) *Slack {
	return &Slack{
		botToken:      botToken,
		signingSecret: signingSecret,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, leveldbDir, sqlitePath string) *Repository {
	return &Repository{
		backend:    backend,
		leveldbDir: leveldbDir,
		sqlitePath: sqlitePath,
	}
}

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, geminiAPIKey, anthropicAPIKey string) *LLM {
	return &LLM{
		provider:        provider,
		geminiAPIKey:    geminiAPIKey,
		anthropicAPIKey: anthropicAPIKey,
		breakerFailures: 5,
		breakerTimeout:  30 * time.Second,
	}
}

// NewIntentForTest creates an Intent config for testing purposes
func NewIntentForTest(path string) *Intent {
	return &Intent{vocabularyFile: path}
}

// NewCalendarForTest creates a Calendar config for testing purposes
func NewCalendarForTest(credentialsFile string, startHour int) *Calendar {
	return &Calendar{
		credentialsFile: credentialsFile,
		tokenFile:       "token.json",
		calendarID:      "primary",
		timeZone:        "Asia/Kolkata",
		startHour:       startHour,
	}
}
