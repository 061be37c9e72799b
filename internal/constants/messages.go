package constants

// Messages printed by the cronlens CLI.

// Config messages
const (
	// MsgConfigLoadError is the error message when configuration loading fails.
	MsgConfigLoadError = "❌ Failed to load configuration: %v\n"

	// MsgConfigValidationError is the message when configuration validation fails.
	MsgConfigValidationError = "❌ Configuration validation failed:\n"

	// MsgConfigValid is the message when configuration is successfully loaded and validated.
	MsgConfigValid = "✅ Configuration is valid: %s\n"

	// MsgConfigValidatePrefix is the prefix for configuration validation errors.
	MsgConfigValidatePrefix = "  - %v\n"

	// MsgErrorFormat is the prefix for formatting error messages.
	MsgErrorFormat = "Error: %v"
)

// Expression messages
const (
	// MsgExpressionValid is printed by validate when every field passes.
	MsgExpressionValid = "✅ Valid cron expression\n"

	// MsgExpressionInvalid is printed by validate when any field fails.
	MsgExpressionInvalid = "❌ Invalid cron expression: %v\n"

	// MsgFieldValid is printed by validate --field on success.
	MsgFieldValid = "✅ %q is a valid %s value\n"

	// MsgFieldInvalid is printed by validate --field on failure.
	MsgFieldInvalid = "❌ %q is not a valid %s value\n"
)

// Watch messages
const (
	// MsgWatchStarted is printed when the watcher starts.
	MsgWatchStarted = "👀 Watching %q (%s). Press Ctrl+C to stop.\n"

	// MsgWatchNoRuns is printed when the expression never fires within the horizon.
	MsgWatchNoRuns = "❌ %q never fires, nothing to watch\n"
)
