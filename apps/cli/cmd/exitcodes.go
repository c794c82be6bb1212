package cmd

// Exit codes for the licenseguard CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitFailure indicates a command failure (validation issues, stale cache, ...)
	ExitFailure = 1

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
