package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoProjectConfigured     = errors.New("no project configured, pass --project or set PD_PROJECT_ID")
	ErrNoCredentialsConfigured = errors.New("no credentials configured, run 'pdconnect login' or set PD_CLIENT_ID and PD_CLIENT_SECRET")
	ErrUnknownOutputFormat     = errors.New("unknown output format")
)

// CLI validation errors.
var (
	ErrInvalidEnvironment = errors.New("environment must be 'development' or 'production'")
	ErrPropsNotJSON       = errors.New("configured props must be a JSON object")
)
