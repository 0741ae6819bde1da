package common

const (
	FlagDebug    = "debug"
	FlagWorkdir  = "workdir"
	FlagLogLevel = "log-level"
)
