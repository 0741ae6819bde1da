package build

import "fmt"

var (
	Version   = "unknown"
	GitRef    = "unknown"
	BuildDate = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s, %s)", Version, GitRef, BuildDate)
