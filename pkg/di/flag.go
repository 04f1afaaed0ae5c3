package di

import (
	"github.com/impactlens/ilens/pkg/cli/flag"
)

// Flags holds the flags every command shares and where the command runs.
type Flags struct {
	*flag.GlobalFlags

	PWD  string
	GOOS string
}
