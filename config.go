package stockroom

import "go.uber.org/zap"

// Config holds global configuration for worlds created by Factory
var Config config = config{
	log:             zap.NewNop(),
	initialCapacity: 1024,
}

type config struct {
	log             *zap.Logger
	initialCapacity int
}

// SetLogger routes the package's diagnostics to l. A nil logger silences them.
func (c *config) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
}

// SetInitialCapacity sets how many entities new worlds and stores preallocate for
func (c *config) SetInitialCapacity(n int) {
	c.initialCapacity = max(n, 0)
}

func logger() *zap.Logger {
	return Config.log
}
