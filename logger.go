package rollout

import "github.com/rolloutgate/go-rollout-sdk/util"

// Logger is the leveled logger consumed by the SDK. Supply one through
// Options.Logger or SetLogger; tests typically install util.DiscardLogger.
type Logger = util.Logger

type DiscardLogger = util.DiscardLogger

func SetLogger(logger Logger) {
	util.SetLogger(logger)
}
