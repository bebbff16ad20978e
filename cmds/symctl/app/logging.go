package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"
	"github.com/mandelsoft/logging/logrusr"
)

var REALM = logging.DefineRealm("symbolic/symctl", "symbolic command line tool")

func init() {
	logcfg := logrusl.Human(true)
	lctx := logging.DefaultContext()
	lctx.SetBaseLogger(logrusr.New(logcfg.NewLogrus()))
}

// ConfigureLogging enables the given log level for all
// symbolic realms.
func ConfigureLogging(lctx logging.Context, level string) error {
	if level == "" {
		return nil
	}
	l, err := logging.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("symbolic")))
	return nil
}
