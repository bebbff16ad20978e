package session

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("symbolic/session", "evaluation of symbolic graphs")
