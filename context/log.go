// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package context

import (
	"os"

	charmlog "charm.land/log/v2"
	"github.com/yangforge/yangcore/yerr"
)

// logger is the process-wide structured sink every Context's error state
// logs through by default. yerr itself stays free of any concrete
// logging dependency; Context is what wires in charm.land/log/v2, the
// one example repo in the pack (MacroPower-x) that carries a structured
// logger.
var logger = charmlog.New(os.Stderr)

// defaultLogCallback adapts a yerr log event into a structured log line
// (the level picks the logger method; the code is the one key/value
// pair, and no path is logged) rather than a formatted string, so these
// events are filterable the same way the rest of a deployment's logs
// are.
func defaultLogCallback(level yerr.Level, code yerr.Code, msg string) {
	switch level {
	case yerr.LError:
		logger.Error(msg, "code", code.String())
	case yerr.LWarning:
		logger.Warn(msg, "code", code.String())
	case yerr.LVerbose:
		logger.Info(msg, "code", code.String())
	case yerr.LDebug:
		logger.Debug(msg, "code", code.String())
	}
}
