// Package all registers every built-in probe kind with catalog.Default.
package all

import (
	_ "github.com/jonwraymond/healthcheckx/probe/memory"
	_ "github.com/jonwraymond/healthcheckx/probe/modbus"
	_ "github.com/jonwraymond/healthcheckx/probe/postgres"
	_ "github.com/jonwraymond/healthcheckx/probe/rabbitmq"
	_ "github.com/jonwraymond/healthcheckx/probe/redis"
	_ "github.com/jonwraymond/healthcheckx/probe/sqlite"
)
