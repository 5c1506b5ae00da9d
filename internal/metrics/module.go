package metrics

import "go.uber.org/fx"

// Module provides the Prometheus metrics set.
var Module = fx.Provide(New)
