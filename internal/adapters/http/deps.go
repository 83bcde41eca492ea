package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/sundowner/internal/adapters/postgres"
	"github.com/samirrijal/sundowner/internal/adapters/valkey"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// NATS, DB and Cache are optional and only consulted by the readiness
// check and the WebSocket relay.
type Dependencies struct {
	Sunset  *usecases.SunsetService
	Solar   *usecases.SolarService
	Beaches *usecases.BeachService
	NATS    *nats.Conn
	DB      *postgres.DB
	Cache   *valkey.Cache
}
