package server

import "time"

type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// ExecTimeout bounds every exec or run request.
	ExecTimeout time.Duration
	// IdleTTL is how long a session may go unused before it is evicted.
	IdleTTL time.Duration
	// SweepInterval is the period of the idle-session sweep.
	SweepInterval time.Duration
	// MaxBodySize caps request bodies in bytes.
	MaxBodySize int
	// MaxOutputs caps the outputs one exec or run request may produce.
	MaxOutputs int
}

func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		ExecTimeout:   2 * time.Second,
		IdleTTL:       30 * time.Minute,
		SweepInterval: time.Minute,
		MaxBodySize:   1 << 20,
		MaxOutputs:    10000,
	}
}
