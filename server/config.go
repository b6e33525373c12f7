package server

import (
	"time"

	"github.com/dhamidi/hermes/jpql/parser"
)

type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Version is used for requests that do not name a JPA version.
	Version parser.Version

	// CacheSize bounds the number of parsed trees kept in memory.
	CacheSize int

	// MaxRequestBytes bounds request bodies.
	MaxRequestBytes int64

	ShutdownTimeout time.Duration

	// OriginPatterns lists the hosts, besides the server's own, whose pages
	// may open an assist websocket. Patterns use path.Match syntax.
	OriginPatterns []string
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Version:         parser.DefaultVersion,
		CacheSize:       defaultCacheSize,
		MaxRequestBytes: 1 << 20,
		ShutdownTimeout: 5 * time.Second,
	}
}
