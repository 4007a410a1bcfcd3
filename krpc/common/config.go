package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults for the bind/remote surfaces. Production deployments should
// override these via flags or environment.
const (
	DefaultServerEndpoint = "127.0.0.1:6881"
	DefaultTimeoutSecond  = 5
)

// DefaultBootstrapEndpoints is the fixed ordered list of well-known
// addresses probed by a bootstrap run
var DefaultBootstrapEndpoints = []string{
	"router.bittorrent.com:6881",
	"dht.transmissionbt.com:6881",
	"127.0.0.1:6881",
}

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the DHT server.
type ServerConfig struct {
	// Endpoint is the local UDP address the server binds
	Endpoint string

	// TimeoutSecond bounds reply writes
	TimeoutSecond int64

	// MetricsEndpoint is the optional HTTP address exposing Prometheus
	// metrics. Empty disables the endpoint.
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("DHT Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Observability")
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	} else {
		addField("Metrics Endpoint", "disabled")
	}
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the configuration for client sessions and the
// bootstrap probe.
type ClientConfig struct {
	// TimeoutSecond bounds every awaited response
	TimeoutSecond int

	// BootstrapEndpoints is probed in order by Node.Bootstrap
	BootstrapEndpoints []string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Log Level", c.LogLevel)

	addSection("Bootstrap Endpoints")
	for i, endpoint := range c.BootstrapEndpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
