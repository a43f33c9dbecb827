/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "service name reported to logging and tracing")
}

// ParseFlags must be called once from main before any flag value is read.
// Parsing cannot happen at package init, that would race the testing
// package's own flag registration and crash every test binary.
func ParseFlags() {
	flag.Parse()
}
