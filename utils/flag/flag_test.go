package flag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Flag registration happens at init but parsing is deferred to main.
// This test running at all is part of the contract: parsing inside init
// would abort the test binary before any test executes.
func TestFlagDefaults(t *testing.T) {
	require.Equal(t, APIServer, ServiceName)
	require.True(t, IsDevelopment)
}

func TestParseFlags(t *testing.T) {
	require.NotPanics(t, ParseFlags)
	require.Equal(t, APIServer, ServiceName)
}
