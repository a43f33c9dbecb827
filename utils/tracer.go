package utils

import (
	"github.com/Luismorlan/instamini/utils/dotenv"
	"github.com/Luismorlan/instamini/utils/flag"
	Logger "github.com/Luismorlan/instamini/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// InitTracer starts the Datadog tracer. Must be called once in main before
// any traced handler runs.
func InitTracer() {
	env := "development"
	if dotenv.IsProdEnv() {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv(env),
	)

	Logger.Log.Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
