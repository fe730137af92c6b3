package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/juju/loggo"
)

// logEnvVar holds a loggo configuration spec, e.g. "<root>=DEBUG"
const logEnvVar = "MKSERVICE_LOG"

const defaultLogSpec = "<root>=INFO"

func setupLogging(w io.Writer, verbose bool) error {
	spec := defaultLogSpec
	if v := os.Getenv(logEnvVar); v != "" {
		spec = v
	}
	if verbose {
		spec = "<root>=DEBUG"
	}

	if _, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(w, logFormatter)); err != nil {
		return err
	}
	loggo.DefaultContext().ResetLoggerLevels()
	return loggo.ConfigureLoggers(spec)
}

func logFormatter(entry loggo.Entry) string {
	ts := entry.Timestamp.In(time.UTC).Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s %-5s %s %s", ts, entry.Level, entry.Module, entry.Message)
}
