// Package logutil provides logging utilities.
//
// Loggers returned by GetLogger write nowhere until SetOutput or
// SetOutputFile is called. Diagnostics of the engine itself, such as a warning
// that every message category has been suppressed, go through these loggers
// rather than through a channel.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	outFile *os.File
	loggers []*log.Logger
	mutex   sync.Mutex
)

// GetLogger gets a logger with the given prefix. The logger writes to the
// output set by SetOutput or SetOutputFile.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the given io.Writer. If the old output was a file opened by SetOutputFile,
// it is closed.
func SetOutput(newout io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(newout)
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file, which is created or appended to. If the name is empty,
// output is discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	mutex.Lock()
	defer mutex.Unlock()
	if outFile != nil {
		outFile.Close()
	}
	setOutput(file)
	outFile = file
	return nil
}

func setOutput(newout io.Writer) {
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
