package main

import (
	"log"
	"os"
	"path/filepath"
)

// defaultLogPath is where the dashboard writes diagnostics; the terminal
// belongs to the UI while it runs.
func defaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "abfahrt", "abfahrt.log"), nil
}

// configureRuntimeLogger points the standard logger at logPath (or the
// default state file) and returns a function closing it. When the file
// cannot be opened the logger falls back to stderr.
func configureRuntimeLogger(logPath string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if logPath == "" {
		p, err := defaultLogPath()
		if err != nil {
			log.SetOutput(os.Stderr)
			return func() {}
		}
		logPath = p
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}
