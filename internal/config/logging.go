package config

import "os"

type Logging struct {
	Development bool
	File        string
	MaxSizeMB   int
}

func NewLogging() (*Logging, error) {
	maxSize, err := lookupInt("LOG_MAX_SIZE_MB", 50)
	if err != nil {
		return nil, err
	}

	logging := &Logging{
		Development: Development(),
		File:        os.Getenv("LOG_FILE"),
		MaxSizeMB:   maxSize,
	}

	return logging, nil
}
