package config

import (
	"os"
	"strings"
)

// Development is on unless DEVELOPMENT is unset, empty, "0" or "false".
func Development() bool {
	switch strings.ToLower(os.Getenv("DEVELOPMENT")) {
	case "", "0", "false":
		return false
	}
	return true
}
