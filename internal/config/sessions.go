package config

import "time"

type Sessions struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

func NewSessions() (*Sessions, error) {
	ttl, err := lookupDuration("SESSION_IDLE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	interval, err := lookupDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	sessions := &Sessions{
		IdleTTL:       ttl,
		SweepInterval: interval,
	}

	return sessions, nil
}
