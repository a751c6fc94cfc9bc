package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host string `env:"HOST,required=true"`
	Port int    `env:"PORT,required=true"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`

	LivenessTimeout   time.Duration `env:"LIVENESS_TIMEOUT,required=true"`
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL,required=true"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,required=true"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,required=true"`

	// LimitMessages bounds message listings when the request carries no
	// explicit limit. Nil means unbounded.
	LimitMessages   *int   `env:"LIMIT_MESSAGES"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,required=true"`

	DebugPort int `env:"DEBUG_PORT"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
