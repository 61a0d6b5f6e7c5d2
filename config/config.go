package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the read-only bot configuration used to handle queries.
type Config struct {
	// APIKey is the Wolfram|Alpha app ID. It is not required at startup,
	// every query reports a missing key to the user instead.
	APIKey string
	// MaxOutput is the maximum number of answer sections said per query.
	MaxOutput int `validate:"min=1"`
	// BridgeNick is the nick of a relay bot whose messages carry the real
	// sender's nick, e.g. "alice: .wa pi". Empty disables bridged messages.
	BridgeNick string
	// CommandPrefix precedes command names, e.g. "." in ".wa".
	CommandPrefix string `validate:"required"`
	Endpoint      string `validate:"required,url"`
	Style         string `validate:"oneof=irc ansi plain"`
	// Timeout applies to each API request. Zero means no timeout.
	Timeout time.Duration `validate:"min=0"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}
