package config

import (
	"errors"
	"time"

	"github.com/rvugdt/ftxclient/log"
)

// Constants declared here are filename strings and defaults
const (
	File               = "settings.json"
	DefaultHTTPTimeout = time.Second * 15

	// DefaultUnsetAPIKey and DefaultUnsetAPISecret are the placeholder values
	// written to a freshly generated settings file
	DefaultUnsetAPIKey    = "put_your_api-key_there"
	DefaultUnsetAPISecret = "put_your_api-sec-key_there"

	envPrefix = "FTX"
)

const settingsTemplate = "{\n\"api_key\" : \"" + DefaultUnsetAPIKey + "\",\n\"api_sec_key\":\"" + DefaultUnsetAPISecret + "\"\n}"

// Public errors
var (
	// ErrConfigMissing is returned after a settings template has been written
	// because no settings file was found. The operator must fill it in before
	// retrying.
	ErrConfigMissing = errors.New("settings file not found")
	// ErrCredentialsUnset is returned when the settings file still holds the
	// template placeholders or empty credentials
	ErrCredentialsUnset = errors.New("api key and secret must be set")
)

// Config holds the API credentials and client settings loaded once at
// startup
type Config struct {
	APIKey      string        `json:"api_key" mapstructure:"api_key"`
	APISecret   string        `json:"api_sec_key" mapstructure:"api_sec_key"`
	OTPSecret   string        `json:"otp_secret,omitempty" mapstructure:"otp_secret"`
	APIURL      string        `json:"api_url,omitempty" mapstructure:"api_url"`
	HTTPTimeout time.Duration `json:"http_timeout,omitempty" mapstructure:"http_timeout"`
	Verbose     bool          `json:"verbose,omitempty" mapstructure:"verbose"`
	Logging     log.Config    `json:"logging" mapstructure:"logging"`
}
