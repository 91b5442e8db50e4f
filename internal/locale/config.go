// config.go — locale settings read from the process environment.
//
// Resolution order follows the C library: LC_ALL overrides LC_CTYPE, which
// overrides LANG. CHARSET, when set, names the codeset directly and wins over
// all locale variables (GLib honors it the same way).
package locale

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// ASCII is the codeset of the "C" and "POSIX" locales.
const ASCII = "ANSI_X3.4-1968"

// Config holds the locale variables relevant to charset detection.
type Config struct {
	All     string `env:"LC_ALL"`
	CType   string `env:"LC_CTYPE"`
	Lang    string `env:"LANG"`
	Charset string `env:"CHARSET"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "locale: parse environment")
	}
	return cfg, nil
}

// Name returns the effective locale name, or "" if none is configured.
func (c Config) Name() string {
	for _, v := range []string{c.All, c.CType, c.Lang} {
		if v != "" {
			return v
		}
	}
	return ""
}

// CharsetName returns the codeset implied by the configuration.
//
//	de_DE.ISO-8859-1@euro → ISO-8859-1
//	C, POSIX, ""          → ANSI_X3.4-1968
//	en_US (no codeset)    → ANSI_X3.4-1968
func (c Config) CharsetName() string {
	if c.Charset != "" {
		return c.Charset
	}
	name := c.Name()
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	dot := strings.IndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return ASCII
	}
	return name[dot+1:]
}
