// internal/config/model.go
//
// Typed configuration model for the employee gateway.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `EMPGATE_`-prefixed environment overrides – highest precedence.
//
// Any secret value that begins with the prefix `vault:` is resolved through
// the Vault client by `ResolveSecrets` after loading, so code downstream of
// main never sees Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Database section
//

// Database identifies the COMPANY database and tunes its pool.
//
// `Password` may be a literal or a Vault reference of the form
// `vault:<mount>/<path>#<key>`, keeping credentials out of flat files and
// git history.
type Database struct {
	User     string `koanf:"user"     validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Server   string `koanf:"server"   validate:"required"`
	Database string `koanf:"database" validate:"required"`

	// Procedure overrides the insert procedure name.  Empty keeps
	// SP_Insert_NewEmployee.
	Procedure string `koanf:"procedure"`

	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
}

//
// Logging section
//

// Log controls the rotating file logger.
type Log struct {
	Debug bool `koanf:"debug"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or EMPGATE_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the aggregate returned by Load().  Treat it as read-only;
// ResolveSecrets returns a resolved copy rather than editing it.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"`
}
