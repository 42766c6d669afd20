package logger

// Log implements the logger config.
type Log struct {
	// Level is the minimum level that gets written (error, warn, info, debug, trace).
	Level string `mapstructure:"level" toml:"level" validate:"omitempty,oneof=error warn info debug trace"`

	// Format selects json or pretty (console writer) output.
	Format string `mapstructure:"format" toml:"format" validate:"omitempty,oneof=json pretty"`

	// ReportCaller adds the caller (or the stack on trace level) to each entry.
	ReportCaller bool `mapstructure:"report_caller" toml:"reportCaller"`

	// File enables rolling file logging when set to a path.
	File string `mapstructure:"file" toml:"file"`

	FileMaxSize    int `mapstructure:"file_max_size" toml:"fileMaxSize"`
	FileMaxBackups int `mapstructure:"file_max_backups" toml:"fileMaxBackups"`
	FileMaxAge     int `mapstructure:"file_max_age" toml:"fileMaxAge"`
}

// FormatPretty renders human readable console output, FormatJSON structured lines.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)
