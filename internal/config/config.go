package config

// Environment variable names consumed by the desktop shell.
const (
	EnvPort          = "OPENCODE_PORT"
	EnvSkillsPort    = "OPENCODE_SKILLS_PORT"
	EnvSkillsAPIPort = "OPENCODE_SKILLS_API_PORT"
	EnvBaseURL       = "OPENCODE_DESKTOP_BASE_URL"
	EnvSkillsBaseURL = "OPENCODE_DESKTOP_SKILLS_URL"
	EnvPluginPath    = "OPENCODE_DESKTOP_PLUGIN_PATH"
	EnvConfigContent = "OPENCODE_CONFIG_CONTENT"
	EnvShell         = "SHELL"
)

// Config carries everything the shell resolves from its environment at
// startup. Values are read once; the supervisor never re-reads the
// environment after launch.
type Config struct {
	// PortOverride pins the sidecar port. Nil means pick a free port.
	PortOverride *int

	// SkillsPortOverride pins the skills service port. It is honored
	// unconditionally, with no collision checking.
	SkillsPortOverride *int

	// BaseURLOverride points the UI at an externally managed server.
	// When set, no local sidecar is spawned.
	BaseURLOverride string

	// SkillsBaseURLOverride points the UI at an external skills service.
	SkillsBaseURLOverride string

	// PluginPathOverride is an explicit path to the orchestrator plugin
	// artifact. A path that does not reference an existing file is
	// ignored in favor of the ancestor-directory search.
	PluginPathOverride string

	// ConfigContent is raw sidecar configuration supplied by the caller.
	// When set, the shell never builds its own plugin config.
	ConfigContent string

	// Shell is the user's login shell, used to construct the sidecar
	// launch line on non-Windows platforms.
	Shell string

	// StateDir is the per-user application data directory handed to the
	// sidecar as XDG_STATE_HOME.
	StateDir string

	Logging *LogConfig
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level         string `json:"level" mapstructure:"level"`
	EnableFile    bool   `json:"enable_file" mapstructure:"enable-file"`
	EnableConsole bool   `json:"enable_console" mapstructure:"enable-console"`
	Filename      string `json:"filename" mapstructure:"filename"`
	LogDir        string `json:"log_dir,omitempty" mapstructure:"log-dir"`
	MaxSize       int    `json:"max_size" mapstructure:"max-size"` // MB
	MaxBackups    int    `json:"max_backups" mapstructure:"max-backups"`
	MaxAge        int    `json:"max_age" mapstructure:"max-age"` // days
	Compress      bool   `json:"compress" mapstructure:"compress"`
	JSONFormat    bool   `json:"json_format" mapstructure:"json-format"`
}
