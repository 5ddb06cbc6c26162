package config

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
)

// Config is the glinspect CLI configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Program ProgramConfig `mapstructure:"program"`
	Display DisplayConfig `mapstructure:"display"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// LogConfig configures the zap logger installed in every package
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ProgramConfig selects the program to inspect: either GLSL sources per
// stage or a snapshot fixture
type ProgramConfig struct {
	Name           string `mapstructure:"name"`
	Vertex         string `mapstructure:"vertex"`
	TessControl    string `mapstructure:"tess_control"`
	TessEvaluation string `mapstructure:"tess_evaluation"`
	Geometry       string `mapstructure:"geometry"`
	Fragment       string `mapstructure:"fragment"`
	Compute        string `mapstructure:"compute"`
	Fixture        string `mapstructure:"fixture"`
	FixtureID      uint32 `mapstructure:"fixture_id"`
}

// DisplayConfig controls what the report shows
type DisplayConfig struct {
	Interfaces []string `mapstructure:"interfaces"`
	HideEmpty  bool     `mapstructure:"hide_empty"`
}

// WatchConfig controls relinking on source changes
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Load reads the configuration from path, or from glinspect.{toml,yaml}
// in the working directory when path is empty. Environment variables with
// the GLINSPECT_ prefix override file values (GLINSPECT_LOG_LEVEL=debug).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("program.name", "program")
	for _, key := range []string{"vertex", "tess_control", "tess_evaluation", "geometry", "fragment", "compute", "fixture"} {
		v.SetDefault("program."+key, "")
	}
	v.SetDefault("program.fixture_id", 1)
	v.SetDefault("display.interfaces", []string{})
	v.SetDefault("display.hide_empty", true)
	v.SetDefault("watch.enabled", false)
	v.SetDefault("watch.debounce", 100*time.Millisecond)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("glinspect")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GLINSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.Load("read config", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Load("unmarshal config", err)
	}
	if err := cfg.Program.expandPaths(); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values that viper cannot
func Validate(cfg *Config) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return errors.InvalidData(errors.PhaseLoad, []string{"log", "level"}, err.Error())
	}
	if _, err := cfg.Display.ParsedInterfaces(); err != nil {
		return err
	}
	if cfg.Watch.Debounce < 0 {
		return errors.InvalidData(errors.PhaseLoad, []string{"watch", "debounce"}, "must not be negative")
	}
	p := cfg.Program
	if p.Compute != "" && (p.Vertex != "" || p.TessControl != "" || p.TessEvaluation != "" || p.Geometry != "" || p.Fragment != "") {
		return errors.InvalidData(errors.PhaseLoad, []string{"program", "compute"}, "compute cannot be linked with graphics stages")
	}
	return nil
}

// expandPaths resolves a leading "~" in every configured path
func (p *ProgramConfig) expandPaths() error {
	for _, path := range []*string{&p.Vertex, &p.TessControl, &p.TessEvaluation, &p.Geometry, &p.Fragment, &p.Compute, &p.Fixture} {
		expanded, err := homedir.Expand(*path)
		if err != nil {
			return errors.InvalidData(errors.PhaseLoad, []string{"program"}, err.Error())
		}
		*path = expanded
	}
	return nil
}

// Sources returns the configured GLSL source path of every stage
func (p ProgramConfig) Sources() map[catalog.Stage]string {
	out := make(map[catalog.Stage]string)
	for stage, path := range map[catalog.Stage]string{
		catalog.VertexShader:         p.Vertex,
		catalog.TessControlShader:    p.TessControl,
		catalog.TessEvaluationShader: p.TessEvaluation,
		catalog.GeometryShader:       p.Geometry,
		catalog.FragmentShader:       p.Fragment,
		catalog.ComputeShader:        p.Compute,
	} {
		if path != "" {
			out[stage] = path
		}
	}
	return out
}

// ParsedInterfaces converts the interface names; an empty list selects
// every interface
func (d DisplayConfig) ParsedInterfaces() ([]catalog.Interface, error) {
	if len(d.Interfaces) == 0 {
		return catalog.All(), nil
	}
	out := make([]catalog.Interface, 0, len(d.Interfaces))
	for _, name := range d.Interfaces {
		iface, ok := catalog.ParseInterface(name)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{"display", "interfaces"}, "unknown interface "+name)
		}
		out = append(out, iface)
	}
	return out, nil
}

// NewLogger builds the zap logger described by the configuration
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.InvalidData(errors.PhaseLoad, []string{"log", "level"}, err.Error())
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Load("build logger", err)
	}
	return l, nil
}
