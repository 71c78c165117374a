// Package config loads the render context settings from defaults, an
// optional config file, RENDERCONTEXT_* environment variables and a .env
// file, in increasing order of precedence below command line flags.
package config

import (
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vkngwrapper/rendercontext/bootstrap"
	"github.com/vkngwrapper/rendercontext/gfx"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RENDERCONTEXT"

// Keys, also used as flag names.
const (
	KeyAppName              = "app-name"
	KeyWidth                = "width"
	KeyHeight               = "height"
	KeyValidation           = "validation"
	KeyValidationLayers     = "validation-layers"
	KeyVertexShader         = "vertex-shader"
	KeyFragmentShader       = "fragment-shader"
	KeyPreferredFormat      = "format"
	KeyPreferredColorSpace  = "color-space"
	KeyPreferredPresentMode = "present-mode"
	KeyHold                 = "hold"
)

// Config holds every setting of a run.
type Config struct {
	AppName string `mapstructure:"app-name"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`

	Validation       bool     `mapstructure:"validation"`
	ValidationLayers []string `mapstructure:"validation-layers"`

	VertexShader   string `mapstructure:"vertex-shader"`
	FragmentShader string `mapstructure:"fragment-shader"`

	PreferredFormat      string `mapstructure:"format"`
	PreferredColorSpace  string `mapstructure:"color-space"`
	PreferredPresentMode string `mapstructure:"present-mode"`

	// Hold keeps the window open after initialization until it is closed.
	Hold bool `mapstructure:"hold"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AppName:              "rendercontext",
		Width:                800,
		Height:               600,
		Validation:           true,
		ValidationLayers:     []string{bootstrap.KhronosValidationLayer},
		VertexShader:         "shaders/vert.spv",
		FragmentShader:       "shaders/frag.spv",
		PreferredFormat:      gfx.FormatB8G8R8A8SRGB.String(),
		PreferredColorSpace:  gfx.ColorSpaceSRGBNonlinear.String(),
		PreferredPresentMode: gfx.PresentModeMailbox.String(),
	}
}

// New returns a viper instance carrying the defaults and reading
// RENDERCONTEXT_* variables, e.g. RENDERCONTEXT_VALIDATION=false.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyAppName, d.AppName)
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyHeight, d.Height)
	v.SetDefault(KeyValidation, d.Validation)
	v.SetDefault(KeyValidationLayers, d.ValidationLayers)
	v.SetDefault(KeyVertexShader, d.VertexShader)
	v.SetDefault(KeyFragmentShader, d.FragmentShader)
	v.SetDefault(KeyPreferredFormat, d.PreferredFormat)
	v.SetDefault(KeyPreferredColorSpace, d.PreferredColorSpace)
	v.SetDefault(KeyPreferredPresentMode, d.PreferredPresentMode)
	v.SetDefault(KeyHold, d.Hold)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags declares one flag per key on flags and binds them to v.
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	d := Default()
	flags.String(KeyAppName, d.AppName, "application name reported to the driver")
	flags.Int(KeyWidth, d.Width, "window width")
	flags.Int(KeyHeight, d.Height, "window height")
	flags.Bool(KeyValidation, d.Validation, "enable validation layers and the debug messenger")
	flags.StringSlice(KeyValidationLayers, d.ValidationLayers, "validation layers to enable")
	flags.String(KeyVertexShader, d.VertexShader, "compiled vertex shader")
	flags.String(KeyFragmentShader, d.FragmentShader, "compiled fragment shader")
	flags.String(KeyPreferredFormat, d.PreferredFormat, "preferred surface format")
	flags.String(KeyPreferredColorSpace, d.PreferredColorSpace, "preferred surface color space")
	flags.String(KeyPreferredPresentMode, d.PreferredPresentMode, "preferred present mode")
	flags.Bool(KeyHold, d.Hold, "keep the window open until it is closed")
	return errors.Wrap(v.BindPFlags(flags), "bind flags")
}

// LoadDotEnv loads path into the environment. A missing file is not an
// error; variables already set win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

// Load reads configFile when non-empty, then decodes and validates v.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", configFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.VertexShader == "" || c.FragmentShader == "" {
		return errors.New("both shader paths must be set")
	}
	if c.Validation && len(c.ValidationLayers) == 0 {
		return errors.New("validation is enabled but no validation layers are listed")
	}
	if _, ok := gfx.ParseFormat(c.PreferredFormat); !ok {
		return errors.Newf("unknown format %q", c.PreferredFormat)
	}
	if _, ok := gfx.ParseColorSpace(c.PreferredColorSpace); !ok {
		return errors.Newf("unknown color space %q", c.PreferredColorSpace)
	}
	if _, ok := gfx.ParsePresentMode(c.PreferredPresentMode); !ok {
		return errors.Newf("unknown present mode %q", c.PreferredPresentMode)
	}
	return nil
}

// Options converts a validated Config to bootstrap options.
func (c Config) Options() bootstrap.Options {
	opts := bootstrap.DefaultOptions()
	opts.ApplicationName = c.AppName
	opts.Validation = c.Validation
	opts.ValidationLayers = c.ValidationLayers
	opts.VertexShaderPath = c.VertexShader
	opts.FragmentShaderPath = c.FragmentShader
	opts.PreferredFormat.Format, _ = gfx.ParseFormat(c.PreferredFormat)
	opts.PreferredFormat.ColorSpace, _ = gfx.ParseColorSpace(c.PreferredColorSpace)
	opts.PreferredPresentMode, _ = gfx.ParsePresentMode(c.PreferredPresentMode)
	return opts
}
