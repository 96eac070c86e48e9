// Package config loads the configuration of squeak.
//
// A configuration is read from a YAML file, then overridden by environment
// variables with the SQUEAK_ prefix. Variables may also come from .env files;
// those never override variables that are already set. For example:
//
//	echo:
//	  mode: buffered
//	  verbosity: chatty
//	  categories: normal|warning|error
//	permit:
//	  verbosity: tmi
//	  categories: all
//	format:
//	  standard: auto
//	  base: 10
//	  places: 6
//	  prompt: bold green
//
// The same settings can be given as SQUEAK_ECHO_MODE=direct,
// SQUEAK_PERMIT_CATEGORIES=error, SQUEAK_FORMAT_STANDARD=none, and so on.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"src.squeak.sh/pkg/ioctrl"
	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[config] ")

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "SQUEAK_"

// Config is the configuration of squeak.
type Config struct {
	Echo    Echo   `yaml:"echo" envPrefix:"ECHO_"`
	Permit  Permit `yaml:"permit" envPrefix:"PERMIT_"`
	Format  Format `yaml:"format" envPrefix:"FORMAT_"`
	History string `yaml:"history" env:"HISTORY"`
	Log     string `yaml:"log" env:"LOG"`
}

// Echo configures the copy of messages to the standard streams.
type Echo struct {
	Mode       ioctrl.EchoMode  `yaml:"mode" env:"MODE"`
	Verbosity  ioctrl.Verbosity `yaml:"verbosity" env:"VERBOSITY"`
	Categories ioctrl.Category  `yaml:"categories" env:"CATEGORIES"`
}

// Permit configures the permission window of the channel.
type Permit struct {
	Verbosity  ioctrl.Verbosity `yaml:"verbosity" env:"VERBOSITY"`
	Categories ioctrl.Category  `yaml:"categories" env:"CATEGORIES"`
}

// Format configures the profile that every message starts with.
type Format struct {
	// Standard is "ansi", "none", or "auto" to use ANSI only on terminals.
	Standard string `yaml:"standard" env:"STANDARD"`
	Base     int    `yaml:"base" env:"BASE"`
	Places   int    `yaml:"places" env:"PLACES"`
	// Prompt is the styling of the shell prompt, as accepted by
	// ioformat.ParseStyling.
	Prompt string `yaml:"prompt" env:"PROMPT"`
}

// Standard values of Format.
const (
	StandardAuto = "auto"
	StandardANSI = "ansi"
	StandardNone = "none"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Echo:   Echo{ioctrl.EchoBuffered, ioctrl.TMI, ioctrl.CatAll},
		Permit: Permit{ioctrl.TMI, ioctrl.CatAll},
		Format: Format{
			Standard: StandardAuto,
			Base:     int(ioformat.Dec),
			Places:   int(ioformat.DefaultPlaces),
			Prompt:   "bold",
		},
	}
}

// Load returns the default configuration, overridden by the YAML file at path
// if path is not empty, then by the environment. Each of dotenv is loaded
// into the environment first; missing ones are skipped.
func Load(path string, dotenv ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := loadDotenv(dotenv); err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// An empty file keeps the defaults.
		return nil
	}
	return err
}

func loadDotenv(files []string) error {
	for _, file := range files {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		logger.Println("loaded", file)
	}
	return nil
}

// Validate checks the values that the types of the fields do not constrain.
func (cfg *Config) Validate() error {
	switch cfg.Format.Standard {
	case StandardAuto, StandardANSI, StandardNone:
	default:
		return &ioformat.InvalidArgumentError{
			What: "standard", Reason: fmt.Sprintf("%q is not auto, ansi or none", cfg.Format.Standard)}
	}
	if err := ioformat.CheckBase(ioformat.Base(cfg.Format.Base)); err != nil {
		return err
	}
	if cfg.Format.Places < 0 || cfg.Format.Places > 255 {
		return &ioformat.InvalidArgumentError{
			What: "places", Reason: fmt.Sprintf("%d is outside 0..255", cfg.Format.Places)}
	}
	if _, err := ioformat.ParseStyling(cfg.Format.Prompt); err != nil {
		return err
	}
	return nil
}

// Flags returns the format flags of the base profile. isTerminal decides
// whether StandardAuto means ANSI.
func (f Format) Flags(isTerminal bool) []ioformat.Flag {
	std := ioformat.StdANSI
	if f.Standard == StandardNone || (f.Standard == StandardAuto && !isTerminal) {
		std = ioformat.StdNone
	}
	return []ioformat.Flag{std, ioformat.Base(f.Base), ioformat.DecimalPlaces(f.Places)}
}

// PromptFlags returns the styling of the prompt. It must only be called on a
// validated Format.
func (f Format) PromptFlags() []ioformat.Flag {
	flags, _ := ioformat.ParseStyling(f.Prompt)
	return flags
}
