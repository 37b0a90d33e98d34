package main

import (
	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kezhuw/flist"
)

// Config holds the list options both peers agreed on and how to read the
// stream. Environment variables override the YAML file.
type Config struct {
	ProtocolVersion   int    `yaml:"protocol_version" env:"FLIST_PROTOCOL_VERSION" env-default:"26"`
	PreserveUID       bool   `yaml:"preserve_uid" env:"FLIST_PRESERVE_UID"`
	PreserveGID       bool   `yaml:"preserve_gid" env:"FLIST_PRESERVE_GID"`
	PreserveDevices   bool   `yaml:"preserve_devices" env:"FLIST_PRESERVE_DEVICES"`
	PreserveLinks     bool   `yaml:"preserve_links" env:"FLIST_PRESERVE_LINKS"`
	PreserveHardLinks bool   `yaml:"preserve_hard_links" env:"FLIST_PRESERVE_HARD_LINKS"`
	Checksum          bool   `yaml:"checksum" env:"FLIST_CHECKSUM"`
	ChecksumLength    int    `yaml:"checksum_length" env:"FLIST_CHECKSUM_LENGTH" env-default:"16"`
	ChunkSize         int    `yaml:"chunk_size" env:"FLIST_CHUNK_SIZE" env-default:"32768"`
	LogLevel          string `yaml:"log_level" env:"FLIST_LOG_LEVEL" env-default:"info"`
}

func loadConfig(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) options(logger *zap.Logger, metrics *flist.Metrics) *flist.Options {
	return &flist.Options{
		ProtocolVersion:   cfg.ProtocolVersion,
		PreserveUID:       cfg.PreserveUID,
		PreserveGID:       cfg.PreserveGID,
		PreserveDevices:   cfg.PreserveDevices,
		PreserveLinks:     cfg.PreserveLinks,
		PreserveHardLinks: cfg.PreserveHardLinks,
		AlwaysChecksum:    cfg.Checksum,
		ChecksumLength:    cfg.ChecksumLength,
		Logger:            flist.ZapLogger(logger),
		Metrics:           metrics,
	}
}

// newLogger builds a console logger writing to stderr, keeping stdout for
// the listing.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	return config.Build()
}
