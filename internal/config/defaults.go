package config

import (
	"github.com/iomz/hito/hito/scan"
	"github.com/spf13/viper"
)

// Default returns the settings used when nothing is configured
func Default() Settings {
	return Settings{
		Store:    "",
		DataFile: "",

		Scan: ScanSettings{
			MinSize: scan.DefaultMinSize,
		},

		Server: ServerSettings{
			Addr:            "127.0.0.1:7878",
			ShutdownTimeout: "10s",
		},

		Log: LogSettings{
			Level:   "warn",
			File:    "",
			JSON:    false,
			Verbose: false,
			Rotation: LogRotationSettings{
				MaxSize:    16,
				MaxBackups: 3,
				MaxAge:     28,
				Compress:   false,
			},
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("store", defaults.Store)
	v.SetDefault("data_file", defaults.DataFile)

	v.SetDefault("scan.min_size", defaults.Scan.MinSize)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.verbose", defaults.Log.Verbose)
	v.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)
}
