package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/logger"
	"github.com/compas-audio/compas/internal/ports"
)

type ViperConfigService struct{}

func NewViperConfigService() ports.ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Log.WithError(err).Warn("Could not find user config directory, using current directory")
	}

	if configDir != "" {
		compasConfigDir := filepath.Join(configDir, "compas")
		if err := os.MkdirAll(compasConfigDir, 0755); err != nil {
			logger.Log.WithError(err).Error("Could not create compas config directory")
		} else {
			viper.AddConfigPath(compasConfigDir)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	homeDir, _ := os.UserHomeDir()
	viper.SetDefault("musicDir", filepath.Join(homeDir, "Music"))
	viper.SetDefault("mpvSocket", filepath.Join(os.TempDir(), "compas-mpv.sock"))
	viper.SetDefault("historyLimit", 50)
	viper.SetDefault("ticker.leadOffsetMs", 10)
	viper.SetDefault("ticker.resyncThresholdMs", 20)

	return &ViperConfigService{}
}

func (s *ViperConfigService) Load() (domain.Config, error) {
	var cfg domain.Config

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logger.Log.Info("Config file not found, creating with default values.")
			if err := viper.SafeWriteConfig(); err != nil {
				return cfg, err
			}
		} else {
			return cfg, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
