package main

import (
	"log"

	"github.com/spf13/viper"

	"github.com/Badsnus/qr-studio/cmd/studio"
	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/setup"
	"github.com/Badsnus/qr-studio/pkg/logger"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	s, err := studio.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	config.Watch(func() {
		path := viper.GetString("presets.file")
		if path == "" {
			return
		}
		if err := s.Presets.Reload(path); err != nil {
			logger.Log.Errorf("Failed to reload presets: %v", err)
			return
		}
		logger.Log.Info("Presets reloaded")
	})

	s.Start(setup.Setup(s))
}
