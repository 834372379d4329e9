package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
		Mongo struct {
			Url string `mapstructure:"URL"`
		}
	}

	SMTP struct {
		Host     string `mapstructure:"HOST"`
		Port     int    `mapstructure:"PORT"`
		Username string `mapstructure:"USERNAME"`
		Password string `mapstructure:"PASSWORD"`
		From     string `mapstructure:"FROM"`
	}

	LIVEROOM struct {
		ProviderURL    string        `mapstructure:"PROVIDER_URL"`
		APIKey         string        `mapstructure:"API_KEY"`
		RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
		MaxRetries     int           `mapstructure:"MAX_RETRIES"`
	}

	QUIZ struct {
		// "proportional" (correct/total * total_score) or "weighted" (sum of question points)
		ScoringPolicy string `mapstructure:"SCORING_POLICY"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	// .env is optional, env overrides still apply without it
	_ = godotenv.Load()

	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CLASSROOM")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("LIVEROOM.REQUEST_TIMEOUT", 5*time.Second)
	viper.SetDefault("LIVEROOM.MAX_RETRIES", 3)
	viper.SetDefault("QUIZ.SCORING_POLICY", "proportional")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
