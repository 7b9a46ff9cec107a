package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string  `mapstructure:"PORT"`
	DBUrl           string  `mapstructure:"DB_URL"`
	RedisUrl        string  `mapstructure:"REDIS_URL"`
	UdotAPIKey      string  `mapstructure:"UDOT_API_KEY"`
	DirectionsKey   string  `mapstructure:"DIRECTIONS_API_KEY"`
	VisionAPIKey    string  `mapstructure:"VISION_API_KEY"`
	VisionModel     string  `mapstructure:"VISION_MODEL"`
	OutputDir       string  `mapstructure:"OUTPUT_DIR"`
	ImagesDir       string  `mapstructure:"IMAGES_DIR"`
	Origin          string  `mapstructure:"ORIGIN"`
	Destination     string  `mapstructure:"DESTINATION"`
	CameraBufferKm  float64 `mapstructure:"CAMERA_BUFFER_KM"`
	EventBufferKm   float64 `mapstructure:"EVENT_BUFFER_KM"`
	PlowBufferKm    float64 `mapstructure:"PLOW_BUFFER_KM"`
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("VISION_MODEL", "claude-3-5-haiku-20241022")
	viper.SetDefault("OUTPUT_DIR", "output/data")
	viper.SetDefault("IMAGES_DIR", "images")
	viper.SetDefault("ORIGIN", "Riverton, UT")
	viper.SetDefault("DESTINATION", "Hanna, UT")
	viper.SetDefault("CAMERA_BUFFER_KM", 2.0)
	viper.SetDefault("EVENT_BUFFER_KM", 5.0)
	viper.SetDefault("PLOW_BUFFER_KM", 10.0)

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	err = viper.Unmarshal(&c)
	return
}
