package cmd

import (
	"errors"
	"log"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/interview-coach/internal/interview"
)

const (
	app = "interview-coach"
)

type Config struct {
	DataDir   string           `mapstructure:"data-dir"`
	Interview *InterviewConfig `mapstructure:"interview"`
	AI        *AIConfig        `mapstructure:"ai"`
	Server    *ServerConfig    `mapstructure:"server"`
}

type InterviewConfig struct {
	MinQuestions     int     `mapstructure:"min-questions"`
	MaxQuestions     int     `mapstructure:"max-questions"`
	TimeLimitSeconds float64 `mapstructure:"time-limit-seconds"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	Listen    string `mapstructure:"listen"`
	TokenFile string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-coach runs adaptive mock technical interviews based on a job description and resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("server.token-file", "INTERVIEW_COACH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding INTERVIEW_COACH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-coach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("data-dir", "data")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing default config is fine; an explicitly passed one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return config, err
	}

	return config, nil
}

// interviewSettings maps the config onto the engine settings, falling back to
// the defaults for anything unset.
func interviewSettings(config *Config) interview.Settings {
	settings := interview.DefaultSettings()
	if config == nil || config.Interview == nil {
		return settings
	}
	if config.Interview.MinQuestions > 0 {
		settings.MinQuestions = config.Interview.MinQuestions
	}
	if config.Interview.MaxQuestions > 0 {
		settings.MaxQuestions = config.Interview.MaxQuestions
	}
	if config.Interview.TimeLimitSeconds > 0 {
		settings.TimeLimitSeconds = config.Interview.TimeLimitSeconds
	}
	return settings
}
