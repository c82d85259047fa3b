package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/app"
	"github.com/recruitgenius/recruit-cli/internal/logger"
	"github.com/recruitgenius/recruit-cli/internal/recruit"
	"github.com/recruitgenius/recruit-cli/internal/secrets"
	"github.com/recruitgenius/recruit-cli/internal/terminal"
)

const (
	appName = "recruit-cli"

	tokenEnv = "RECRUIT_API_TOKEN"
)

// ErrReported means the failure was already shown to the user as a
// notification.
var ErrReported = errors.New("request failed")

type Config struct {
	API    *APIConfig   `mapstructure:"api"`
	Chat   *ChatConfig  `mapstructure:"chat"`
	Match  *MatchConfig `mapstructure:"match"`
	Output string       `mapstructure:"output"`
}

type APIConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token-file"`
	UserAgent string        `mapstructure:"user-agent"`
	// RateLimit is in requests per second. Zero disables pacing.
	RateLimit float64 `mapstructure:"rate-limit"`
}

type ChatConfig struct {
	UserIdentifier string `mapstructure:"user-identifier"`
}

type MatchConfig struct {
	TopK int `mapstructure:"top-k"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "recruit-cli is a terminal client for the Recruit Genius recruitment API",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	bindEnv("api.url", "RECRUIT_API_URL", "NEXT_PUBLIC_API_URL")
	bindEnv("api.token-file", "RECRUIT_TOKEN_FILE")

	viper.SetDefault("api.url", recruit.DefaultAPIURL)
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("chat.user-identifier", recruit.DefaultUserIdentifier)
	viper.SetDefault("match.top-k", recruit.DefaultTopK)
	viper.SetDefault("output", string(formatText))

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is recruit-cli.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.StringP("output", "o", string(formatText), "output format: text, json or yaml")
	flags.Bool("no-color", false, "disable colors")
	flags.String("api-url", "", "base URL of the recruitment API")

	viper.BindPFlag("debug", flags.Lookup("debug"))
	viper.BindPFlag("json", flags.Lookup("json"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("no-color", flags.Lookup("no-color"))
	viper.BindPFlag("api.url", flags.Lookup("api-url"))
}

func bindEnv(key string, envs ...string) {
	if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
		log.Fatalf("binding %s environment variables: %v", strings.Join(envs, ", "), err)
	}
}

func initConfig() {
	// .env is optional, variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.API == nil {
		config.API = &APIConfig{}
	}
	if config.Chat == nil {
		config.Chat = &ChatConfig{}
	}
	if config.Match == nil {
		config.Match = &MatchConfig{}
	}
	return config, nil
}

// session is everything a command needs to talk to the API and print.
type session struct {
	config   *Config
	logger   *zap.Logger
	client   *recruit.Client
	printer  *terminal.Printer
	notifier *notifier
	format   format
}

func newSession(cmd *cobra.Command) (*session, error) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	format, err := parseFormat(config.Output)
	if err != nil {
		return nil, err
	}

	token, err := secrets.Optional(secrets.Source{
		Name:  "api token",
		Value: config.API.Token,
		Env:   tokenEnv,
		File:  config.API.TokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading api token: %w", err)
	}

	client := recruit.New(logger, config.API.URL, token)
	if config.API.Timeout > 0 {
		client.HTTPClient.Timeout = config.API.Timeout
	}
	if config.API.UserAgent != "" {
		client.UserAgent = config.API.UserAgent
	}
	if config.API.RateLimit > 0 {
		client.SetRateLimit(config.API.RateLimit)
	}

	logger.Debug("starting the recruit-cli",
		zap.String("version", version),
		zap.String("command", cmd.CommandPath()),
		zap.String("api_url", client.APIURL),
		zap.Bool("authenticated", token != ""),
	)

	noColor := viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "" || format != formatText
	printer := terminal.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), noColor)

	return &session{
		config:   config,
		logger:   logger,
		client:   client,
		printer:  printer,
		notifier: &notifier{printer: printer},
		format:   format,
	}, nil
}

// done flushes the logger and turns a shown failure into ErrReported.
func (s *session) done() error {
	_ = s.logger.Sync()
	if s.notifier.failed.Load() {
		return ErrReported
	}
	return nil
}

// notifier forwards to the printer and remembers whether anything failed.
type notifier struct {
	printer *terminal.Printer
	failed  atomic.Bool
}

func (n *notifier) Notify(msg app.Notification) {
	if msg.Level == app.LevelError {
		n.failed.Store(true)
	}
	n.printer.Notify(msg)
}
