package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/forumkit/discourse-go/client"
	"github.com/forumkit/discourse-go/discourse"

	"github.com/PuerkitoBio/purell"
	"github.com/urfave/cli/v2"
)

var (
	ErrConflictingAuth = errors.New("admin API key and user API key are mutually exclusive")
	ErrMissingUsername = errors.New("admin API key requires an API username")
)

// credentials and transport settings, as collected from flags and environment
type clientConfig struct {
	Host            string
	APIKey          string
	APIUsername     string
	UserAPIKey      string
	UserAPIClientID string
	Timeout         time.Duration
}

func configFromCLI(cctx *cli.Context) clientConfig {
	return clientConfig{
		Host:            cctx.String("host"),
		APIKey:          cctx.String("api-key"),
		APIUsername:     cctx.String("api-username"),
		UserAPIKey:      cctx.String("user-api-key"),
		UserAPIClientID: cctx.String("user-api-client-id"),
		Timeout:         cctx.Duration("timeout"),
	}
}

// Lower-cases scheme and hostname, drops default ports and any trailing slash. The sub-folder path is kept.
func normalizeHost(raw string) (string, error) {
	return purell.NormalizeURLString(raw, purell.FlagsSafe|purell.FlagRemoveTrailingSlash|purell.FlagRemoveDuplicateSlashes|purell.FlagRemoveFragment)
}

// Picks the auth mode from whichever credentials are configured.
func (cfg clientConfig) Client(logger *slog.Logger) (*discourse.Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("forum host URL is required")
	}
	host, err := normalizeHost(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid forum host URL %q: %w", cfg.Host, err)
	}

	var c *discourse.Client
	switch {
	case cfg.APIKey != "" && cfg.UserAPIKey != "":
		return nil, ErrConflictingAuth
	case cfg.APIKey != "":
		if cfg.APIUsername == "" {
			return nil, ErrMissingUsername
		}
		c = discourse.NewWithAPIKey(host, cfg.APIKey, cfg.APIUsername)
	case cfg.UserAPIKey != "" && cfg.UserAPIClientID != "":
		c = discourse.NewWithUserAPIKeyAndClientID(host, cfg.UserAPIKey, cfg.UserAPIClientID)
	case cfg.UserAPIKey != "":
		c = discourse.NewWithUserAPIKey(host, cfg.UserAPIKey)
	default:
		c = discourse.New(host)
	}

	if cfg.Timeout > 0 {
		hc := client.DefaultHTTPClient()
		hc.Timeout = cfg.Timeout
		c = c.WithHTTPClient(hc)
	}
	c = c.WithHeader("User-Agent", userAgent())
	if logger != nil {
		c = c.WithLogger(logger)
	}
	return c, nil
}

func loadClient(cctx *cli.Context) (*discourse.Client, error) {
	return configFromCLI(cctx).Client(slog.Default())
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func userAgent() string {
	return fmt.Sprintf("dsc/%s", client.UserAgent())
}

// parses a positional numeric id argument
func idArg(cctx *cli.Context, n int, name string) (uint64, error) {
	s := cctx.Args().Get(n)
	if s == "" {
		return 0, fmt.Errorf("need to provide %s as argument", name)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return id, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// reads a text argument; "-" means read it from stdin
func textArg(cctx *cli.Context, n int, name string) (string, error) {
	s := cctx.Args().Get(n)
	if s == "" {
		return "", fmt.Errorf("need to provide %s as argument", name)
	}
	if s != "-" {
		return s, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
