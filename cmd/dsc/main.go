package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adrg/xdg"
	"github.com/carlmjohnson/versioninfo"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

// Loads $XDG_CONFIG_HOME/dsc/config.env, if present. Variables already set (including from ./.env) take precedence.
func loadConfigFile() error {
	fPath, err := xdg.SearchConfigFile("dsc/config.env")
	if err != nil {
		// no config file
		return nil
	}
	return godotenv.Load(fPath)
}

func run(args []string) error {
	if err := loadConfigFile(); err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	var otelShutdown func()

	app := cli.App{
		Name:    "dsc",
		Usage:   "command-line client for Discourse forums",
		Version: versioninfo.Short(),
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Usage:   "forum base URL (scheme, hostname, optional sub-folder)",
			Value:   "https://meta.discourse.org",
			EnvVars: []string{"DISCOURSE_URL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "admin API key (requires --api-username)",
			EnvVars: []string{"DISCOURSE_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "api-username",
			Usage:   "username to act as with an admin API key",
			EnvVars: []string{"DISCOURSE_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "user-api-key",
			Usage:   "per-user API key",
			EnvVars: []string{"DISCOURSE_USER_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "user-api-client-id",
			Usage:   "client id the user API key was issued to (optional)",
			EnvVars: []string{"DISCOURSE_USER_API_CLIENT_ID"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "overall timeout for each HTTP request (0 for none)",
			Value:   0,
			EnvVars: []string{"DISCOURSE_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   "warn",
			EnvVars: []string{"DISCOURSE_LOG_LEVEL", "LOG_LEVEL"},
		},
	}
	app.Before = func(cctx *cli.Context) error {
		configLogger(cctx, os.Stderr)
		shutdown, err := configOTEL("dsc")
		if err != nil {
			return fmt.Errorf("configuring tracing: %w", err)
		}
		otelShutdown = shutdown
		return nil
	}
	app.After = func(cctx *cli.Context) error {
		if otelShutdown != nil {
			otelShutdown()
		}
		return nil
	}
	app.Commands = []*cli.Command{
		cmdLatest,
		cmdCategories,
		cmdCategoryTopics,
		cmdTopic,
		cmdPost,
		cmdCreateTopic,
		cmdReply,
		cmdEditPost,
		cmdLike,
		cmdUnlike,
		cmdDeletePost,
		cmdChat,
		cmdNotifications,
		cmdSummary,
		cmdSmokeTest,
	}
	return app.Run(args)
}
