package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "alumnet"
	s.app.Usage = "Alumni engagement backend"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to a TOML config file, environment variables override it",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis and the notification websocket.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to expire invitations and recompute fund totals periodically.`,
		},
		{
			Action:    s.startMigrate,
			Name:      "migrate",
			Usage:     "Migrate the database",
			ArgsUsage: "[version]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Run only this migrator (auto or a four-digit version)",
				},
			},
			Category:    "Database",
			Description: `Used to run every pending migrator, or only one of them.`,
		},
	}
}
