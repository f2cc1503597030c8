/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/bookshelf/internal/iofs"
	"github.com/gnames/bookshelf/internal/iologger"
	app "github.com/gnames/bookshelf/pkg"
	"github.com/gnames/bookshelf/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "bookshelf",
		Short:   "Bookshelf manages a catalog of book authors",
		Long: `Bookshelf keeps a catalog of book authors in PostgreSQL or SQLite.

Features:
  - Schema Management: create the authors table
  - Data Import: load authors from a CSV file, skipping known names
  - Optimization: vacuum and analyze the database
  - REST API: browse and search authors over HTTP

Configuration is read from ~/.config/bookshelf/config.yaml and from
BOOKSHELF_* environment variables (a .env file is loaded if present).
Running bookshelf without a subcommand prints the effective settings.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "bookshelf version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for bookshelf")

	rootCmd.AddCommand(
		getCreateCmd(),
		getPopulateAuthorsCmd(),
		getOptimizeCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	// Missing .env is normal, variables may come from the shell.
	_ = godotenv.Load()

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Will be reconfigured with user's settings below
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Update([]config.Option{config.OptDatabasePath(cfg.SQLitePath())})
	}

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)

	return nil
}

// runRoot prints the effective configuration.
func runRoot(cmd *cobra.Command, args []string) error {
	show := *cfg
	if show.Database.Password != "" {
		show.Database.Password = "********"
	}

	out, err := yaml.Marshal(show)
	if err != nil {
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(cfg.HomeDir),
	)
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the environment variables that can override
// config.yaml. They match the persistent fields of config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "BOOKSHELF_DATABASE_DRIVER")
	v.BindEnv("database.host", "BOOKSHELF_DATABASE_HOST")
	v.BindEnv("database.port", "BOOKSHELF_DATABASE_PORT")
	v.BindEnv("database.user", "BOOKSHELF_DATABASE_USER")
	v.BindEnv("database.password", "BOOKSHELF_DATABASE_PASSWORD")
	v.BindEnv("database.database", "BOOKSHELF_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "BOOKSHELF_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "BOOKSHELF_DATABASE_PATH")
	v.BindEnv("database.batch_size", "BOOKSHELF_DATABASE_BATCH_SIZE")

	// Web server configuration
	v.BindEnv("server.port", "BOOKSHELF_SERVER_PORT")
	v.BindEnv("server.page_size", "BOOKSHELF_SERVER_PAGE_SIZE")

	// Log configuration
	v.BindEnv("log.level", "BOOKSHELF_LOG_LEVEL")
	v.BindEnv("log.format", "BOOKSHELF_LOG_FORMAT")
	v.BindEnv("log.destination", "BOOKSHELF_LOG_DESTINATION")

	v.AutomaticEnv()
}
