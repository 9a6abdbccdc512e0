// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/internal/config"
	"github.com/qordoba/qordoba-go/internal/store"
	"github.com/qordoba/qordoba-go/model"
)

// loadSettings reads the configuration layers and applies the flags the
// user set explicitly on top.
func loadSettings(command *cobra.Command) (*config.Config, error) {
	debug, _ := command.Flags().GetBool(debugFlag)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	configPath, _ := command.Flags().GetString(configFlag)
	envFile, _ := command.Flags().GetString(envFlag)

	cfg, err := config.Load(afero.NewOsFs(), configPath, envFile)
	if err != nil {
		return nil, err
	}

	flags := command.Flags()
	if flags.Changed(apiURLFlag) {
		cfg.APIURL, _ = flags.GetString(apiURLFlag)
	}
	if flags.Changed(usernameFlag) {
		cfg.Username, _ = flags.GetString(usernameFlag)
	}
	if flags.Changed(passwordFlag) {
		cfg.Password, _ = flags.GetString(passwordFlag)
	}
	if flags.Changed(apiKeyFlag) {
		cfg.APIKey, _ = flags.GetString(apiKeyFlag)
	}
	if flags.Changed(projectIDFlag) {
		cfg.ProjectID, _ = flags.GetInt64(projectIDFlag)
	}
	if flags.Changed(organizationIDFlag) {
		cfg.OrganizationID, _ = flags.GetInt64(organizationIDFlag)
	}
	if flags.Changed(databaseFlag) {
		cfg.Database, _ = flags.GetString(databaseFlag)
	}

	return cfg, nil
}

// loadProjectSettings is loadSettings for commands talking to the API.
func loadProjectSettings(command *cobra.Command) (*config.Config, error) {
	cfg, err := loadSettings(command)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newDocument(cfg *config.Config) *model.Document {
	document := model.NewDocument(cfg.APIURL, cfg.Username, cfg.Password, cfg.ProjectID, cfg.OrganizationID)
	document.SetLogger(logger)

	connection := document.Connection()
	connection.SetAPIKey(cfg.APIKey)
	connection.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})

	return document
}

// openJournal returns nil when no database is configured.
func openJournal(cfg *config.Config) (*store.SQLStore, error) {
	if cfg.Database == "" {
		return nil, nil
	}

	return store.New(cfg.Database, logger)
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return errors.Wrap(err, "failed to print JSON")
	}
	return nil
}
