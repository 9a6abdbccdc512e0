// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/internal/store"
)

func init() {
	schemaCmd.AddCommand(schemaMigrateCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manipulate the schema of the journal database.",
}

var schemaMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the schema to the latest supported version.",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true

		cfg, err := loadSettings(command)
		if err != nil {
			return err
		}
		if cfg.Database == "" {
			return errors.New("the schema migrate command requires a --database")
		}

		sqlStore, err := store.New(cfg.Database, logger)
		if err != nil {
			return err
		}
		defer sqlStore.Close()

		if err = sqlStore.Migrate(); err != nil {
			return err
		}

		version, err := sqlStore.CurrentVersion()
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"version": version.String(),
			"latest":  store.LatestVersion().String(),
		}).Info("Schema migrated")

		return nil
	},
}
