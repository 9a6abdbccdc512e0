// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/internal/store"
)

const (
	limitFlag = "limit"
	pullsFlag = "pulls"
)

func init() {
	historyCmd.Flags().String(nameFlag, "", "Only list entries of this document")
	historyCmd.Flags().Uint64(limitFlag, 20, "Maximum number of pushes to list. 0 lists all.")
	historyCmd.Flags().Bool(pullsFlag, false, "List pulls of the document instead of pushes")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the pushes and pulls recorded in the journal",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true

		cfg, err := loadSettings(command)
		if err != nil {
			return err
		}
		if cfg.Database == "" {
			return errors.New("the history command requires a --database")
		}

		journal, err := store.New(cfg.Database, logger)
		if err != nil {
			return err
		}
		defer journal.Close()

		name, _ := command.Flags().GetString(nameFlag)

		pulls, _ := command.Flags().GetBool(pullsFlag)
		if pulls {
			if name == "" {
				return errors.New("listing pulls requires a --name")
			}
			entries, err := journal.GetPulls(cfg.ProjectID, name)
			if err != nil {
				return err
			}
			return printJSON(entries)
		}

		limit, _ := command.Flags().GetUint64(limitFlag)
		entries, err := journal.GetPushes(&store.PushFilter{
			ProjectID:    cfg.ProjectID,
			DocumentName: name,
			Limit:        limit,
		})
		if err != nil {
			return err
		}

		return printJSON(entries)
	},
}
