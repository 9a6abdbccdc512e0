// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/model"
)

const allFlag = "all"

func init() {
	languagesCmd.Flags().Bool(allFlag, false, "Also list every language known to the API")
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the target languages of the project",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true

		cfg, err := loadProjectSettings(command)
		if err != nil {
			return err
		}
		document := newDocument(cfg)

		codes, err := document.ProjectLanguageCodes()
		if err != nil {
			return err
		}

		all, _ := command.Flags().GetBool(allFlag)
		if !all {
			return printJSON(codes)
		}

		if err = document.FetchMetadata(); err != nil {
			return err
		}

		return printJSON(struct {
			Project []model.LanguageCode `json:"project"`
			All     []model.Language     `json:"all"`
		}{
			Project: codes,
			All:     document.Languages(),
		})
	},
}
