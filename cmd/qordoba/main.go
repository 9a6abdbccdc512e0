// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	apiURLFlag         = "api-url"
	usernameFlag       = "username"
	passwordFlag       = "password"
	apiKeyFlag         = "api-key"
	projectIDFlag      = "project-id"
	organizationIDFlag = "organization-id"
	configFlag         = "config"
	envFlag            = "env"
	debugFlag          = "debug"
	databaseFlag       = "database"
)

var rootCmd = &cobra.Command{
	Use:   "qordoba",
	Short: "Push source documents to a translation project and pull their translations",
	Long:  "qordoba uploads JSON string bundles, HTML and Markdown documents to a translation project, checks their progress and downloads the finished translations to a directory or an S3 bucket.",
	// SilenceErrors allows us to explicitly log the error returned from rootCmd below.
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String(apiURLFlag, "", "Base URL of the translation API")
	rootCmd.PersistentFlags().String(usernameFlag, "", "Account username")
	rootCmd.PersistentFlags().String(passwordFlag, "", "Account password")
	rootCmd.PersistentFlags().String(apiKeyFlag, "", "API key used instead of a username and password")
	rootCmd.PersistentFlags().Int64(projectIDFlag, 0, "ID of the translation project")
	rootCmd.PersistentFlags().Int64(organizationIDFlag, 0, "ID of the organization owning the project")
	rootCmd.PersistentFlags().String(configFlag, "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String(envFlag, "", "Path to a .env file loaded before reading QORDOBA_* variables")
	rootCmd.PersistentFlags().Bool(debugFlag, false, "Whether to output debug logs")
	rootCmd.PersistentFlags().String(databaseFlag, "", "Postgres DSN of the push and pull journal. Journaling is off when empty.")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
