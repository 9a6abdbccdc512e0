// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/model"
)

const (
	languageFlag = "language"
	typeFlag     = "type"
)

func init() {
	for _, command := range []*cobra.Command{checkCmd, pullCmd} {
		command.Flags().String(nameFlag, "", "Name of the document")
		command.Flags().String(tagFlag, "", "Version tag to select. The first page found is used when empty.")
		command.Flags().String(languageFlag, "", "Language code such as fr-fr. Every project language when empty.")
		command.Flags().String(typeFlag, string(model.TypeJSON), "Document type, json or html")
		command.MarkFlagRequired(nameFlag)
	}
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the completed translations of a document",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true

		cfg, err := loadProjectSettings(command)
		if err != nil {
			return err
		}

		document, err := documentFromFlags(command, newDocument(cfg))
		if err != nil {
			return err
		}
		language, _ := command.Flags().GetString(languageFlag)

		results, err := document.CheckTranslation(language)
		if err != nil {
			return err
		}

		return printJSON(results)
	},
}

// documentFromFlags applies the name, tag and type flags to document.
func documentFromFlags(command *cobra.Command, document *model.Document) (*model.Document, error) {
	name, _ := command.Flags().GetString(nameFlag)
	document.SetName(name)

	tag, _ := command.Flags().GetString(tagFlag)
	document.SetTag(tag)

	docType, _ := command.Flags().GetString(typeFlag)
	switch model.DocumentType(docType) {
	case model.TypeJSON, model.TypeHTML:
		document.SetType(model.DocumentType(docType))
	default:
		return nil, errors.Errorf("unsupported document type %q", docType)
	}

	return document, nil
}
