// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/internal/bundle"
	"github.com/qordoba/qordoba-go/internal/langcheck"
	"github.com/qordoba/qordoba-go/internal/store"
	"github.com/qordoba/qordoba-go/model"
)

const (
	nameFlag          = "name"
	tagFlag           = "tag"
	updateFlag        = "update"
	checkLanguageFlag = "check-language"
)

func init() {
	pushCmd.Flags().String(nameFlag, "", "Document name. Defaults to the file name without its extension.")
	pushCmd.Flags().String(tagFlag, "", "Version tag of the document")
	pushCmd.Flags().Bool(updateFlag, false, "Replace the content of an existing document instead of creating one")
	pushCmd.Flags().Bool(checkLanguageFlag, false, "Warn when the content does not look like the source language (source_language setting, else the project source language)")
}

var pushCmd = &cobra.Command{
	Use:   "push FILE",
	Short: "Upload a JSON, HTML or Markdown file for translation",
	Args:  cobra.ExactArgs(1),
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true

		cfg, err := loadProjectSettings(command)
		if err != nil {
			return err
		}

		document := newDocument(cfg)
		name, _ := command.Flags().GetString(nameFlag)
		document.SetName(name)
		if tag, _ := command.Flags().GetString(tagFlag); tag != "" {
			document.SetTag(tag)
		}

		if err = bundle.LoadFile(afero.NewOsFs(), args[0], document); err != nil {
			return err
		}

		checkLanguage, _ := command.Flags().GetBool(checkLanguageFlag)
		if checkLanguage {
			if _, err = warnOnLanguageMismatch(document, cfg.Language); err != nil {
				return err
			}
		}

		journal, err := openJournal(cfg)
		if err != nil {
			return err
		}
		if journal != nil {
			defer journal.Close()
		}

		update, _ := command.Flags().GetBool(updateFlag)
		fileID, action, err := pushDocument(document, journal, update)

		if journal != nil {
			push := &store.Push{
				ProjectID:      cfg.ProjectID,
				OrganizationID: cfg.OrganizationID,
				DocumentName:   document.Name(),
				DocumentType:   string(document.Type()),
				Tag:            document.Tag(),
				Action:         action,
				FileID:         fileID,
			}
			if err != nil {
				push.Error = err.Error()
			}
			if journalErr := journal.CreatePush(push); journalErr != nil {
				logger.WithError(journalErr).Warn("Failed to record push")
			}
		}
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"document": document.Name(),
			"type":     document.Type(),
			"tag":      document.Tag(),
			"file-id":  fileID,
			"action":   action,
		}).Info("Document pushed")

		return printJSON(map[string]interface{}{
			"id":     fileID,
			"name":   document.Name(),
			"type":   document.Type(),
			"tag":    document.Tag(),
			"action": action,
		})
	},
}

func pushDocument(document *model.Document, journal *store.SQLStore, update bool) (int64, string, error) {
	if !update {
		fileID, err := document.CreateTranslation()
		return fileID, store.ActionCreate, err
	}

	if journal != nil {
		fileID, err := journal.LastFileID(document.Project().ProjectID(), document.Name())
		if err != nil {
			return 0, store.ActionUpdate, errors.Wrap(err, "failed to look up the last pushed file")
		}
		if fileID > 0 {
			document.SetID(fileID)
		}
	}

	fileID, err := document.UpdateTranslation()
	return fileID, store.ActionUpdate, err
}

// warnOnLanguageMismatch compares the content with source, or with the
// project source language when source is empty, and reports a mismatch.
func warnOnLanguageMismatch(document *model.Document, source string) (bool, error) {
	if source == "" {
		metadata, err := document.Project().Metadata()
		if err != nil {
			return false, err
		}
		source = metadata.Project.SourceLanguage.Code
	}

	text, err := documentText(document)
	if err != nil {
		return false, err
	}

	ok, detected := langcheck.Matches(text, source)
	if !ok {
		logger.WithFields(logrus.Fields{
			"document": document.Name(),
			"source":   source,
			"detected": detected,
		}).Warn("Content does not look like the source language")
	}

	return !ok, nil
}

// documentText joins every translatable string of document.
func documentText(document *model.Document) (string, error) {
	if document.Type() == model.TypeHTML {
		return document.TranslationContent()
	}

	var text string
	for _, entry := range document.Sections() {
		switch e := entry.(type) {
		case *model.TranslateString:
			text += e.Value() + "\n"
		case *model.TranslateSection:
			for _, str := range e.Strings() {
				text += str.Value() + "\n"
			}
		}
	}

	return text, nil
}
