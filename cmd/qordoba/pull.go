// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qordoba/qordoba-go/internal/config"
	"github.com/qordoba/qordoba-go/internal/sink"
	"github.com/qordoba/qordoba-go/internal/store"
	"github.com/qordoba/qordoba-go/model"
)

const (
	savedFlag  = "saved"
	outFlag    = "out"
	bucketFlag = "bucket"
	prefixFlag = "prefix"
	regionFlag = "region"
)

func init() {
	pullCmd.Flags().Bool(savedFlag, false, "Download saved translations instead of completed ones")
	pullCmd.Flags().String(outFlag, "", "Directory to write translations to, one subdirectory per language")
	pullCmd.Flags().String(bucketFlag, "", "S3 bucket to write translations to instead of a directory")
	pullCmd.Flags().String(prefixFlag, "", "Key prefix inside the S3 bucket")
	pullCmd.Flags().String(regionFlag, "", "AWS region of the S3 bucket")
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the translations of a document",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true

		cfg, err := loadProjectSettings(command)
		if err != nil {
			return err
		}
		applySinkFlags(command, cfg)
		if err = cfg.Validate(); err != nil {
			return err
		}

		document, err := documentFromFlags(command, newDocument(cfg))
		if err != nil {
			return err
		}
		language, _ := command.Flags().GetString(languageFlag)
		saved, _ := command.Flags().GetBool(savedFlag)

		ctx := context.Background()
		destination, err := newSink(ctx, cfg)
		if err != nil {
			return err
		}

		var translations map[string]*model.TranslationFile
		if saved {
			translations, err = document.FetchSavedTranslation(language)
		} else {
			translations, err = document.FetchTranslation(language)
		}
		if err != nil {
			return err
		}

		journal, err := openJournal(cfg)
		if err != nil {
			return err
		}
		if journal != nil {
			defer journal.Close()
		}

		fileName := document.Name() + "." + string(document.Type())
		written := make(map[string]string, len(translations))

		codes := make([]string, 0, len(translations))
		for code := range translations {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			location, err := destination.Write(ctx, code, fileName, translations[code].Raw)
			if err != nil {
				return errors.Wrapf(err, "failed to write the %s translation", code)
			}
			written[code] = location

			logger.WithFields(logrus.Fields{
				"document":    document.Name(),
				"language":    code,
				"destination": location,
			}).Info("Translation written")

			if journal == nil {
				continue
			}
			err = journal.CreatePull(&store.Pull{
				ProjectID:    cfg.ProjectID,
				DocumentName: document.Name(),
				LanguageCode: code,
				Saved:        saved,
				Destination:  location,
			})
			if err != nil {
				logger.WithError(err).Warn("Failed to record pull")
			}
		}

		return printJSON(written)
	},
}

func applySinkFlags(command *cobra.Command, cfg *config.Config) {
	flags := command.Flags()
	if flags.Changed(outFlag) {
		cfg.Output, _ = flags.GetString(outFlag)
	}
	if flags.Changed(bucketFlag) {
		cfg.Bucket, _ = flags.GetString(bucketFlag)
	}
	if flags.Changed(prefixFlag) {
		cfg.Prefix, _ = flags.GetString(prefixFlag)
	}
	if flags.Changed(regionFlag) {
		cfg.Region, _ = flags.GetString(regionFlag)
	}
}

func newSink(ctx context.Context, cfg *config.Config) (sink.Sink, error) {
	if cfg.Bucket == "" {
		output := cfg.Output
		if output == "" {
			output = "."
		}
		return sink.NewDirSink(afero.NewOsFs(), output), nil
	}

	s3Sink, err := sink.NewS3Sink(ctx, cfg.Region, cfg.Bucket, cfg.Prefix)
	if err != nil {
		return nil, err
	}
	if err = s3Sink.CheckBucket(ctx); err != nil {
		return nil, err
	}

	return s3Sink, nil
}
