// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package sink writes downloaded translations to their destination.
package sink

import (
	"context"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Sink stores one translated file per language.
type Sink interface {
	// Write stores body as fileName under languageCode and returns where
	// it was written.
	Write(ctx context.Context, languageCode, fileName string, body []byte) (string, error)
}

// objectPath builds the relative location of a translation.
func objectPath(prefix, languageCode, fileName string) (string, error) {
	if languageCode == "" || strings.ContainsAny(languageCode, `/\`) {
		return "", errors.Errorf("invalid language code %q", languageCode)
	}
	if fileName == "" || strings.ContainsAny(fileName, `/\`) || fileName == "." || fileName == ".." {
		return "", errors.Errorf("invalid file name %q", fileName)
	}

	return path.Join(prefix, languageCode, fileName), nil
}
