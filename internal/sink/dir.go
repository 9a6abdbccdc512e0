// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package sink

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DirSink writes translations below a local directory, one
// subdirectory per language.
type DirSink struct {
	fs  afero.Fs
	dir string
}

// NewDirSink creates a DirSink rooted at dir on fs.
func NewDirSink(fs afero.Fs, dir string) *DirSink {
	return &DirSink{fs: fs, dir: dir}
}

// Write satisfies the Sink interface.
func (d *DirSink) Write(ctx context.Context, languageCode, fileName string, body []byte) (string, error) {
	relative, err := objectPath("", languageCode, fileName)
	if err != nil {
		return "", err
	}
	target := filepath.Join(d.dir, filepath.FromSlash(relative))

	if err = d.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create directory for %s", target)
	}
	if err = afero.WriteFile(d.fs, target, body, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", target)
	}

	return target, nil
}
