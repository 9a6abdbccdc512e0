// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

//go:build e2e

package e2e

/*
   These tests talk to a live translation API. Build them with the e2e tag:

	 go test -tags=e2e ./test/e2e/...

   Credentials and the project come from the QORDOBA_* variables read by
   internal/config. Set QORDOBA_E2E_BUCKET to also write to S3.
*/

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qordoba/qordoba-go/internal/config"
	"github.com/qordoba/qordoba-go/internal/sink"
	"github.com/qordoba/qordoba-go/internal/testlib"
	"github.com/qordoba/qordoba-go/model"
)

type environment struct {
	cfg    *config.Config
	bucket string
}

func validatedEnvironment(t *testing.T) *environment {
	t.Log("validate the environment and gather variables")

	cfg, err := config.Load(afero.NewOsFs(), "", "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate(), "set QORDOBA_USERNAME, QORDOBA_PASSWORD, QORDOBA_PROJECT_ID and QORDOBA_ORGANIZATION_ID")

	return &environment{
		cfg:    cfg,
		bucket: os.Getenv("QORDOBA_E2E_BUCKET"),
	}
}

func newDocument(t *testing.T, env *environment, name string) *model.Document {
	document := model.NewDocument(env.cfg.APIURL, env.cfg.Username, env.cfg.Password, env.cfg.ProjectID, env.cfg.OrganizationID)
	document.SetLogger(testlib.MakeLogger(t))
	document.SetName(name)
	document.SetTag("e2e")
	return document
}

func TestPushCheckPull(t *testing.T) {
	env := validatedEnvironment(t)
	name := fmt.Sprintf("e2e-%d", time.Now().Unix())

	t.Log("push a new document")

	document := newDocument(t, env, name)
	section, err := document.AddSection("buttons")
	require.NoError(t, err)
	require.NoError(t, section.AddTranslationString("ok", "OK"))
	require.NoError(t, document.AddTranslationString("title", "Hello world"))

	id, err := document.CreateTranslation()
	require.NoError(t, err)
	require.NotZero(t, id)

	t.Log("the document shows up in every project language")

	results, err := document.Project().Check(name, "", "e2e", model.StatusNone, model.TypeJSON)
	require.NoError(t, err)
	codes, err := document.ProjectLanguageCodes()
	require.NoError(t, err)
	assert.Len(t, results, len(codes))

	t.Log("update the document content")

	require.NoError(t, document.UpdateTranslationString("title", "Hello again"))
	updatedID, err := document.UpdateTranslation()
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)

	t.Log("pull saved translations")

	translations, err := document.FetchSavedTranslation("")
	require.NoError(t, err)

	var destination sink.Sink = sink.NewDirSink(afero.NewOsFs(), t.TempDir())
	if env.bucket != "" {
		ctx := context.Background()
		s3Sink, err := sink.NewS3Sink(ctx, env.cfg.Region, env.bucket, "e2e/"+name)
		require.NoError(t, err)
		require.NoError(t, s3Sink.CheckBucket(ctx))
		destination = s3Sink
	}

	for code, file := range translations {
		location, err := destination.Write(context.Background(), code, name+".json", file.Raw)
		require.NoError(t, err)
		t.Logf("%s written to %s", code, location)
	}
}
