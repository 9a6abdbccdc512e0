// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package bundle

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed bundle.schema.json
var bundleSchemaJSON string

const bundleSchemaName = "bundle.schema.json"

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource(bundleSchemaName, strings.NewReader(bundleSchemaJSON)); err != nil {
			compiledSchemaErr = errors.Wrap(err, "failed to add bundle schema")
			return
		}

		compiledSchema, compiledSchemaErr = compiler.Compile(bundleSchemaName)
		if compiledSchemaErr != nil {
			compiledSchemaErr = errors.Wrap(compiledSchemaErr, "failed to compile bundle schema")
		}
	})

	return compiledSchema, compiledSchemaErr
}

// Validate checks that b is a single JSON object of strings and sections
// of strings.
func Validate(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return errors.New("bundle is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return errors.Wrap(err, "failed to decode bundle")
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("bundle contains trailing content")
	}

	schema, err := loadSchema()
	if err != nil {
		return err
	}
	if err = schema.Validate(value); err != nil {
		return errors.Wrap(err, "bundle does not match the schema")
	}

	return nil
}
