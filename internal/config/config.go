// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package config loads the settings of the qordoba command line tool.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/qordoba/qordoba-go/model"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "QORDOBA"

const defaultHTTPTimeout = 60 * time.Second

// Config holds the connection and destination settings.
type Config struct {
	APIURL         string        `yaml:"api_url" envconfig:"API_URL"`
	Username       string        `yaml:"username" envconfig:"USERNAME"`
	Password       string        `yaml:"password" envconfig:"PASSWORD"`
	APIKey         string        `yaml:"api_key" envconfig:"API_KEY"`
	ProjectID      int64         `yaml:"project_id" envconfig:"PROJECT_ID"`
	OrganizationID int64         `yaml:"organization_id" envconfig:"ORGANIZATION_ID"`
	HTTPTimeout    time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`

	Database string `yaml:"database" envconfig:"DATABASE"`

	Output string `yaml:"output" envconfig:"OUTPUT"`
	Bucket string `yaml:"bucket" envconfig:"BUCKET"`
	Prefix string `yaml:"prefix" envconfig:"PREFIX"`
	Region string `yaml:"region" envconfig:"REGION"`

	// Language overrides the project source language for push --check-language.
	Language string `yaml:"source_language" envconfig:"SOURCE_LANGUAGE"`
}

// Load reads the optional YAML file at path, then fills the environment
// from the optional dotenv file, then applies QORDOBA_* variables on top.
// Variables already present in the environment win over the dotenv file.
func Load(fs afero.Fs, path, envFile string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		b, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err = yaml.Unmarshal(b, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	if envFile != "" {
		if err := loadEnvFile(fs, envFile); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}

	cfg.applyDefaults()

	return cfg, nil
}

func loadEnvFile(fs afero.Fs, envFile string) error {
	file, err := fs.Open(envFile)
	if err != nil {
		return errors.Wrapf(err, "failed to open env file %s", envFile)
	}
	defer file.Close()

	values, err := godotenv.Parse(file)
	if err != nil {
		return errors.Wrapf(err, "failed to parse env file %s", envFile)
	}

	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err = os.Setenv(key, value); err != nil {
			return errors.Wrapf(err, "failed to set %s", key)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		c.APIURL = model.DefaultAPIURL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
}

// Validate reports settings required to talk to a project.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		if strings.TrimSpace(c.Username) == "" {
			return errors.New("username is required unless an API key is set")
		}
		if c.Password == "" {
			return errors.New("password is required unless an API key is set")
		}
	}
	if c.ProjectID <= 0 {
		return errors.New("project id must be positive")
	}
	if c.OrganizationID <= 0 {
		return errors.New("organization id must be positive")
	}
	if c.Output != "" && c.Bucket != "" {
		return errors.New("output directory and bucket are mutually exclusive")
	}

	return nil
}
