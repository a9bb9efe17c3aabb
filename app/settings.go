// Copyright 2026 The Places Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/placesapp/placesweb/config"
	"github.com/placesapp/placesweb/logging"
)

// EnvPrefix prefixes environment variables read into [Settings],
// e.g. PLACESWEB_MAPS_LANG.
const EnvPrefix = "PLACESWEB_"

// EnvBindings maps well-known environment variables to settings keys.
// GEOCODER_API_KEY is the variable the shell build has always read.
var EnvBindings = map[string]string{
	"GEOCODER_API_KEY": "maps.apikey",
}

//go:embed settings.schema.json
var settingsSchema []byte

// Settings is the bound configuration of the places shell.
type Settings struct {
	Service ServiceSettings `config:"service"`
	Log     LogSettings     `config:"log"`
	Maps    MapsSettings    `config:"maps"`
	Shell   ShellSettings   `config:"shell"`
	Router  RouterSettings  `config:"router"`
}

// ServiceSettings holds service metadata.
type ServiceSettings struct {
	Name        string `config:"name" default:"placesweb" validate:"required"`
	Version     string `config:"version" default:"dev" validate:"required"`
	Environment string `config:"environment" default:"development" validate:"oneof=development production"`
}

// LogSettings selects the log handler and level.
type LogSettings struct {
	Level  string `config:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `config:"format" default:"console" validate:"oneof=json text console"`
}

// ShellSettings configures the HTML shell build.
type ShellSettings struct {
	Title       string   `config:"title" default:"Places" validate:"required"`
	Lang        string   `config:"lang" default:"ru" validate:"required,bcp47_language_tag"`
	OutDir      string   `config:"outdir" default:"dist" validate:"required"`
	Precompress []string `config:"precompress" default:"br,gzip" validate:"dive,oneof=br gzip"`
}

// RouterSettings configures navigation.
type RouterSettings struct {
	// Base is the public path the app is served under, "" for the root.
	Base string `config:"base" validate:"omitempty,startswith=/"`
}

var settingsValidator = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("config")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks every field and reports all failures at once as a
// [*ValidationError].
func (s *Settings) Validate() error {
	err := settingsValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var errs ValidationError
	for _, fe := range fieldErrs {
		// Namespace is "Settings.maps.apikey"
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		errs.Add(newFieldError(field, fe.Value(), validationMessage(fe), fe.Tag()))
	}
	return errs.ToError()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "cannot be empty"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "startswith":
		return "must start with " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// LoadSettings loads [Settings] from, in increasing precedence: the given
// options (typically [config.WithOptionalFile]), PLACESWEB_* variables and
// [EnvBindings]. The returned Config holds the merged values.
func LoadSettings(ctx context.Context, opts ...config.Option) (*Settings, *config.Config, error) {
	var s Settings

	all := append(append([]config.Option(nil), opts...),
		config.WithEnv(EnvPrefix),
		config.WithEnvBindings(EnvBindings),
		config.WithJSONSchema(settingsSchema),
		config.WithBinding(&s),
	)
	cfg, err := config.New(all...)
	if err != nil {
		return nil, nil, fmt.Errorf("settings: %w", err)
	}
	if err = cfg.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("settings: %w", err)
	}
	return &s, cfg, nil
}

// NewLogger builds the logger described by s, writing to w.
func NewLogger(s *Settings, w io.Writer) (*logging.Logger, error) {
	handler, err := logging.ParseHandlerType(s.Log.Format)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(
		logging.WithHandlerType(handler),
		logging.WithLevel(level),
		logging.WithOutput(w),
		logging.WithServiceName(s.Service.Name),
		logging.WithServiceVersion(s.Service.Version),
		logging.WithEnvironment(s.Service.Environment),
	)
}
