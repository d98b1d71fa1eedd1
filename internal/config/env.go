package config

import (
	"strconv"
	"strings"
)

// envVar maps one environment variable onto a setting.
type envVar struct {
	name string
	path string
	set  func(c *Config, value string) error
}

// envVars lists every supported TIERLINE_* variable.
var envVars = []envVar{
	{"TIERLINE_LOG_LEVEL", "logging.level", setString(func(c *Config) *string { return &c.Logging.Level })},
	{"TIERLINE_HISTORY_MAX_ENTRIES", "history.maxEntries", setInt(func(c *Config) *int { return &c.History.MaxEntries })},
	{"TIERLINE_VIEW_MIN_ZOOM", "view.minZoom", setFloat(func(c *Config) *float64 { return &c.View.MinZoom })},
	{"TIERLINE_VIEW_MAX_ZOOM", "view.maxZoom", setFloat(func(c *Config) *float64 { return &c.View.MaxZoom })},
	{"TIERLINE_VIEW_ZOOM_STEP", "view.zoomStep", setFloat(func(c *Config) *float64 { return &c.View.ZoomStep })},
	{"TIERLINE_NAVIGATION_SEEK_STEP", "navigation.seekStep", setFloat(func(c *Config) *float64 { return &c.Navigation.SeekStep })},
	{"TIERLINE_NAVIGATION_SELECTION_STEP", "navigation.selectionStep", setFloat(func(c *Config) *float64 { return &c.Navigation.SelectionStep })},
	{"TIERLINE_NAVIGATION_BOUNDARY_EPSILON", "navigation.boundaryEpsilon", setFloat(func(c *Config) *float64 { return &c.Navigation.BoundaryEpsilon })},
	{"TIERLINE_IMPORT_SKIP_EMPTY", "import.skipEmpty", setBool(func(c *Config) *bool { return &c.Import.SkipEmpty })},
	{"TIERLINE_IMPORT_NORMALIZE_TEXT", "import.normalizeText", setBool(func(c *Config) *bool { return &c.Import.NormalizeText })},
	{"TIERLINE_EXPORT_FORMAT", "export.format", setString(func(c *Config) *string { return &c.Export.Format })},
	{"TIERLINE_EXPORT_FILL_GAPS", "export.fillGaps", setBool(func(c *Config) *bool { return &c.Export.FillGaps })},
	{"TIERLINE_EXPORT_TIERS", "export.tiers", func(c *Config, v string) error {
		c.Export.Tiers = splitList(v)
		return nil
	}},
	{"TIERLINE_KEYMAP_FILE", "keymap.file", setString(func(c *Config) *string { return &c.Keymap.File })},
}

// EnvVars returns the supported environment variable names and the setting
// each one overrides.
func EnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[v.name] = v.path
	}
	return out
}

// applyEnv overrides settings from the environment. Empty values count as
// set for strings and are rejected for numbers and booleans.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs ValidationErrors
	for _, v := range envVars {
		raw, ok := lookup(v.name)
		if !ok {
			continue
		}
		if err := v.set(c, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, &ValidationError{
				Path:    v.path,
				Message: v.name + ": " + err.Error(),
				Value:   raw,
				Code:    ErrCodeTypeMismatch,
			})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func setFloat(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
