package main

import (
	"fmt"
	"os"

	"github.com/dacharyc/suggestdiff"
	"gopkg.in/yaml.v3"
)

// profile is an optional YAML render profile overriding the default
// markers and colors, e.g.:
//
//	color: true
//	deleteColor: brightred
//	insertColor: brightgreen
//	startDelete: "[-"
//	stopDelete: "-]"
//	startInsert: "{+"
//	stopInsert: "+}"
type profile struct {
	Color       *bool   `yaml:"color"`
	DeleteColor string  `yaml:"deleteColor"`
	InsertColor string  `yaml:"insertColor"`
	StartDelete *string `yaml:"startDelete"`
	StopDelete  *string `yaml:"stopDelete"`
	StartInsert *string `yaml:"startInsert"`
	StopInsert  *string `yaml:"stopInsert"`
}

// applyProfile loads a YAML profile file and overlays it on opts.
func applyProfile(path string, opts *suggestdiff.FormatOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	if p.Color != nil {
		opts.UseColor = *p.Color
	}
	if p.DeleteColor != "" {
		code, err := suggestdiff.ParseColor(p.DeleteColor)
		if err != nil {
			return fmt.Errorf("profile deleteColor: %w", err)
		}
		opts.DeleteColor = code
	}
	if p.InsertColor != "" {
		code, err := suggestdiff.ParseColor(p.InsertColor)
		if err != nil {
			return fmt.Errorf("profile insertColor: %w", err)
		}
		opts.InsertColor = code
	}
	if p.StartDelete != nil {
		opts.StartDelete = *p.StartDelete
	}
	if p.StopDelete != nil {
		opts.StopDelete = *p.StopDelete
	}
	if p.StartInsert != nil {
		opts.StartInsert = *p.StartInsert
	}
	if p.StopInsert != nil {
		opts.StopInsert = *p.StopInsert
	}
	return nil
}
