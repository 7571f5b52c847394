// Package tui prompts the user in a terminal: it picks which records of a
// source get builders and confirms overwriting generated files.
package tui

import (
	"context"
	"fmt"
	"strings"
)

// DefaultPageSize bounds how many candidates the selection prompt shows at once.
const DefaultPageSize = 15

// Option configures a Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithPageSize overrides DefaultPageSize.
func WithPageSize(size int) Option {
	return func(p *Prompter) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithPreselected marks every candidate as selected when the prompt opens.
func WithPreselected(enabled bool) Option {
	return func(p *Prompter) {
		p.preselect = enabled
	}
}

// Prompter implements generator.Selector on top of a PromptDriver.
type Prompter struct {
	driver    PromptDriver
	pageSize  int
	preselect bool
}

// New constructs a Prompter using the survey driver unless overridden.
func New(options ...Option) *Prompter {
	p := &Prompter{pageSize: DefaultPageSize, preselect: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// Select asks which of candidates should get a builder. The answer keeps
// the candidates' order regardless of the order they were ticked in.
func (p *Prompter) Select(ctx context.Context, location string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCandidates, location)
	}
	if len(candidates) == 1 {
		if err := p.driver.Info(ctx, fmt.Sprintf("%s declares a single record: %s", location, candidates[0])); err != nil {
			return nil, err
		}
		return []string{candidates[0]}, nil
	}

	cfg := SelectConfig{
		Message:  "Select records in " + location,
		Options:  candidates,
		Help:     "A builder is generated for every selected record.",
		PageSize: p.pageSize,
	}
	if p.preselect {
		cfg.Defaults = make([]int, len(candidates))
		for i := range candidates {
			cfg.Defaults[i] = i
		}
	}

	picked, err := p.driver.MultiSelect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(picked))
	seen := make(map[int]struct{}, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(candidates) {
			return nil, fmt.Errorf("tui: selection index %d out of range", idx)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, candidates[idx])
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCandidates, location)
	}
	return sortByCandidates(out, candidates), nil
}

// ConfirmOverwrite asks before replacing path. Files carrying the generated
// header are replaced without asking.
func (p *Prompter) ConfirmOverwrite(ctx context.Context, path string, existing []byte) (bool, error) {
	if IsGenerated(existing) {
		return true, nil
	}
	return p.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s exists and was not generated. Overwrite?", path),
		Default: false,
	})
}

// IsGenerated reports whether src starts with a "Code generated ... DO NOT
// EDIT." line comment before the package clause.
func IsGenerated(src []byte) bool {
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "package ") {
			return false
		}
		if strings.HasPrefix(line, "// Code generated ") && strings.HasSuffix(line, " DO NOT EDIT.") {
			return true
		}
	}
	return false
}

func sortByCandidates(picked, candidates []string) []string {
	keep := make(map[string]struct{}, len(picked))
	for _, name := range picked {
		keep[name] = struct{}{}
	}
	out := make([]string, 0, len(picked))
	for _, name := range candidates {
		if _, ok := keep[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
