package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubDriver struct {
	multiIdx     [][]int
	confirm      []bool
	err          error
	infoMessages []string
	configs      []SelectConfig
	confirmCfgs  []ConfirmConfig
	multiPos     int
	confirmPos   int
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmCfgs = append(s.confirmCfgs, cfg)
	if s.err != nil {
		return false, s.err
	}
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.configs = append(s.configs, cfg)
	if s.err != nil {
		return nil, s.err
	}
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multi-select scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestSelectKeepsCandidateOrder(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{2, 0, 2}}}
	p := New(WithPromptDriver(driver), WithPageSize(5))

	got, err := p.Select(context.Background(), "user.go", []string{"User", "Pair", "Event"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"User", "Event"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	cfg := driver.configs[0]
	if cfg.Message != "Select records in user.go" || cfg.PageSize != 5 {
		t.Fatalf("unexpected prompt config: %+v", cfg)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, cfg.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectWithoutPreselection(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{1}}}
	p := New(WithPromptDriver(driver), WithPreselected(false))

	got, err := p.Select(context.Background(), "models.yaml", []string{"User", "Pair"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"Pair"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if driver.configs[0].Defaults != nil {
		t.Fatalf("expected no defaults, got %v", driver.configs[0].Defaults)
	}
}

func TestSelectSingleCandidateSkipsPrompt(t *testing.T) {
	driver := &stubDriver{}
	p := New(WithPromptDriver(driver))

	got, err := p.Select(context.Background(), "user.go", []string{"User"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"User"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if len(driver.configs) != 0 {
		t.Fatalf("prompt should not open for a single candidate")
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected one info message, got %v", driver.infoMessages)
	}
}

func TestSelectErrors(t *testing.T) {
	tests := []struct {
		name       string
		driver     *stubDriver
		candidates []string
		want       error
	}{
		{name: "no candidates", driver: &stubDriver{}, want: ErrNoCandidates},
		{name: "nothing picked", driver: &stubDriver{multiIdx: [][]int{{}}}, candidates: []string{"A", "B"}, want: ErrNoCandidates},
		{name: "aborted", driver: &stubDriver{err: ErrAborted}, candidates: []string{"A", "B"}, want: ErrAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithPromptDriver(tt.driver)).Select(context.Background(), "x.go", tt.candidates)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	_, err := New(WithPromptDriver(&stubDriver{multiIdx: [][]int{{7}}})).Select(context.Background(), "x.go", []string{"A", "B"})
	if err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestConfirmOverwrite(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false}}
	p := New(WithPromptDriver(driver))

	ok, err := p.ConfirmOverwrite(context.Background(), "user_builder.go", []byte("// Code generated by buildergen. DO NOT EDIT.\n\npackage models\n"))
	if err != nil || !ok {
		t.Fatalf("generated files are replaced silently, got %v %v", ok, err)
	}
	if len(driver.confirmCfgs) != 0 {
		t.Fatalf("no prompt expected for generated files")
	}

	ok, err = p.ConfirmOverwrite(context.Background(), "user_builder.go", []byte("package models\n"))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ok {
		t.Fatalf("expected scripted refusal")
	}
	if driver.confirmCfgs[0].Default {
		t.Fatalf("overwrite must default to no")
	}
}

func TestIsGenerated(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"// Code generated by buildergen. DO NOT EDIT.\npackage x\n", true},
		{"//go:build tools\n\n// Code generated by x. DO NOT EDIT.\n", true},
		{"package x\n// Code generated by x. DO NOT EDIT.\n", false},
		{"// Code generated by x.\npackage x\n", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsGenerated([]byte(tc.src)); got != tc.want {
			t.Fatalf("IsGenerated(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestSurveyHelpers(t *testing.T) {
	options := []string{"A", "B", "C"}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"C", "A"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B"}, defaultsFromIndices(options, []int{1, 9, -1})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}
