package main

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestRewriteLegacyArgs(t *testing.T) {
	got := rewriteLegacyArgs([]string{"-v16", "models/"})
	want := []string{"--source-version", "16", "models/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rewritten args = %v", got)
	}

	// The dotted tag comes back even for compact flag spellings.
	got = rewriteLegacyArgs([]string{"-v191", "models/"})
	want = []string{"--source-version", "19.1", "models/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rewritten args = %v", got)
	}

	// Modern args pass through untouched.
	modern := []string{"--source-version", "16", "--workers", "4", "models/"}
	if got := rewriteLegacyArgs(modern); !reflect.DeepEqual(got, modern) {
		t.Fatalf("modern args rewritten: %v", got)
	}
}

func TestSingleOutputPath(t *testing.T) {
	// Without an output dir the converted file must never land on the
	// input path; it goes into an rmdlconv_out directory alongside.
	got := singleOutputPath(filepath.Join("models", "test.rmdl"), "")
	want := filepath.Join("models", "rmdlconv_out", "test.rmdl")
	if got != want {
		t.Fatalf("default output path = %q, want %q", got, want)
	}

	got = singleOutputPath(filepath.Join("models", "test.rmdl"), "out")
	if want := filepath.Join("out", "test.rmdl"); got != want {
		t.Fatalf("explicit output path = %q, want %q", got, want)
	}
}
