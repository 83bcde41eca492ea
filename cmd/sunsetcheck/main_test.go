package main

import (
	"errors"
	"flag"
	"io"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"query only", []string{"Nai", "Harn", "Beach"}, options{query: "Nai Harn Beach"}},
		{"flags after query", []string{"Santa Monica", "--date", "2025-06-21", "--json"}, options{query: "Santa Monica", date: "2025-06-21", json: true}},
		{"coordinates", []string{"--lat", "7.7677", "--lon", "98.3036"}, options{lat: "7.7677", lon: "98.3036"}},
		{"slug", []string{"--beach", "nai_harn", "-date=2025-12-29"}, options{beach: "nai_harn", date: "2025-12-29"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	if _, err := parseArgs(nil, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected help for no arguments, got %v", err)
	}
	if _, err := parseArgs([]string{"--lat", "7.7"}, io.Discard); err == nil {
		t.Error("expected an error for a lone --lat")
	}
	if _, err := parseArgs([]string{"--nope"}, io.Discard); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestResolveDate(t *testing.T) {
	d, err := resolveDate("2025-12-29")
	if err != nil {
		t.Fatal(err)
	}
	if d.Format("2006-01-02") != "2025-12-29" {
		t.Errorf("unexpected date %s", d)
	}
	if _, err := resolveDate("tomorrow"); err == nil {
		t.Error("expected an error for a malformed date")
	}
}
