package cmd

import (
	"errors"
	"testing"

	"github.com/xvierd/pomo/internal/domain"
)

func TestRootCmd_Registered(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}
	if rootCmd.Use != "pomo" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "pomo")
	}

	for _, name := range []string{"start", "status", "stats", "achievements", "tips", "settings", "reset"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestBuildPatch(t *testing.T) {
	patch, err := buildPatch("work", "50")
	if err != nil {
		t.Fatalf("buildPatch(work, 50) error = %v", err)
	}
	if patch.WorkDuration == nil || *patch.WorkDuration != 50 {
		t.Errorf("WorkDuration = %v, want 50", patch.WorkDuration)
	}
	if patch.ShortBreakDuration != nil {
		t.Error("untouched fields must stay nil so the merge is partial")
	}

	patch, err = buildPatch("sound", "false")
	if err != nil {
		t.Fatalf("buildPatch(sound, false) error = %v", err)
	}
	if patch.Sound == nil || *patch.Sound {
		t.Errorf("Sound = %v, want false", patch.Sound)
	}
}

func TestBuildPatch_Invalid(t *testing.T) {
	cases := [][2]string{
		{"work", "zero"},
		{"work", "0"},
		{"sound", "maybe"},
		{"bogus-key", "1"},
		{"working-hours", "17-9"},
		{"working-hours", "9"},
	}

	for _, c := range cases {
		if _, err := buildPatch(c[0], c[1]); !errors.Is(err, domain.ErrInvalidSetting) {
			t.Errorf("buildPatch(%q, %q) error = %v, want ErrInvalidSetting", c[0], c[1], err)
		}
	}
}

func TestParseHours(t *testing.T) {
	hours, err := parseHours("9-17")
	if err != nil {
		t.Fatalf("parseHours(9-17) error = %v", err)
	}
	if hours.Start != 9 || hours.End != 17 {
		t.Errorf("parseHours(9-17) = %v, want 9-17", hours)
	}
}
