package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded YAML and DefaultFlappyConfig() differ:\nyaml: %+v\ncode: %+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DefaultProfile != ProfileKeyboard {
		t.Errorf("DefaultProfile = %q, expected %q", cfg.DefaultProfile, ProfileKeyboard)
	}
	if len(cfg.Profiles) != 2 {
		t.Errorf("expected 2 profiles, got %d", len(cfg.Profiles))
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	custom := DefaultFlappyConfig()
	p := custom.Profiles[ProfileKeyboard]
	p.Physics.Gravity = 0.7
	custom.Profiles[ProfileKeyboard] = p

	data, err := yaml.Marshal(custom)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "flappy.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := cfg.Profiles[ProfileKeyboard].Physics.Gravity; got != 0.7 {
		t.Errorf("user config gravity = %v, expected 0.7", got)
	}
}

func TestLoadInvalidUserConfigIsSkipped(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "flappy.yaml"), []byte("default_profile: nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DefaultProfile != ProfileKeyboard {
		t.Errorf("invalid user config should fall back to defaults, got default profile %q", cfg.DefaultProfile)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("profiles: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("malformed custom config should fail to parse, got %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	p := KeyboardProfile()
	p.Physics.Gravity = 0
	p.Body.XFraction = 1.5
	p.Scale.Mode = "sideways"

	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	codes := map[string]bool{}
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve ValidationError
		if errors.As(e, &ve) {
			codes[ve.Code] = true
		}
	}
	for _, want := range []string{"NOT_POSITIVE", "OUT_OF_RANGE", "INVALID_SCALE_MODE"} {
		if !codes[want] {
			t.Errorf("missing validation code %s in %v", want, err)
		}
	}
}

func TestValidateUnknownDefault(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.DefaultProfile = "gamepad"

	err := cfg.Validate()
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "UNKNOWN_DEFAULT" {
		t.Errorf("expected UNKNOWN_DEFAULT, got %v", err)
	}
}

func TestProfileLookup(t *testing.T) {
	cfg := DefaultFlappyConfig()

	p, err := cfg.Profile("")
	if err != nil || p.Title != "Flappy Bird" {
		t.Errorf("empty name should resolve to the default profile, got %q, %v", p.Title, err)
	}
	if _, err := cfg.Profile("touch"); err != nil {
		t.Errorf("touch profile lookup failed: %v", err)
	}
	if _, err := cfg.Profile("joystick"); err == nil {
		t.Error("unknown profile should fail")
	}

	names := cfg.ProfileNames()
	if !reflect.DeepEqual(names, []string{"keyboard", "touch"}) {
		t.Errorf("ProfileNames() = %v", names)
	}
}

func TestDifficultyPresets(t *testing.T) {
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("unknown preset should fail to parse")
	}
	if preset, err := ParseDifficulty(""); err != nil || preset != "" {
		t.Errorf("empty preset should parse to empty, got %q, %v", preset, err)
	}

	base := KeyboardProfile()

	easy := KeyboardProfile()
	ApplyDifficulty(&easy, DifficultyEasy)
	if easy.Physics.ObstacleSpeed >= base.Physics.ObstacleSpeed {
		t.Error("easy should slow obstacles down")
	}
	if easy.Obstacles.GapDivisor >= base.Obstacles.GapDivisor {
		t.Error("easy should widen the gap")
	}

	hard := KeyboardProfile()
	ApplyDifficulty(&hard, DifficultyHard)
	if hard.Physics.ObstacleSpeed <= base.Physics.ObstacleSpeed {
		t.Error("hard should speed obstacles up")
	}

	normal := KeyboardProfile()
	ApplyDifficulty(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal should leave the profile unchanged")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FLAPPY_TEST_VALUE", "set")
	if got := GetEnv("FLAPPY_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, expected set", got)
	}
	if got := GetEnv("FLAPPY_TEST_UNSET_VALUE", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, expected fallback", got)
	}
}
