package validation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/camera"
	"github.com/opd-ai/go-skyrunner/pkg/physics"
)

func TestValidateFlightConfig(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*physics.FlightConfig)
		wantErr     bool
		errContains []string
	}{
		{
			name:    "Default config",
			modify:  func(c *physics.FlightConfig) {},
			wantErr: false,
		},
		{
			name:        "Zero max speed",
			modify:      func(c *physics.FlightConfig) { c.MaxSpeed = 0 },
			wantErr:     true,
			errContains: []string{"maxSpeed must be positive"},
		},
		{
			name:        "NaN acceleration",
			modify:      func(c *physics.FlightConfig) { c.Acceleration = math.NaN() },
			wantErr:     true,
			errContains: []string{"acceleration must be positive"},
		},
		{
			name:        "Inverted height range",
			modify:      func(c *physics.FlightConfig) { c.MinHeight, c.MaxHeight = 10, 10 },
			wantErr:     true,
			errContains: []string{"maxHeight (10) must be greater than minHeight (10)"},
		},
		{
			name:        "Negative hover height",
			modify:      func(c *physics.FlightConfig) { c.HoverHeight = -1 },
			wantErr:     true,
			errContains: []string{"hoverHeight cannot be negative"},
		},
		{
			name:        "Bank past vertical",
			modify:      func(c *physics.FlightConfig) { c.MaxBankAngle = 2 },
			wantErr:     true,
			errContains: []string{"maxBankAngle too large"},
		},
		{
			name:        "Unreachable climb gate",
			modify:      func(c *physics.FlightConfig) { c.MinSpeedForVertical = 300 },
			wantErr:     true,
			errContains: []string{"minSpeedForVertical (300) must be below maxSpeed (200)"},
		},
		{
			name: "Several problems reported together",
			modify: func(c *physics.FlightConfig) {
				c.TurnRate = -1
				c.VerticalSpeed = 0
			},
			wantErr:     true,
			errContains: []string{"turnRate must be positive", "verticalSpeed must be positive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := physics.DefaultFlightConfig()
			tt.modify(&cfg)

			err := ValidateFlightConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateFlightConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.errContains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("ValidateFlightConfig() error = %v, should contain %q", err, want)
				}
			}
		})
	}
}

func TestValidateCameraConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     camera.Config
		wantErr bool
	}{
		{"Default", camera.DefaultConfig(), false},
		{"Zero offset", camera.Config{}, true},
		{"Infinite offset", camera.Config{Offset: mgl64.Vec3{0, math.Inf(1), 15}}, true},
		{"Side view", camera.Config{Offset: mgl64.Vec3{10, 0, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCameraConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCameraConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFrameRate(t *testing.T) {
	tests := []struct {
		fps     int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{60, false},
		{1000, false},
		{1001, true},
		{-5, true},
	}

	for _, tt := range tests {
		err := ValidateFrameRate(tt.fps)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFrameRate(%d) error = %v, wantErr %v", tt.fps, err, tt.wantErr)
		}
	}
}

func TestValidateKeyBindings(t *testing.T) {
	if err := ValidateKeyBindings(map[string]string{"w": "forward", "ArrowUp": "descend"}); err != nil {
		t.Errorf("Expected valid bindings, got %v", err)
	}

	err := ValidateKeyBindings(map[string]string{"q": "strafe", " ": "forward"})
	if err == nil {
		t.Fatal("Expected error for bad bindings")
	}
	if !strings.Contains(err.Error(), `unknown control "strafe"`) {
		t.Errorf("Expected unknown control error, got %v", err)
	}
	if !strings.Contains(err.Error(), "empty key") {
		t.Errorf("Expected empty key error, got %v", err)
	}
}

func TestValidateScriptEntry(t *testing.T) {
	tests := []struct {
		name    string
		at      float64
		action  string
		control string
		wantErr bool
	}{
		{"Press", 0, "press", "forward", false},
		{"Release uppercase", 2.5, "RELEASE", "turn_left", false},
		{"Negative time", -1, "press", "forward", true},
		{"NaN time", math.NaN(), "press", "forward", true},
		{"Unknown action", 1, "tap", "forward", true},
		{"Unknown control", 1, "press", "boost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScriptEntry(tt.at, tt.action, tt.control)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScriptEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute) // 5 events per minute

	key := "bad_delta"

	// Should allow first 5 events
	for i := 0; i < 5; i++ {
		if !rl.Allow(key) {
			t.Errorf("Event %d should be allowed", i+1)
		}
	}

	// 6th event should be denied
	if rl.Allow(key) {
		t.Error("6th event should be denied")
	}

	// Different key should still be allowed
	if !rl.Allow("other-key") {
		t.Error("Different key should be allowed")
	}
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	key := "bad_delta"

	// Consume all tokens
	rl.Allow(key)
	rl.Allow(key)

	if rl.Allow(key) {
		t.Error("Event should be denied after consuming all tokens")
	}

	// Half a window refills one token
	now = now.Add(500 * time.Millisecond)
	if !rl.Allow(key) {
		t.Error("Event should be allowed after token refill")
	}
	if rl.Allow(key) {
		t.Error("Only one token should have been refilled")
	}
}

func TestRateLimiter_IdleBucketDoesNotBank(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	rl.Allow("k") // creates a full bucket, then takes one
	now = now.Add(10 * time.Second)
	rl.Allow("k")
	rl.Allow("k")

	if rl.Allow("k") {
		t.Error("Idle time should not accumulate beyond the bucket size")
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	rl.Allow("k")
	if rl.Allow("k") {
		t.Fatal("Expected second event to be denied")
	}

	rl.Reset()
	if !rl.Allow("k") {
		t.Error("Expected event to be allowed after reset")
	}
}
