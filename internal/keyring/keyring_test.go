package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("AIza-test-key"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}

	got, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if got != "AIza-test-key" {
		t.Errorf("GetAPIKey() = %q, want %q", got, "AIza-test-key")
	}
}

func TestSetEmptySecret(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") should return an error")
	}
}

func TestGetNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteAPIKey()

	if _, err := GetAPIKey(); err != ErrNotFound {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("k"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}
	if _, err := GetAPIKey(); err != ErrNotFound {
		t.Errorf("after delete, GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteAPIKey(); err != ErrNotFound {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestSecretsAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("api"); err != nil {
		t.Fatal(err)
	}
	if err := SetConnectionString("postgres://u@localhost/glimmer"); err != nil {
		t.Fatal(err)
	}

	api, _ := GetAPIKey()
	conn, _ := GetConnectionString()
	if api != "api" || conn != "postgres://u@localhost/glimmer" {
		t.Errorf("secrets collided: api=%q conn=%q", api, conn)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}
