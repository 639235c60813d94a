package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "parse config %s", "/tmp/config.toml")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %q", err.Code)
	}
	if !strings.Contains(err.Error(), "INVALID_CONFIG") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "/tmp/config.toml") {
		t.Errorf("Error() = %q, want formatted message", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("exec: \"brew\": executable file not found in $PATH")
	err := Wrap(ErrCodeBrewUnavailable, cause, "failed to run 'brew --prefix'")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !Is(err, ErrCodeBrewUnavailable) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeInstallFailed) {
		t.Error("Is matched the wrong code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeStateIO, "boom")); got != ErrCodeStateIO {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInstallFailed, "zb install curl failed")
	if got := UserMessage(err); got != "zb install curl failed" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
