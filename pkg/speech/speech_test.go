package speech_test

import (
	"claro/pkg/speech"
	"os/exec"
	"testing"
)

func TestRecorder(t *testing.T) {
	var r speech.Recorder
	var s speech.Speaker = &r

	_ = s.Say("hello")
	_ = s.Say("Error: boom")

	if len(r.Spoken) != 2 || r.Spoken[1] != "Error: boom" {
		t.Errorf("unexpected recording %v", r.Spoken)
	}
}

func TestCommandRunsProgram(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true(1) not available")
	}

	if err := (speech.Command{Name: "true", Args: []string{"-s", "150"}}).Say("hello"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	if err := (speech.Command{}).Say("hello"); err == nil {
		t.Error("expected error without a program")
	}
	if err := (speech.Command{Name: "claro-no-such-speech-program"}).Say("hello"); err == nil {
		t.Error("expected error for a missing program")
	}
}
