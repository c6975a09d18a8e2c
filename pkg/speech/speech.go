package speech

import (
	"fmt"
	"os/exec"
	"strings"
)

// Speaker reads text aloud
type Speaker interface {
	Say(text string) error
}

// Command speaks by running an external program with the text as its last
// argument. The text is never passed through a shell.
type Command struct {
	Name string   // program, e.g. "espeak"
	Args []string // arguments placed before the text
}

// Espeak returns the default speaker
func Espeak() Command {
	return Command{Name: "espeak"}
}

func (c Command) Say(text string) error {
	if c.Name == "" {
		return fmt.Errorf("no speech command configured")
	}

	args := append(append([]string(nil), c.Args...), text)
	out, err := exec.Command(c.Name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}

// Recorder keeps everything it was asked to say
type Recorder struct {
	Spoken []string
}

func (r *Recorder) Say(text string) error {
	r.Spoken = append(r.Spoken, text)
	return nil
}
