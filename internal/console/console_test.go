package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("1\r\nHealth Potion\nlast"), &out, false)

	for _, want := range []string{"1", "Health Potion", "last"} {
		got, err := c.Prompt("> ")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
	if _, err := c.Prompt("> "); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
	if out.String() != "> > > > " {
		t.Errorf("Unexpected prompt output %q", out.String())
	}
}

func TestShow_NoColor(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, false)
	c.Show("You defeated the Imp!")
	if out.String() != "You defeated the Imp!\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestShow_Color(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, true)
	c.Show("You defeated the Imp!")
	c.Show("Asta's HP: 100/100 | Mana: 50/50")
	c.Show("plain")

	got := out.String()
	if !strings.Contains(got, Bold+Green+"You defeated the Imp!"+Reset) {
		t.Errorf("Expected green victory line, got %q", got)
	}
	if !strings.Contains(got, Cyan+"Asta's HP") {
		t.Errorf("Expected cyan status line, got %q", got)
	}
	if !strings.Contains(got, "\nplain\n") {
		t.Errorf("Expected unstyled plain line, got %q", got)
	}
}

func TestShowf(t *testing.T) {
	var out bytes.Buffer
	New(strings.NewReader(""), &out, true).Showf(Red, "%d left", 3)
	if out.String() != Red+"3 left"+Reset+"\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}
