package comms

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComms(input string, opts ...Option) (*Comms, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, opts...), &out
}

func parseInt(raw string) Result[int] {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Fail[int]("not a number")
	}
	return OK(n)
}

func TestRead(t *testing.T) {
	c, out := newTestComms("hello\r\nworld", WithDefaultText("> "))

	got, err := c.Read(Prompt{Message: "Say something"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = c.Read(Prompt{Text: "? "})
	require.NoError(t, err)
	assert.Equal(t, "world", got)

	_, err = c.Read(Prompt{})
	assert.ErrorIs(t, err, ErrInputClosed)

	assert.Equal(t, "Say something\n> ? > ", out.String())
}

func TestAsk_NoHandlerReturnsRaw(t *testing.T) {
	c, _ := newTestComms("  raw text \n")
	got, err := Ask[string](c, Prompt{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "  raw text ", got)

	c, _ = newTestComms("1\n")
	_, err = Ask[int](c, Prompt{}, nil)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestAsk_OK(t *testing.T) {
	c, out := newTestComms("42\n")
	got, err := Ask(c, Prompt{Message: "Number?"}, parseInt)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, "Number?\n", out.String())
}

func TestAsk_ReenterLoopsUntilOK(t *testing.T) {
	c, out := newTestComms("abc\n\n7\n")
	got, err := Ask(c, Prompt{Message: "Number?"}, parseInt)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, "Number?\nnot a number\nnot a number\n", out.String())
}

func TestAsk_ReenterRepeatsMessageWhenAsked(t *testing.T) {
	c, out := newTestComms("abc\n7\n")
	got, err := Ask(c, Prompt{Message: "Number?", RepeatMessage: true}, parseInt)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, "Number?\nnot a number\nNumber?\n", out.String())
}

func TestAsk_IgnoreReturnsValueAnyway(t *testing.T) {
	c, out := newTestComms("abc\n7\n", WithFailurePolicy(Ignore))
	h := func(raw string) Result[int] { return FailValue(-1, "bad") }

	got, err := Ask(c, Prompt{Message: "Number?"}, h)
	require.NoError(t, err)
	assert.Equal(t, -1, got)
	assert.Equal(t, "Number?\n", out.String(), "ignore must not print the error or re-prompt")
}

func TestAsk_StrictPromptReentersUnderIgnore(t *testing.T) {
	c, out := newTestComms("x\n5\n", WithFailurePolicy(Ignore))

	got, err := Ask(c, Prompt{Message: "Number?", Strict: true}, parseInt)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Equal(t, "Number?\nnot a number\n", out.String())
}

func TestAsk_Exit(t *testing.T) {
	c, _ := newTestComms("no\nyes\n")
	h := func(raw string) Result[bool] {
		if raw == "yes" {
			return OK(true)
		}
		return Exit(false)
	}

	_, err := Ask(c, Prompt{}, h)
	assert.ErrorIs(t, err, ErrExit)
}

func TestAsk_PanicIsRecoverableError(t *testing.T) {
	c, out := newTestComms("boom\nquiet\n5\n")
	h := func(raw string) Result[int] {
		switch raw {
		case "boom":
			panic(errors.New("handler exploded"))
		case "quiet":
			panic(struct{}{})
		}
		return parseInt(raw)
	}

	got, err := Ask(c, Prompt{}, h)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Equal(t, "handler exploded\n{}\n", out.String())
}

func TestAsk_PanicUnderIgnoreYieldsZero(t *testing.T) {
	c, _ := newTestComms("x\n", WithFailurePolicy(Ignore))
	h := func(raw string) Result[bool] { panic("nope") }

	got, err := Ask(c, Prompt{}, h)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestAsk_InputClosedDuringRetry(t *testing.T) {
	c, _ := newTestComms("abc\n")
	_, err := Ask(c, Prompt{}, parseInt)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{"", Reenter, false},
		{"reenter", Reenter, false},
		{"IGNORE", Ignore, false},
		{" ignore ", Ignore, false},
		{"retry", Reenter, true},
	}
	for _, tt := range tests {
		got, err := ParseFailurePolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
