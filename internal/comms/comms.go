// Package comms implements the prompt/read/validate loop that mediates all
// user interaction.
package comms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ExitMessage is printed when a handler asks for the run to end.
const ExitMessage = "Exit requested"

var (
	// ErrExit is returned by Ask when a handler reports StatusExit.
	ErrExit = errors.New("exit requested")

	// ErrInputClosed is returned when input ends before a line is read.
	ErrInputClosed = errors.New("input closed")

	// ErrNoHandler is returned by Ask when no handler is given and the
	// raw line cannot be returned as T.
	ErrNoHandler = errors.New("no handler for non-string result")
)

// Comms reads answers from in and writes prompts and feedback to out.
type Comms struct {
	in          *bufio.Reader
	out         io.Writer
	defaultText string
	policy      FailurePolicy
}

// Option configures a Comms.
type Option func(*Comms)

// WithDefaultText sets the text printed right before each read when the
// prompt does not carry its own.
func WithDefaultText(text string) Option {
	return func(c *Comms) { c.defaultText = text }
}

// WithFailurePolicy sets what happens when a handler rejects input.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *Comms) { c.policy = p }
}

// New creates a Comms over the given streams.
func New(in io.Reader, out io.Writer, opts ...Option) *Comms {
	c := &Comms{
		in:     bufio.NewReader(in),
		out:    out,
		policy: Reenter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the configured failure policy.
func (c *Comms) Policy() FailurePolicy {
	return c.policy
}

// Out returns the writer prompts and feedback go to.
func (c *Comms) Out() io.Writer {
	return c.out
}

// Println writes a line of feedback.
func (c *Comms) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted feedback.
func (c *Comms) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Prompt describes one question put to the user.
type Prompt struct {
	// Message is printed on its own line before reading. Empty means none.
	Message string

	// Text is printed right before the read, without a newline.
	// Empty falls back to the Comms default text.
	Text string

	// RepeatMessage prints Message again on every re-prompt.
	RepeatMessage bool

	// Strict re-prompts on rejected input even under the Ignore policy.
	// Used where a zero value has no meaning, such as a level choice.
	Strict bool
}

// Read prints the prompt and returns one line of input without its line ending.
func (c *Comms) Read(p Prompt) (string, error) {
	if p.Message != "" {
		fmt.Fprintln(c.out, p.Message)
	}
	text := p.Text
	if text == "" {
		text = c.defaultText
	}
	if text != "" {
		fmt.Fprint(c.out, text)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
		} else {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prompts until h accepts the input, the policy lets a rejection through,
// or h asks to exit (ErrExit). With a nil handler the raw line is returned,
// which requires T to be string.
func Ask[T any](c *Comms, p Prompt, h Handler[T]) (T, error) {
	var zero T

	for {
		raw, err := c.Read(p)
		if err != nil {
			return zero, err
		}

		if h == nil {
			if v, ok := any(raw).(T); ok {
				return v, nil
			}
			return zero, ErrNoHandler
		}

		res := call(h, raw)
		switch res.Status {
		case StatusOK:
			return res.Value, nil
		case StatusExit:
			return res.Value, ErrExit
		}

		if c.policy == Ignore && !p.Strict {
			return res.Value, nil
		}
		if res.Message != "" {
			fmt.Fprintln(c.out, res.Message)
		}
		if !p.RepeatMessage {
			p.Message = ""
		}
	}
}

// call runs h and turns a panic into a StatusError result.
func call[T any](h Handler[T], raw string) (res Result[T]) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		res = Result[T]{Status: StatusError}
		switch v := r.(type) {
		case error:
			res.Message = v.Error()
		case string:
			res.Message = v
		default:
			res.Message = fmt.Sprint(v)
		}
	}()
	return h(raw)
}
