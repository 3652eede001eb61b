package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/mathdrill/internal/comms"
	"github.com/abhisek/mathdrill/internal/level"
)

// User-facing messages.
const (
	msgIncorrectFormat = "Incorrect format."
	msgWrongFormat     = "Wrong format! Try again."
	msgBadName         = "Incorrect format. Name must be from 1 to 35 characters."
	msgRight           = "Right!"
	msgWrong           = "Wrong!"
	msgSaved           = "Results have been saved!"
	msgNamePrompt      = "What is your name?"
)

// MaxNameLength is the longest accepted player name, in characters.
const MaxNameLength = 35

// affirmative lists the answers that mean "save the result".
var affirmative = map[string]bool{"yes": true, "YES": true, "y": true, "Yes": true}

// HandleLevelChoice resolves a typed level id against reg.
func HandleLevelChoice(reg *level.Registry) comms.Handler[level.Level] {
	return func(raw string) comms.Result[level.Level] {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return comms.Fail[level.Level](msgIncorrectFormat)
		}
		l, ok := reg.Get(id)
		if !ok {
			return comms.Fail[level.Level](msgIncorrectFormat)
		}
		return comms.OK(l)
	}
}

// HandleTaskSolution checks an answer against want, prints the verdict to out
// and reports whether it was right.
func HandleTaskSolution(want int, out io.Writer) comms.Handler[bool] {
	return func(raw string) comms.Result[bool] {
		answer := strings.TrimSpace(raw)
		if answer == "" || strings.IndexFunc(answer, unicode.IsLetter) >= 0 {
			return comms.Fail[bool](msgWrongFormat)
		}
		got, err := strconv.Atoi(answer)
		if err != nil {
			return comms.Fail[bool](msgWrongFormat)
		}
		right := got == want
		if right {
			fmt.Fprintln(out, msgRight)
		} else {
			fmt.Fprintln(out, msgWrong)
		}
		return comms.OK(right)
	}
}

// HandleSaveAnswer accepts only an affirmative answer. Anything else, an
// explicit "no" included, ends the run: declining to save and quitting are
// the same signal.
func HandleSaveAnswer(raw string) comms.Result[bool] {
	if !affirmative[raw] {
		return comms.Exit(false)
	}
	return comms.OK(true)
}

// HandleName accepts a name of 1 to MaxNameLength characters. A rejected
// name is still carried in the result, so the Ignore policy saves what was typed.
func HandleName(raw string) comms.Result[string] {
	n := utf8.RuneCountInString(raw)
	if n == 0 || n > MaxNameLength {
		return comms.FailValue(raw, msgBadName)
	}
	return comms.OK(raw)
}
