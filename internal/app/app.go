// Package app drives one practice session: level selection, the task loop,
// scoring and the optional save.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/comms"
	"github.com/abhisek/mathdrill/internal/level"
	"github.com/abhisek/mathdrill/internal/results"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/task"
)

// Options configures an App.
type Options struct {
	Comms  *comms.Comms
	Levels *level.Registry

	// TotalTasks is the number of tasks in the session.
	TotalTasks int

	// Level skips level selection when set.
	Level *level.Level

	// SaveResults skips the save question when set.
	SaveResults *bool

	// Results receives the score line when the user chooses to save.
	Results results.Sink

	// History records answers and sessions. Optional.
	History store.SessionRepo

	// Rand drives task generation. A randomly seeded source is used if nil.
	Rand *rand.Rand

	// NextTask overrides task generation.
	NextTask func(lvl level.Level) (task.Task, error)

	// Warnings receives non-fatal problems. Defaults to os.Stderr.
	Warnings io.Writer
}

// App holds the state of one session.
type App struct {
	Level       *level.Level
	TotalTasks  int
	DoneTasks   []task.Task
	Score       int
	SaveResults *bool
	SessionID   string

	comms    *comms.Comms
	levels   *level.Registry
	results  results.Sink
	history  store.SessionRepo
	nextTask func(lvl level.Level) (task.Task, error)
	warnings io.Writer
}

// New validates opts and returns an App ready to Run.
func New(opts Options) (*App, error) {
	if opts.Comms == nil {
		return nil, errors.New("app: comms is required")
	}
	if opts.Levels == nil {
		return nil, errors.New("app: level registry is required")
	}
	if opts.Results == nil {
		return nil, errors.New("app: results sink is required")
	}
	if opts.TotalTasks < 0 {
		return nil, fmt.Errorf("app: total tasks must not be negative, got %d", opts.TotalTasks)
	}

	a := &App{
		Level:       opts.Level,
		TotalTasks:  opts.TotalTasks,
		SaveResults: opts.SaveResults,
		SessionID:   uuid.NewString(),
		comms:       opts.Comms,
		levels:      opts.Levels,
		results:     opts.Results,
		history:     opts.History,
		nextTask:    opts.NextTask,
		warnings:    opts.Warnings,
	}
	if a.warnings == nil {
		a.warnings = os.Stderr
	}
	if a.nextTask == nil {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		a.nextTask = func(lvl level.Level) (task.Task, error) {
			return task.Random(rng, lvl)
		}
	}
	return a, nil
}

// Done returns the number of completed tasks.
func (a *App) Done() int {
	return len(a.DoneTasks)
}

// Pending returns the number of tasks left.
func (a *App) Pending() int {
	return a.TotalTasks - a.Done()
}

// Run plays the session to the end. It returns comms.ErrExit when the user
// declines to save, and comms.ErrInputClosed if input runs out.
func (a *App) Run(ctx context.Context) error {
	if a.Level == nil {
		lvl, err := comms.Ask(a.comms, comms.Prompt{
			Message:       a.levelMenu(),
			RepeatMessage: true,
			Strict:        true,
		}, HandleLevelChoice(a.levels))
		if err != nil {
			return err
		}
		a.Level = &lvl
	}

	a.recordSession(ctx, store.ActionStart)

	for a.Pending() > 0 {
		if err := a.playTask(ctx); err != nil {
			return err
		}
	}

	a.recordSession(ctx, store.ActionEnd)

	if a.SaveResults == nil {
		save, err := comms.Ask(a.comms, comms.Prompt{
			Message: fmt.Sprintf("Your mark is %d/%d. Would you like to save the result? Enter yes or no.",
				a.Score, a.TotalTasks),
		}, HandleSaveAnswer)
		if err != nil {
			return err
		}
		a.SaveResults = &save
	}

	if !*a.SaveResults {
		return nil
	}
	return a.save(ctx)
}

// playTask asks one task and scores the answer.
func (a *App) playTask(ctx context.Context) error {
	t, err := a.nextTask(*a.Level)
	if err != nil {
		return fmt.Errorf("generate task: %w", err)
	}
	want, err := t.Solution()
	if err != nil {
		return fmt.Errorf("evaluate task %q: %w", t, err)
	}

	var answer string
	check := HandleTaskSolution(want, a.comms.Out())
	right, err := comms.Ask(a.comms, comms.Prompt{
		Message:       t.String(),
		RepeatMessage: true,
	}, func(raw string) comms.Result[bool] {
		answer = raw
		return check(raw)
	})
	if err != nil {
		return err
	}

	if right {
		a.Score++
	}
	a.DoneTasks = append(a.DoneTasks, t)

	if a.history != nil {
		err := a.history.AppendAnswer(ctx, store.AnswerEventData{
			SessionID:     a.SessionID,
			LevelID:       a.Level.ID,
			Operation:     t.Operation,
			QuestionText:  t.String(),
			CorrectAnswer: want,
			LearnerAnswer: answer,
			Correct:       right,
		})
		a.warn(err, "record answer")
	}
	return nil
}

func (a *App) save(ctx context.Context) error {
	name, err := comms.Ask(a.comms, comms.Prompt{
		Message:       msgNamePrompt,
		RepeatMessage: true,
	}, HandleName)
	if err != nil {
		return err
	}

	rec := results.Record{
		Name:             name,
		Score:            a.Score,
		Total:            a.TotalTasks,
		LevelID:          a.Level.ID,
		LevelDescription: a.Level.Description(),
	}
	if err := a.results.Append(ctx, rec); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	a.comms.Println(msgSaved)
	return nil
}

// levelMenu lists every level as "<id> - <description>".
func (a *App) levelMenu() string {
	var b strings.Builder
	b.WriteString("Which level do you want? Enter a number:")
	for _, l := range a.levels.All() {
		fmt.Fprintf(&b, "\n%d - %s", l.ID, l.Description())
	}
	return b.String()
}

func (a *App) recordSession(ctx context.Context, action string) {
	if a.history == nil {
		return
	}
	err := a.history.AppendSession(ctx, store.SessionEventData{
		SessionID:  a.SessionID,
		Action:     action,
		LevelID:    a.Level.ID,
		TotalTasks: a.TotalTasks,
		Score:      a.Score,
	})
	a.warn(err, "record session "+action)
}

// warn reports a history failure without interrupting the session.
func (a *App) warn(err error, what string) {
	if err != nil {
		fmt.Fprintf(a.warnings, "warning: failed to %s: %v\n", what, err)
	}
}
