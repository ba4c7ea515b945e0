package framework

import (
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	stepLogger StepLogger
	lastIndex  int
}

// Context tracks the execution of one scenario step. It plays the same role as *testing.T
// in a Go test, except that nothing a step does can fail the run: errors are collected and
// reported, and the next step runs regardless. The only exception is Fatal.
type Context struct {
	env         *environment
	id          StepID
	debugLogger CapturingLogger
	status      int
	errors      []error
	fatal       error
}

type fatalAbort struct{}

// Run creates a root context and calls action with it. The returned Results contain one
// entry for each step started with Context.Run.
func Run(stepLogger StepLogger, action func(*Context)) Results {
	if stepLogger == nil {
		stepLogger = nullStepLogger{}
	}
	env := &environment{stepLogger: stepLogger}
	c := &Context{env: env}
	c.run(action)
	if c.fatal != nil && env.results.Fatal == nil {
		env.results.Fatal = c.fatal
	}
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalAbort); ok {
				return
			}
			err := fmt.Errorf("unexpected panic in step: %+v\n%s", r, string(debug.Stack()))
			c.errors = append(c.errors, err)
			c.env.stepLogger.StepError(c.id, err)
		}
	}()

	action(c)
}

func (c *Context) ID() StepID {
	return c.id
}

// Run executes a step. Steps are numbered in the order they are run, starting at 1. If the
// run has already been aborted with Fatal, the step is not executed.
func (c *Context) Run(title string, action func(*Context)) {
	if c.env.results.Fatal != nil {
		return
	}
	c.env.lastIndex++
	c1 := &Context{
		id:  StepID{Index: c.env.lastIndex, Title: title},
		env: c.env,
	}
	c1.run(action)

	c.env.results.Steps = append(c.env.results.Steps, StepResult{
		ID:     c1.id,
		Status: c1.status,
		Errors: c1.errors,
	})
	c.env.stepLogger.StepFinished(c1.id, c1.status, c1.debugLogger.Output())
	if c1.fatal != nil {
		c.env.results.Fatal = fmt.Errorf("step %q: %w", c1.id, c1.fatal)
	}
}

// Started notifies the step logger that the request for this step is about to be sent.
func (c *Context) Started(req RequestInfo) {
	c.env.stepLogger.StepStarted(c.id, req)
}

// SetStatus records the HTTP status that the step ended with. Zero means no response.
func (c *Context) SetStatus(status int) {
	c.status = status
}

// Errorf records a problem with the step without stopping it.
func (c *Context) Errorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.stepLogger.StepError(c.id, err)
}

// Fatal stops the current step immediately and abandons the rest of the run.
func (c *Context) Fatal(err error) {
	c.fatal = err
	c.env.stepLogger.StepError(c.id, err)
	panic(fatalAbort{})
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
