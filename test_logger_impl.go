package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/clientorders/api-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	statusOK     = color.New(color.FgGreen)
	statusClient = color.New(color.FgYellow)
	statusFailed = color.New(color.FgRed, color.Bold)
)

// ConsoleStepLogger prints one line per step. With DebugOutput set it also echoes each request
// as an equivalent curl command and dumps the step's debug log.
type ConsoleStepLogger struct {
	Out         io.Writer
	DebugOutput bool
}

func (c *ConsoleStepLogger) StepStarted(id framework.StepID, req framework.RequestInfo) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
	if c.DebugOutput {
		fmt.Fprintf(c.Out, "  $ %s\n", curlCommand(req))
	}
}

func (c *ConsoleStepLogger) StepError(id framework.StepID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleStepLogger) StepFinished(id framework.StepID, status int, debugOutput framework.CapturedOutput) {
	fmt.Fprintf(c.Out, "  %s\n", statusColor(status).Sprintf("HTTP %d", status))
	if c.DebugOutput && len(debugOutput) > 0 {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func statusColor(status int) *color.Color {
	switch {
	case status >= 200 && status < 300:
		return statusOK
	case status >= 400 && status < 500:
		return statusClient
	case status == 0 || status >= 500:
		return statusFailed
	default:
		return color.New(color.Reset)
	}
}

func curlCommand(req framework.RequestInfo) string {
	var cmd commandBuilder
	cmd.add("curl", "-sS", "-X", req.Method)
	if req.Body != nil {
		cmd.add("-H", "Content-Type: application/json", "--data-binary", string(req.Body))
	}
	cmd.add(req.URL)
	return cmd.String()
}
