package framework

// StepLogger receives progress notifications while the scenario runs. It is purely for
// human consumption; the transcript file is written separately.
type StepLogger interface {
	StepStarted(id StepID, req RequestInfo)
	StepError(id StepID, err error)
	StepFinished(id StepID, status int, debugOutput CapturedOutput)
}

// RequestInfo describes the HTTP request a step is about to send.
type RequestInfo struct {
	Method string
	URL    string
	Body   []byte
}

type nullStepLogger struct{}

func (n nullStepLogger) StepStarted(StepID, RequestInfo)          {}
func (n nullStepLogger) StepError(StepID, error)                  {}
func (n nullStepLogger) StepFinished(StepID, int, CapturedOutput) {}
