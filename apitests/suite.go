package apitests

import (
	"context"
	"fmt"
	"strings"

	"github.com/clientorders/api-contract-tests/client"
	"github.com/clientorders/api-contract-tests/framework"
	"github.com/clientorders/api-contract-tests/transcript"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/clientorders/api-contract-tests/apitests"

// Params holds everything a scenario run needs.
type Params struct {
	// BaseURL is the API root, such as http://localhost:8080/api.
	BaseURL    string
	RunID      string
	Executor   *client.Executor
	Transcript *transcript.Logger
	StepLogger framework.StepLogger
}

type runEnv struct {
	Params
	entities *client.Entities
	tracer   trace.Tracer
}

// RunScenario truncates the transcript and then runs every step in order, recording each
// outcome. HTTP errors and transport failures do not stop the run; only a failure to write the
// transcript does, and it is reported in Results.Fatal.
func RunScenario(ctx context.Context, params Params) framework.Results {
	env := &runEnv{
		Params:   params,
		entities: client.NewEntities(),
		tracer:   otel.Tracer(tracerName),
	}
	env.BaseURL = strings.TrimSuffix(env.BaseURL, "/")

	ctx, span := env.tracer.Start(ctx, "scenario", trace.WithAttributes(
		attribute.String("scenario.run_id", params.RunID),
		attribute.String("scenario.base_url", env.BaseURL),
	))
	defer span.End()

	results := framework.Run(params.StepLogger, func(c *framework.Context) {
		if err := env.Transcript.Initialize(); err != nil {
			c.Fatal(err)
		}
		for _, step := range Steps() {
			step := step
			c.Run(step.Title, func(c *framework.Context) {
				env.runStep(ctx, c, step)
			})
		}
	})
	if results.Fatal != nil {
		span.SetStatus(codes.Error, results.Fatal.Error())
	}
	return results
}

func (env *runEnv) runStep(ctx context.Context, c *framework.Context, step Step) {
	ctx, span := env.tracer.Start(ctx, step.Title, trace.WithAttributes(
		attribute.Int("scenario.step", c.ID().Index),
		attribute.String("http.request.method", step.Method),
	))
	defer span.End()

	var resp client.Response
	defer func() {
		if r := recover(); r != nil {
			resp = client.Response{Body: fmt.Sprintf("step failed: %v", r)}
			c.Errorf("step panicked: %v", r)
		}
		c.SetStatus(resp.Status)
		span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
		if resp.Status == 0 {
			span.SetStatus(codes.Error, resp.Body)
		}
		if err := env.Transcript.Record(step.Title, resp.Body, resp.Status); err != nil {
			c.Fatal(err)
		}
	}()

	ids := ResolveIDs(env.entities)
	c.Debug("using supplier id %d, consumer id %d", ids.Supplier, ids.Consumer)
	url := env.BaseURL + step.ExpandPath(ids)

	var body interface{}
	if step.Body != nil {
		body = step.Body(ids)
	}
	data, err := client.EncodeBody(body)
	if err != nil {
		resp = client.Response{Body: client.TransportErrorPrefix + err.Error()}
		c.Errorf("cannot encode request body: %s", err)
		return
	}

	c.Started(framework.RequestInfo{Method: step.Method, URL: url, Body: data})
	resp = env.Executor.WithLogger(c.DebugLogger()).Send(ctx, step.Method, url, data)
	if resp.Status == 0 {
		c.Errorf("%s", resp.Body)
	}

	if step.Capture != "" {
		env.entities.Capture(step.Capture, resp.Body)
		if id := env.entities.ID(step.Capture); id.IsDefined() {
			c.Debug("captured %s with id %d", step.Capture, id.IntValue())
		} else {
			c.Debug("no id in response; %s will use the default id", step.Capture)
		}
	}
}
