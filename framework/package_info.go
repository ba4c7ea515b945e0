// Package framework contains the step-execution infrastructure of the scenario driver that
// does not depend on the clients/orders API itself.
//
// The general model is:
//
// 1. A scenario is a fixed sequence of steps. Each step runs inside a Context, which
// collects its HTTP status, any errors, and debug output.
//
// 2. Nothing that happens inside a step stops the scenario, except an explicit call to
// Context.Fatal. This is how the driver guarantees that every step is attempted and logged.
//
// 3. Progress is reported to a StepLogger as steps start and finish. The durable record of
// the run is the transcript, which is maintained by the caller.
package framework
