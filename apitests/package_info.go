// Package apitests contains the clients/orders API scenario and the runner that executes it.
//
// The scenario is a fixed list of steps. Some steps create clients and capture the response,
// and later steps refer to those clients by id. When an id cannot be obtained, for instance
// because the API is down or returned an error, a default id is used instead so that every
// step still runs and is recorded in the transcript.
package apitests
