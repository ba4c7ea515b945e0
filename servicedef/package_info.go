// Package servicedef defines the request payloads and endpoint paths of the clients/orders API
// that the scenario talks to. Paths are relative to the API base URL, which already includes
// the "/api" prefix.
package servicedef
