// Package mockapi is an in-memory implementation of the clients/orders API. It applies the
// same validation and business rules as the real service: unique client emails, positive
// order prices, no orders between inactive clients, no duplicate orders, and a floor on a
// consumer's profit. It exists so that the scenario can be exercised end to end without the
// real service, both in tests and through the "mock" command.
//
// All routes are mounted under /api, matching the real service.
package mockapi
