// Package service contains the application's business logic, sitting
// between the API handlers and the store.
package service

import "github.com/lumbrapp/lumbr-server/internal/validation"

// validate is a shared validator instance for request validation.
var validate = validation.New()
