package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// loginAttempts tracks credential checks by outcome ("success" or "failure").
// Failure counts both unknown emails and wrong passwords; the label must not
// split them, for the same reason the API response does not.
var loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "auth_service",
	Name:      "login_attempts_total",
	Help:      "Login attempts by outcome.",
}, []string{"outcome"})
