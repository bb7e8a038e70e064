package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeServed     = "served"
	outcomeExhausted  = "exhausted"
	outcomeBadRequest = "bad_request"
)

var quizSelections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "trivia",
	Name:      "quiz_selections_total",
	Help:      "Quiz question selections by outcome.",
}, []string{"outcome"})
