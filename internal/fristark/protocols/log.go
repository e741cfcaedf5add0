package protocols

import "github.com/sirupsen/logrus"

// Package logger for verification diagnostics. The verdicts carry the
// normative result; the log output only exists to make failing proofs
// debuggable and can be silenced or redirected by the embedding
// application.
var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger redirects the package diagnostics
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}
