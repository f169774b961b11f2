package logging

import (
	"github.com/sirupsen/logrus"
)

// New builds the application logger. Production gets JSON lines at info
// level, development gets readable text with debug enabled.
func New(environment string) *logrus.Logger {
	log := logrus.New()

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
