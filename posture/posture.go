// Package posture implements the posture evaluation engine: it collects
// per-vantage-point DNS answers, normalizes and compares them and derives
// the summary judgments of one run.
package posture

import (
	"github.com/dnsvantage/dnsvantage/log"

	"github.com/sirupsen/logrus"
)

func logger(prefix string) *logrus.Entry {
	return log.PrefixedLog(prefix)
}
