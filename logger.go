package textcompare

import (
	"github.com/baditaflorin/go_text_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// createDefaultLogger returns a text logger on stdout with async writes.
func createDefaultLogger() (ports.Logger, error) {
	return logger.New()
}
