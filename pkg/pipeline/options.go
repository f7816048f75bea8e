package pipeline

import (
	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
	"github.com/PentesterFlow/APIHarvest/internal/logger"
)

// Option is a functional option for configuring the Harvester.
type Option func(*Harvester) error

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(h *Harvester) error {
		h.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Harvester) error {
		h.log = l
		return nil
	}
}

// WithKnowledge sets a custom knowledge base.
func WithKnowledge(kb *knowledge.Base) Option {
	return func(h *Harvester) error {
		h.kb = kb
		return nil
	}
}

// WithOverlayFile sets the knowledge-base overlay file.
func WithOverlayFile(path string) Option {
	return func(h *Harvester) error {
		h.config.Knowledge.OverlayFile = path
		return nil
	}
}

// WithVerbose enables/disables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(h *Harvester) error {
		h.config.Verbose = verbose
		return nil
	}
}

// WithDebug enables/disables debug mode.
func WithDebug(debug bool) Option {
	return func(h *Harvester) error {
		h.config.Debug = debug
		return nil
	}
}

// WithOutputFile sets the dataset output file path.
func WithOutputFile(path string) Option {
	return func(h *Harvester) error {
		h.config.Output.FilePath = path
		return nil
	}
}

// WithPrettyOutput enables/disables pretty JSON output.
func WithPrettyOutput(pretty bool) Option {
	return func(h *Harvester) error {
		h.config.Output.Pretty = pretty
		return nil
	}
}

// WithVaultPath sets the vault database path.
func WithVaultPath(path string) Option {
	return func(h *Harvester) error {
		h.config.Vault.Path = path
		return nil
	}
}
