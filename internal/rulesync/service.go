package rulesync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/cursorcult/rulesync/internal/rules"
)

const (
	manifestPermissionsConstant           = 0o644
	verdictCacheSizeConstant              = 1024
	noManifestsFoundTemplateConstant      = "No ruleset files found (%s/*.txt).\n"
	removedEntriesTemplateConstant        = "%s: removed %d -> %s\n"
	manifestWouldChangeTemplateConstant   = "%s: would change\n"
	manifestUpdatedTemplateConstant       = "%s: updated\n"
	manifestUnchangedTemplateConstant     = "%s: ok\n"
	removedEntrySeparatorConstant         = ", "
	manifestReadErrorTemplateConstant     = "unable to read manifest %s: %w"
	manifestWriteErrorTemplateConstant    = "unable to rewrite manifest %s: %w"
	validatorNotConfiguredMessageConstant = "rule validator not configured"
	manifestsOutOfDateMessageConstant     = "rulesets invalid: run rulesync sync to apply removals"
	manifestReconciledMessageConstant     = "manifest reconciled"
	logFieldManifestConstant              = "manifest"
	logFieldKeptCountConstant             = "kept_count"
	logFieldRemovedCountConstant          = "removed_count"
	logFieldChangedConstant               = "changed"
)

var (
	// ErrValidatorNotConfigured indicates the service was built without a validator.
	ErrValidatorNotConfigured = errors.New(validatorNotConfiguredMessageConstant)
	// ErrManifestsOutOfDate signals that check-only mode detected required removals.
	ErrManifestsOutOfDate = errors.New(manifestsOutOfDateMessageConstant)
)

// Service drives manifest discovery, per-entry validation, and rewriting.
type Service struct {
	discoverer   ManifestDiscoverer
	validator    RuleValidator
	fileSystem   FileSystem
	verdictCache *lru.Cache[string, bool]
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies. The
// run-scoped verdict cache deduplicates remote lookups for rule names shared
// across manifests without changing any verdict within the run.
func NewService(discoverer ManifestDiscoverer, validator RuleValidator, fileSystem FileSystem, outputWriter io.Writer, logger *zap.Logger) (*Service, error) {
	if validator == nil {
		return nil, ErrValidatorNotConfigured
	}
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	verdictCache, cacheError := lru.New[string, bool](verdictCacheSizeConstant)
	if cacheError != nil {
		return nil, cacheError
	}

	return &Service{
		discoverer:   discoverer,
		validator:    validator,
		fileSystem:   fileSystem,
		verdictCache: verdictCache,
		outputWriter: outputWriter,
		logger:       logger,
	}, nil
}

// Run reconciles every discovered manifest in sorted order. Check-only mode
// reports required changes without rewriting and surfaces drift through
// ErrManifestsOutOfDate; apply mode rewrites changed manifests in place.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	manifestPaths, discoveryError := service.discoverer.DiscoverManifests(options.RulesetsDirectory)
	if discoveryError != nil {
		return discoveryError
	}

	if len(manifestPaths) == 0 {
		fmt.Fprintf(service.outputWriter, noManifestsFoundTemplateConstant, options.RulesetsDirectory)
		return nil
	}

	changedAny := false
	for _, manifestPath := range manifestPaths {
		outcome, reconcileError := service.ReconcileManifest(executionContext, manifestPath, options.CheckOnly)
		if reconcileError != nil {
			return reconcileError
		}

		if len(outcome.Removed) > 0 {
			fmt.Fprintf(service.outputWriter, removedEntriesTemplateConstant, manifestPath, len(outcome.Removed), strings.Join(outcome.Removed, removedEntrySeparatorConstant))
		}

		switch {
		case outcome.Changed && options.CheckOnly:
			changedAny = true
			fmt.Fprintf(service.outputWriter, manifestWouldChangeTemplateConstant, manifestPath)
		case outcome.Changed:
			changedAny = true
			fmt.Fprintf(service.outputWriter, manifestUpdatedTemplateConstant, manifestPath)
		default:
			fmt.Fprintf(service.outputWriter, manifestUnchangedTemplateConstant, manifestPath)
		}
	}

	if options.CheckOnly && changedAny {
		return ErrManifestsOutOfDate
	}
	return nil
}

// ReconcileManifest normalizes one manifest, validates every entry in order,
// and rewrites the file when the kept serialization differs byte-for-byte
// from the original content (unless checkOnly suppresses persistence).
func (service *Service) ReconcileManifest(executionContext context.Context, manifestPath string, checkOnly bool) (ManifestOutcome, error) {
	originalContent, readError := service.fileSystem.ReadFile(manifestPath)
	if readError != nil {
		return ManifestOutcome{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	ruleNames := rules.ParseManifest(string(originalContent))

	keptNames := make([]string, 0, len(ruleNames))
	removedNames := make([]string, 0)
	for _, ruleName := range ruleNames {
		eligible, verdictError := service.resolveVerdict(executionContext, ruleName)
		if verdictError != nil {
			return ManifestOutcome{}, verdictError
		}
		if eligible {
			keptNames = append(keptNames, ruleName)
			continue
		}
		removedNames = append(removedNames, ruleName)
	}

	serializedContent := rules.SerializeManifest(keptNames)
	changed := serializedContent != string(originalContent)

	if changed && !checkOnly {
		if writeError := service.fileSystem.WriteFile(manifestPath, []byte(serializedContent), manifestPermissionsConstant); writeError != nil {
			return ManifestOutcome{}, fmt.Errorf(manifestWriteErrorTemplateConstant, manifestPath, writeError)
		}
	}

	service.logger.Debug(
		manifestReconciledMessageConstant,
		zap.String(logFieldManifestConstant, manifestPath),
		zap.Int(logFieldKeptCountConstant, len(keptNames)),
		zap.Int(logFieldRemovedCountConstant, len(removedNames)),
		zap.Bool(logFieldChangedConstant, changed),
	)

	return ManifestOutcome{
		Path:    manifestPath,
		Kept:    keptNames,
		Removed: removedNames,
		Changed: changed,
	}, nil
}

func (service *Service) resolveVerdict(executionContext context.Context, ruleName string) (bool, error) {
	if cachedVerdict, cacheHit := service.verdictCache.Get(ruleName); cacheHit {
		return cachedVerdict, nil
	}

	eligible, validationError := service.validator.IsEligible(executionContext, ruleName)
	if validationError != nil {
		return false, validationError
	}

	service.verdictCache.Add(ruleName, eligible)
	return eligible, nil
}
