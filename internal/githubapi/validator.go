package githubapi

import (
	"context"
	"errors"
	"strings"
)

const (
	inventoryNotConfiguredMessageConstant    = "repository inventory not configured"
	organizationNotConfiguredMessageConstant = "organization not configured"
	requiredTagNotConfiguredMessageConstant  = "required tag not configured"
)

var (
	// ErrInventoryNotConfigured indicates the validator was built without an inventory.
	ErrInventoryNotConfigured = errors.New(inventoryNotConfiguredMessageConstant)
	// ErrOrganizationNotConfigured indicates an empty organization name.
	ErrOrganizationNotConfigured = errors.New(organizationNotConfiguredMessageConstant)
	// ErrRequiredTagNotConfigured indicates an empty required tag value.
	ErrRequiredTagNotConfigured = errors.New(requiredTagNotConfiguredMessageConstant)
)

// EligibilityPolicy pins the organization that owns rule repositories and the
// version tag every eligible repository must carry.
type EligibilityPolicy struct {
	Organization string
	RequiredTag  string
}

// RepositoryValidator decides whether a named rule repository remains eligible.
type RepositoryValidator struct {
	inventory RepositoryInventory
	policy    EligibilityPolicy
}

// NewRepositoryValidator constructs a validator bound to an inventory and policy.
func NewRepositoryValidator(inventory RepositoryInventory, policy EligibilityPolicy) (*RepositoryValidator, error) {
	if inventory == nil {
		return nil, ErrInventoryNotConfigured
	}
	if len(strings.TrimSpace(policy.Organization)) == 0 {
		return nil, ErrOrganizationNotConfigured
	}
	if len(strings.TrimSpace(policy.RequiredTag)) == 0 {
		return nil, ErrRequiredTagNotConfigured
	}
	return &RepositoryValidator{inventory: inventory, policy: policy}, nil
}

// IsEligible reports whether the repository exists, is neither archived nor a
// fork, and carries the required tag. The tag scan is skipped entirely when
// the metadata check already fails; a matching tag stops the pagination scan.
// Any returned error is fatal for the surrounding run.
func (validator *RepositoryValidator) IsEligible(executionContext context.Context, repositoryName string) (bool, error) {
	metadata, metadataError := validator.inventory.GetRepositoryMetadata(executionContext, validator.policy.Organization, repositoryName)
	if metadataError != nil {
		return false, metadataError
	}
	if !metadata.Found || metadata.Archived || metadata.Fork {
		return false, nil
	}

	return validator.hasRequiredTag(executionContext, repositoryName)
}

func (validator *RepositoryValidator) hasRequiredTag(executionContext context.Context, repositoryName string) (bool, error) {
	pageNumber := firstTagPageNumberConstant
	for {
		tagPage, tagPageError := validator.inventory.ListTagPage(executionContext, validator.policy.Organization, repositoryName, pageNumber)
		if tagPageError != nil {
			return false, tagPageError
		}

		for _, tagName := range tagPage.Names {
			if strings.TrimSpace(tagName) == validator.policy.RequiredTag {
				return true, nil
			}
		}

		if tagPage.NextPage == 0 {
			return false, nil
		}
		pageNumber = tagPage.NextPage
	}
}
