package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

const (
	requestTimeoutConstant                  = 30 * time.Second
	tagPageSizeConstant                     = 100
	firstTagPageNumberConstant              = 1
	missingTokenMessageConstant             = "github token not configured"
	clientNotConfiguredMessageConstant      = "github api client not configured"
	invalidAPIBaseURLTemplateConstant       = "invalid github api base url %s: %w"
	operationErrorTemplateConstant          = "%s operation failed for %s/%s: %s"
	urlPathTrailingSlashConstant            = "/"
	repositoryMetadataOperationNameConstant = OperationName("GetRepositoryMetadata")
	listTagPageOperationNameConstant        = OperationName("ListTagPage")
)

// OperationName describes a named GitHub API workflow supported by the client.
type OperationName string

// RepositoryMetadata captures the status fields the sync engine validates.
type RepositoryMetadata struct {
	Found    bool
	Archived bool
	Fork     bool
}

// TagPage holds one page of repository tag names together with the
// continuation token for the next page. A zero NextPage ends the scan.
type TagPage struct {
	Names    []string
	NextPage int
}

// RepositoryInventory describes the remote capability consumed by the validator.
type RepositoryInventory interface {
	GetRepositoryMetadata(executionContext context.Context, owner string, repository string) (RepositoryMetadata, error)
	ListTagPage(executionContext context.Context, owner string, repository string, page int) (TagPage, error)
}

var (
	// ErrMissingToken indicates the client was constructed without credentials.
	ErrMissingToken = errors.New(missingTokenMessageConstant)
	// ErrClientNotConfigured indicates the client lacks an underlying API client.
	ErrClientNotConfigured = errors.New(clientNotConfiguredMessageConstant)
)

// OperationError wraps remote failures for GitHub API operations. Every
// occurrence is fatal for the surrounding run; resource absence is reported
// through RepositoryMetadata.Found instead.
type OperationError struct {
	Operation  OperationName
	Owner      string
	Repository string
	Cause      error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Owner, operationError.Repository, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Client implements RepositoryInventory over the GitHub REST API.
type Client struct {
	githubClient *github.Client
}

// NewClient constructs an authenticated API client with a bounded per-request timeout.
func NewClient(token string) (*Client, error) {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return nil, ErrMissingToken
	}

	httpClient := &http.Client{Timeout: requestTimeoutConstant}
	return &Client{githubClient: github.NewClient(httpClient).WithAuthToken(trimmedToken)}, nil
}

// NewClientWithAPIBase constructs a client that targets a non-default API
// endpoint, such as a GitHub Enterprise installation or a test server.
func NewClientWithAPIBase(token string, apiBaseURL string) (*Client, error) {
	client, clientError := NewClient(token)
	if clientError != nil {
		return nil, clientError
	}

	trimmedBaseURL := strings.TrimSpace(apiBaseURL)
	if len(trimmedBaseURL) == 0 {
		return client, nil
	}
	if !strings.HasSuffix(trimmedBaseURL, urlPathTrailingSlashConstant) {
		trimmedBaseURL += urlPathTrailingSlashConstant
	}

	parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
	if parseError != nil {
		return nil, fmt.Errorf(invalidAPIBaseURLTemplateConstant, apiBaseURL, parseError)
	}

	client.githubClient.BaseURL = parsedBaseURL
	return client, nil
}

// GetRepositoryMetadata fetches existence and status flags for one repository.
// A 404 from the remote is a normal not-found verdict, not an error.
func (client *Client) GetRepositoryMetadata(executionContext context.Context, owner string, repository string) (RepositoryMetadata, error) {
	if client == nil || client.githubClient == nil {
		return RepositoryMetadata{}, ErrClientNotConfigured
	}

	repositoryDetails, _, requestError := client.githubClient.Repositories.Get(executionContext, owner, repository)
	if requestError != nil {
		if isNotFoundError(requestError) {
			return RepositoryMetadata{Found: false}, nil
		}
		return RepositoryMetadata{}, OperationError{
			Operation:  repositoryMetadataOperationNameConstant,
			Owner:      owner,
			Repository: repository,
			Cause:      requestError,
		}
	}

	return RepositoryMetadata{
		Found:    true,
		Archived: repositoryDetails.GetArchived(),
		Fork:     repositoryDetails.GetFork(),
	}, nil
}

// ListTagPage fetches one page of tag names. The returned continuation token
// comes from the response pagination metadata; zero signals exhaustion.
func (client *Client) ListTagPage(executionContext context.Context, owner string, repository string, page int) (TagPage, error) {
	if client == nil || client.githubClient == nil {
		return TagPage{}, ErrClientNotConfigured
	}

	listOptions := &github.ListOptions{Page: page, PerPage: tagPageSizeConstant}
	repositoryTags, response, requestError := client.githubClient.Repositories.ListTags(executionContext, owner, repository, listOptions)
	if requestError != nil {
		return TagPage{}, OperationError{
			Operation:  listTagPageOperationNameConstant,
			Owner:      owner,
			Repository: repository,
			Cause:      requestError,
		}
	}

	tagNames := make([]string, 0, len(repositoryTags))
	for _, repositoryTag := range repositoryTags {
		tagNames = append(tagNames, repositoryTag.GetName())
	}

	return TagPage{Names: tagNames, NextPage: response.NextPage}, nil
}

func isNotFoundError(requestError error) bool {
	var errorResponse *github.ErrorResponse
	if !errors.As(requestError, &errorResponse) {
		return false
	}
	return errorResponse.Response != nil && errorResponse.Response.StatusCode == http.StatusNotFound
}
