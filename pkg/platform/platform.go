package platform

import (
	"fmt"
	"os"
)

// Platform is a recognized CI environment that can report the
// checked-out workspace directory.
type Platform interface {
	Name() string
	Workspace() (string, error)
}

// Detect reports the CI platform the process is running under, if any.
func Detect() (Platform, bool) {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return githubActions{}, true
	}
	if os.Getenv("GITLAB_CI") == "true" {
		return gitlabCI{}, true
	}
	return nil, false
}

type githubActions struct{}

func (githubActions) Name() string { return "github-actions" }

func (githubActions) Workspace() (string, error) {
	return workspaceFromEnv("GITHUB_WORKSPACE")
}

type gitlabCI struct{}

func (gitlabCI) Name() string { return "gitlab-ci" }

func (gitlabCI) Workspace() (string, error) {
	return workspaceFromEnv("CI_PROJECT_DIR")
}

func workspaceFromEnv(key string) (string, error) {
	dir, ok := os.LookupEnv(key)
	if !ok || dir == "" {
		return "", fmt.Errorf("%s not set", key)
	}
	return dir, nil
}
