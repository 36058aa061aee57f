package domain

import (
	"strings"

	"github.com/kapu/combot-go/pkg/errors"
)

type Resource struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Link   string `json:"link"`
	Credit string `json:"credit,omitempty"`
}

func NewResource(name, resourceType, link, credit string) (Resource, error) {
	if strings.TrimSpace(name) == "" {
		return Resource{}, errors.NewValidationError("resource name cannot be empty", "name", name)
	}
	if strings.TrimSpace(resourceType) == "" {
		return Resource{}, errors.NewValidationError("resource type cannot be empty", "type", resourceType)
	}
	if strings.TrimSpace(link) == "" {
		return Resource{}, errors.NewValidationError("resource link cannot be empty", "link", link)
	}
	return Resource{Name: name, Type: resourceType, Link: link, Credit: credit}, nil
}

// ResourceBucket is the persisted shape of the general-resources section.
type ResourceBucket struct {
	Note      string     `json:"note"`
	Resources []Resource `json:"resources"`
}
