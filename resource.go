package billplz

import (
	"sort"

	apperrors "github.com/kbukum/billplz/errors"
	"github.com/kbukum/billplz/three"
)

// Version names a Billplz API version.
type Version string

// Service names a resource within an API version.
type Service string

const (
	// V3 is version 3 of the Billplz API.
	V3 Version = "v3"
	// DefaultVersion is used when no version is given.
	DefaultVersion = V3

	// ServiceCollection is the collection resource.
	ServiceCollection Service = "Collection"
	// ServiceBill is the bill resource.
	ServiceBill Service = "Bill"
)

// Resource is a versioned handle bound to a Client.
type Resource interface {
	Version() string
	Service() string
}

type constructor func(c *Client) Resource

// supportedVersions maps each API version to its resource namespace.
var supportedVersions = map[Version]string{
	V3: "Three",
}

var namespaces = map[string]map[Service]constructor{
	"Three": {
		ServiceCollection: func(c *Client) Resource { return three.NewCollection(c) },
		ServiceBill:       func(c *Client) Resource { return three.NewBill(c) },
	},
}

// SupportedVersions lists the API versions the client can build resources for.
func SupportedVersions() []Version {
	versions := make([]Version, 0, len(supportedVersions))
	for v := range supportedVersions {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions
}

// GetVersionedResource builds the service handle of the given version,
// bound to c. An unknown version yields *UnsupportedVersionError.
func (c *Client) GetVersionedResource(version Version, service Service) (Resource, error) {
	namespace, ok := supportedVersions[version]
	if !ok {
		return nil, &UnsupportedVersionError{Version: version}
	}
	build, ok := namespaces[namespace][service]
	if !ok {
		return nil, apperrors.UnsupportedService(string(service), string(version))
	}
	return build(c), nil
}

// Collection returns the collection handle of version, or of DefaultVersion
// when version is empty.
func (c *Client) Collection(version Version) (Resource, error) {
	return c.GetVersionedResource(orDefault(version), ServiceCollection)
}

// Bill returns the bill handle of version, or of DefaultVersion when
// version is empty.
func (c *Client) Bill(version Version) (Resource, error) {
	return c.GetVersionedResource(orDefault(version), ServiceBill)
}

func orDefault(v Version) Version {
	if v == "" {
		return DefaultVersion
	}
	return v
}
