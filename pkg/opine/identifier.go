package opine

// ResourceKind names an addressable resource type on the platform.
type ResourceKind string

const (
	KindSource  ResourceKind = "source"
	KindDataset ResourceKind = "dataset"
	KindBucket  ResourceKind = "bucket"
	KindStream  ResourceKind = "stream"
	KindProject ResourceKind = "project"
	KindUser    ResourceKind = "user"
)

// Identifier is a user-supplied reference to a resource: either an opaque
// hex id or an owner-qualified name. It is immutable once constructed.
type Identifier struct {
	id    string
	owner string
	name  string
}

// IdentifierFromID builds an Identifier holding an opaque id.
func IdentifierFromID(id string) Identifier {
	return Identifier{id: id}
}

// IdentifierFromFullName builds an Identifier holding an owner/name pair.
func IdentifierFromFullName(owner, name string) Identifier {
	return Identifier{owner: owner, name: name}
}

// ParseIdentifier parses a human-provided string into an Identifier.
//
// A non-empty string of hex digits (case-insensitive) is an id. A string
// with exactly one "/" and two non-empty segments of [A-Za-z0-9_-] is an
// owner/name pair. The id form takes precedence. Anything else fails with
// a BadIdentifierError naming the expected shape for kind.
func ParseIdentifier(kind ResourceKind, input string) (Identifier, error) {
	if isHexID(input) {
		return Identifier{id: input}, nil
	}

	owner, name, ok := splitFullName(input)
	if !ok {
		return Identifier{}, &BadIdentifierError{Kind: kind, Input: input}
	}

	return Identifier{owner: owner, name: name}, nil
}

// IsID reports whether the identifier holds an opaque id.
func (i Identifier) IsID() bool {
	return i.id != ""
}

// ID returns the opaque id, if that is what the identifier holds.
func (i Identifier) ID() (string, bool) {
	return i.id, i.id != ""
}

// FullName returns the owner and name, if that is what the identifier holds.
func (i Identifier) FullName() (owner, name string, ok bool) {
	return i.owner, i.name, i.owner != ""
}

// IsZero reports whether the identifier is the zero value.
func (i Identifier) IsZero() bool {
	return i.id == "" && i.owner == ""
}

// String formats the identifier the way it parses: the id verbatim, or
// "owner/name".
func (i Identifier) String() string {
	if i.id != "" {
		return i.id
	}

	if i.owner != "" {
		return i.owner + "/" + i.name
	}

	return ""
}

func isHexID(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}

func splitFullName(s string) (owner, name string, ok bool) {
	slash := -1

	for i := 0; i < len(s); i++ {
		if s[i] != '/' {
			continue
		}

		if slash >= 0 {
			return "", "", false // more than one slash
		}

		slash = i
	}

	if slash <= 0 || slash == len(s)-1 {
		return "", "", false
	}

	owner, name = s[:slash], s[slash+1:]
	if !isNameSegment(owner) || !isNameSegment(name) {
		return "", "", false
	}

	return owner, name, true
}

func isNameSegment(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}

	return len(s) > 0
}
