package client

import "github.com/opine-io/opine-client/pkg/opine"

const apiBase = "/api/v1"

// resourcePath builds the path segment addressing one resource: the
// "id:<hex>" form for id identifiers, "<owner>/<name>" otherwise.
func resourcePath(collection string, identifier opine.Identifier) string {
	id, ok := identifier.ID()
	if ok {
		return apiBase + "/" + collection + "/id:" + id
	}

	return apiBase + "/" + collection + "/" + identifier.String()
}

func sourcePath(identifier opine.Identifier) string {
	return resourcePath("sources", identifier)
}

func datasetPath(identifier opine.Identifier) string {
	return resourcePath("datasets", identifier)
}

func bucketPath(identifier opine.Identifier) string {
	return resourcePath("buckets", identifier)
}
