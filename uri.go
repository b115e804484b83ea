package jsonschema

import (
	"net/url"
	"path"
	"strings"
)

// getURLScheme extracts the scheme component of a URL string.
func getURLScheme(urlStr string) string {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsedURL.Scheme
}

// isValidURI verifies if the provided string is a valid URI.
func isValidURI(s string) bool {
	_, err := url.ParseRequestURI(s)
	return err == nil
}

// isAbsoluteURI checks if the given URL is absolute.
func isAbsoluteURI(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// resolveRelativeURI resolves a relative URI against a base URI. The fragment of
// the reference is detached before resolution and re-attached afterwards, so a
// ref like "other.json#/x" resolves its document part only.
func resolveRelativeURI(baseURI, relativeURI string) string {
	if isAbsoluteURI(relativeURI) {
		return normalizeURI(relativeURI)
	}

	refDoc, frag := splitRef(relativeURI)
	base, err := url.Parse(baseURI)
	if err != nil || base.Scheme == "" {
		return relativeURI // Return the original if there's a base URL parsing error
	}

	if refDoc == "" && frag != "" {
		// Fragment-only reference stays on the base document.
		return strings.SplitN(baseURI, "#", 2)[0] + "#" + frag
	}

	rel, err := url.Parse(refDoc)
	if err != nil {
		return relativeURI
	}
	resolved := base.ResolveReference(rel)
	if frag != "" {
		resolved.Fragment = frag
	}
	return normalizeURI(resolved.String())
}

// normalizeURI collapses "." and ".." path segments so that two spellings of
// the same location compare equal as strings.
func normalizeURI(uri string) string {
	doc, frag := splitRef(uri)
	u, err := url.Parse(doc)
	if err != nil {
		return uri
	}
	if u.Path != "" {
		cleaned := path.Clean(u.Path)
		if strings.HasSuffix(u.Path, "/") && cleaned != "/" {
			cleaned += "/"
		}
		u.Path = cleaned
	}
	out := u.String()
	if frag != "" {
		out += "#" + frag
	}
	return out
}

// getBaseURI extracts the base URL from an $id URI, falling back if not valid.
func getBaseURI(id string) string {
	if id == "" {
		return ""
	}
	u, err := url.Parse(id)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Path, "/") {
		return u.String()
	}
	u.Path = path.Dir(u.Path)
	if u.Path == "." {
		u.Path = "/"
	}
	if u.Path != "/" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.String()
}

// splitRef separates a URI into its base URI and anchor parts.
func splitRef(ref string) (baseURI string, anchor string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

// isJSONPointer checks if a string is a JSON Pointer.
func isJSONPointer(s string) bool {
	return strings.HasPrefix(s, "/")
}
