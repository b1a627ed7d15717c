package docindex

import (
	"path"
	"strings"
)

// Index file names produced by the documentation generator.
const (
	JSONFile  = "index.json"
	JSONPFile = "search-index.js"

	scriptSuffix = "js/doc.js"
)

// Locate derives the index location from base: a site root, a directory,
// the URL of the docs script, or the index file itself.
// Served docs (http/https) use the JSON file, local docs the JSONP file.
func Locate(base string) string {
	name := JSONPFile
	if isRemote(base) {
		name = JSONFile
	}

	switch {
	case strings.HasSuffix(base, scriptSuffix):
		return strings.TrimSuffix(base, scriptSuffix) + name
	case isIndexFile(base):
		return base
	case base == "":
		return name
	case strings.HasSuffix(base, "/"):
		return base + name
	default:
		return base + "/" + name
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func isIndexFile(location string) bool {
	switch path.Ext(location) {
	case ".json", ".js", ".jsonp":
		return true
	}
	return false
}
