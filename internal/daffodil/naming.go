// Package daffodil holds the version-compatibility tables and naming
// conventions for building saved-processor artifacts against a chosen
// Daffodil release.
package daffodil

import "strings"

// configPrefix tags every version-derived configuration name.
const configPrefix = "daffodil"

// IvyConfigName derives the ivy configuration name for a target
// version by stripping every non-alphanumeric character and prefixing
// the fixed tag: "3.10.0" -> "daffodil3100". Downstream consumers
// discover artifacts purely by this convention, so it is a stable
// wire contract.
func IvyConfigName(targetVersion string) string {
	var b strings.Builder
	b.WriteString(configPrefix)
	for _, r := range targetVersion {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Classifier returns the artifact classifier for an optional label and
// a target version: "daffodil360", or "file-daffodil360" when a label
// is present.
func Classifier(label, targetVersion string) string {
	name := IvyConfigName(targetVersion)
	if label == "" {
		return name
	}
	return label + "-" + name
}

// ArtifactFileName returns the output file name for a compiled
// processor: <project>-<projectVersion>-<classifier>.bin.
func ArtifactFileName(project, projectVersion, label, targetVersion string) string {
	return project + "-" + projectVersion + "-" + Classifier(label, targetVersion) + ".bin"
}
