package convert

import "strings"

// DefaultExtension is the file extension of generated pages.
const DefaultExtension = ".md"

// fileNameSanitizer drops path separators and replaces characters that are not
// allowed in file names on common file systems.
var fileNameSanitizer = strings.NewReplacer(
	"/", "",
	`\`, "-",
	":", "-",
	"*", "-",
	"?", "-",
	`"`, "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// SafeName turns a resource name into a file-name-safe base.
func SafeName(name string) string {
	return fileNameSanitizer.Replace(name)
}

// ArtifactName returns the page file name for a resource/method pair.
func ArtifactName(resource, method, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return SafeName(resource) + "-" + method + ext
}
