package metadata

// imageFields is the priority order in which a metadata document is scanned
// for a displayable media reference. First present, non-empty value wins.
var imageFields = []string{
	"image",
	"image_url",
	"imageUrl",
	"animation_url",
	"animationUrl",
	"media",
	"artwork",
}

// ExtractImage scans a parsed metadata document for the artwork field.
// Returns ("", false) when no field yields a usable value.
func ExtractImage(doc map[string]interface{}) (string, bool) {
	for _, field := range imageFields {
		v, ok := doc[field]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}
